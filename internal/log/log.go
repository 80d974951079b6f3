// Package log provides Sentinel's singleton, writer-backed logger.
package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

var fgRed = color.New(color.FgRed).SprintFunc()

var mutex = &sync.Mutex{}
var instance *log

// Init initializes a new logger with the given out and eOut io.Writer.
// If no out is provided the logger behaves as NoOp. The initialized
// instance is a singleton.
//
// If one of the logging methods is called before the logger has been
// initialized, the call does nothing.
func Init(out, eOut io.Writer) {
	if out == nil || eOut == nil {
		return
	}
	if instance == nil {
		mutex.Lock()
		defer mutex.Unlock()
		if instance == nil {
			instance = &log{out: out, eOut: eOut}
		}
	}
}

// RotatingFileSink builds an io.Writer that rotates the given log file
// once it crosses maxSizeMB, keeping at most maxBackups old copies.
// A mutation run over a large source tree can emit one line per mutant;
// this keeps --log-file from growing without bound.
func RotatingFileSink(path string, maxSizeMB, maxBackups int) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}
}

// Reset removes the current log instance.
func Reset() {
	mutex.Lock()
	defer mutex.Unlock()
	instance = nil
}

// Infof logs an information using format.
func Infof(f string, args ...any) {
	if instance == nil {
		return
	}
	instance.writef(f, args...)
}

// Infoln logs an information line.
func Infoln(a any) {
	if instance == nil {
		return
	}
	instance.writeln(a)
}

// Errorf logs an error using format.
func Errorf(f string, args ...any) {
	if instance == nil {
		return
	}
	msg := fmt.Sprintf(f, args...)
	instance.eWritef("%s: %s", fgRed("ERROR"), msg)
}

// Errorln logs an error line.
func Errorln(a any) {
	if instance == nil {
		return
	}
	msg := fmt.Sprintf("%s: %s", fgRed("ERROR"), a)
	instance.eWriteln(msg)
}

type log struct {
	out  io.Writer
	eOut io.Writer
}

func (l *log) writef(f string, args ...any) {
	_, _ = fmt.Fprintf(l.out, f, args...)
}

func (l *log) writeln(a any) {
	_, _ = fmt.Fprintln(l.out, a)
}

func (l *log) eWritef(f string, args ...any) {
	_, _ = fmt.Fprintf(l.eOut, f, args...)
}

func (l *log) eWriteln(a any) {
	_, _ = fmt.Fprintln(l.eOut, a)
}
