package log_test

import (
	"bytes"
	"testing"

	"github.com/shift-left/sentinel/internal/log"
)

func TestLogInfof(t *testing.T) {
	out := &bytes.Buffer{}
	eOut := &bytes.Buffer{}
	log.Init(out, eOut)
	defer log.Reset()

	log.Infof("hello %s", "world")

	if got := out.String(); got != "hello world" {
		t.Errorf("want %q, got %q", "hello world", got)
	}
}

func TestLogErrorf(t *testing.T) {
	out := &bytes.Buffer{}
	eOut := &bytes.Buffer{}
	log.Init(out, eOut)
	defer log.Reset()

	log.Errorf("boom")

	if got := eOut.String(); got == "" {
		t.Errorf("want error output, got empty")
	}
}

func TestLogNoopBeforeInit(t *testing.T) {
	log.Reset()

	// Must not panic.
	log.Infof("noop")
	log.Errorln("noop")
}

func TestInitIgnoresNilWriter(t *testing.T) {
	log.Reset()
	defer log.Reset()

	log.Init(nil, nil)
	log.Infof("still noop")
}
