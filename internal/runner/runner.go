/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package runner supervises one shell command at a time, enforcing a
// timeout with a SIGTERM-then-SIGKILL escalation and forwarding fatal
// signals to the whole child process group before Sentinel itself
// exits on them.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"

	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/log"
)

// Result is the outcome of one supervised run.
type Result struct {
	// ExitCode is the child's exit code, or -1 if it never started, was
	// ended by a signal, or was killed because ctx was canceled.
	ExitCode int
	// TimedOut is true when the command was killed after Timeout elapsed.
	TimedOut bool
	// Stdout/Stderr are the command's captured output.
	Stdout, Stderr []byte
}

// only one supervised run may be active at a time: the process-group
// signal relay below assumes a single child. mu also guards the
// relay's view of the active command.
var (
	mu     sync.Mutex
	active *exec.Cmd
)

// Run executes command under /bin/sh -c, in its own process group, and
// waits up to timeout before sending SIGTERM; if the child is still
// alive after killAfter more seconds, it escalates to SIGKILL. A
// timeout of zero means no time limit.
//
// If ctx is canceled (a fatal signal caught by the caller) while the
// command is running, the child's entire process group is sent
// SIGKILL before Run returns ctx.Err().
func Run(ctx context.Context, dir, command string, timeout, killAfter time.Duration) (Result, error) {
	mu.Lock()
	if active != nil {
		mu.Unlock()
		return Result{}, execution.NewExitErr(execution.ConcurrentRun)
	}

	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.Dir = dir
	setupProcessGroup(cmd)
	active = cmd
	mu.Unlock()
	defer func() {
		mu.Lock()
		active = nil
		mu.Unlock()
	}()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return Result{ExitCode: -1}, err
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case err := <-done:
		return resultOf(cmd, stdout.Bytes(), stderr.Bytes(), false, err)
	case <-ctx.Done():
		log.Infof("supervised run interrupted, killing process group")
		_ = killProcessGroup(cmd)
		<-done
		return Result{ExitCode: -1}, ctx.Err()
	case <-timeoutCh:
		log.Infof("test command exceeded %s, sending SIGTERM", timeout)
		_ = terminateProcessGroup(cmd)
		return awaitAfterTimeout(cmd, stdout.Bytes(), stderr.Bytes(), done, killAfter)
	}
}

func awaitAfterTimeout(cmd *exec.Cmd, stdout, stderr []byte, done chan error, killAfter time.Duration) (Result, error) {
	if killAfter <= 0 {
		err := <-done
		return resultOf(cmd, stdout, stderr, true, err)
	}

	killTimer := time.NewTimer(killAfter)
	defer killTimer.Stop()

	select {
	case err := <-done:
		return resultOf(cmd, stdout, stderr, true, err)
	case <-killTimer.C:
		log.Infof("test command still running %s after SIGTERM, sending SIGKILL", killAfter)
		_ = killProcessGroup(cmd)
		err := <-done
		return resultOf(cmd, stdout, stderr, true, err)
	}
}

func resultOf(cmd *exec.Cmd, stdout, stderr []byte, timedOut bool, waitErr error) (Result, error) {
	res := Result{Stdout: stdout, Stderr: stderr, TimedOut: timedOut}
	if waitErr == nil {
		res.ExitCode = 0
		return res, nil
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	res.ExitCode = -1
	return res, waitErr
}

// terminateProcessGroup is the non-fatal escalation step, overridable
// per-platform the same way killProcessGroup is.
func terminateProcessGroup(cmd *exec.Cmd) error {
	return signalProcessGroup(cmd)
}
