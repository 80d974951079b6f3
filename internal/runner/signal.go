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

package runner

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchSignals cancels ctx's derived context on SIGINT, SIGTERM,
// SIGHUP or SIGQUIT, and calls cleanup exactly once before the process
// exits. cleanup is expected to restore the source tree from backup;
// it runs synchronously on the signal-handling goroutine, so it must
// be quick.
//
// The returned context is canceled either by the signal or by calling
// the returned stop function; callers should always call stop in a
// defer to release the underlying signal.Notify registration.
func WatchSignals(parent context.Context, cleanup func()) (ctx context.Context, stop func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			cleanup()
			cancel()
		case <-done:
		}
	}()

	return ctx, func() {
		close(done)
		signal.Stop(sigCh)
		cancel()
	}
}
