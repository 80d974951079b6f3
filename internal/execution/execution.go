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

// Package execution maps Sentinel's fatal-error taxonomy to process exit codes.
package execution

// ErrorType is the kind of fatal error that can terminate a run.
type ErrorType int

// The error kinds of spec.md §7. Per-mutant BUILD_FAILURE/TIMEOUT/
// RUNTIME_ERROR are not part of this taxonomy: they are normal trial
// results, not errors, and never affect the exit code.
const (
	// ConfigError is a missing/invalid CLI argument, an absent
	// compilation database, or a bad path.
	ConfigError ErrorType = iota
	// PathEscape is raised when a Mutant's path resolves outside the
	// configured source root.
	PathEscape
	// GoldenBuildFail is raised when the build command fails on
	// pristine source.
	GoldenBuildFail
	// GoldenEmpty is raised when the golden test run produces no
	// passing tests.
	GoldenEmpty
	// ConcurrentRun is raised when a second supervised run is
	// attempted while one is active.
	ConcurrentRun
	// IoError is any file read/write/copy failure.
	IoError
	// EfficacyThreshold is raised when test efficacy is at or below the
	// configured threshold.
	EfficacyThreshold
	// MutantCoverageThreshold is raised when mutant coverage is at or
	// below the configured threshold.
	MutantCoverageThreshold
)

// String produces the human readable sentence for the ErrorType.
func (e ErrorType) String() string {
	switch e {
	case ConfigError:
		return "invalid configuration"
	case PathEscape:
		return "mutant path escapes source root"
	case GoldenBuildFail:
		return "build failed on pristine source"
	case GoldenEmpty:
		return "golden test run produced no passing tests"
	case ConcurrentRun:
		return "a supervised run is already active"
	case IoError:
		return "I/O error"
	case EfficacyThreshold:
		return "below efficacy-threshold"
	case MutantCoverageThreshold:
		return "below mutant coverage-threshold"
	}
	panic("this should not happen")
}

// exitCodes maps each ErrorType to the process exit code of spec.md §6:
// 1 on argument/configuration errors, 2 on runtime failures, keeping the
// teacher's own 10/11 codes for the two quality-gate thresholds so CI
// scripts that already branch on them keep working.
var exitCodes = map[ErrorType]int{
	ConfigError:             1,
	PathEscape:              2,
	GoldenBuildFail:         2,
	GoldenEmpty:             2,
	ConcurrentRun:           2,
	IoError:                 2,
	EfficacyThreshold:       10,
	MutantCoverageThreshold: 11,
}

// ExitError is the error type that reaches main() when a run must
// terminate with a specific exit code.
type ExitError struct {
	errorType ErrorType
	exitCode  int
	cause     error
}

// NewExitErr instantiates an ExitError for the given ErrorType.
func NewExitErr(et ErrorType) *ExitError {
	return &ExitError{exitCode: exitCodes[et], errorType: et}
}

// Wrap instantiates an ExitError carrying an underlying cause, printed
// alongside the ErrorType's message.
func Wrap(et ErrorType, cause error) *ExitError {
	return &ExitError{exitCode: exitCodes[et], errorType: et, cause: cause}
}

// Error is the implementation of the error interface.
func (e *ExitError) Error() string {
	if e.cause != nil {
		return e.errorType.String() + ": " + e.cause.Error()
	}
	return e.errorType.String()
}

// Unwrap exposes the underlying cause, if any, to errors.Is/As.
func (e *ExitError) Unwrap() error {
	return e.cause
}

// ExitCode returns the exit code associated with the specific ErrorType.
func (e *ExitError) ExitCode() int {
	return e.exitCode
}

// Type returns the ErrorType of this error.
func (e *ExitError) Type() ErrorType {
	return e.errorType
}
