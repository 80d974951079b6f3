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

// Package classifier turns a golden TestOutcome, a post-mutation
// TestOutcome and the trial's externally supplied state into a
// MutationResult.
package classifier

import (
	"errors"

	"github.com/shift-left/sentinel/internal/mutant"
	"github.com/shift-left/sentinel/internal/testoutcome"
)

// ErrGoldenEmpty is returned when the golden Outcome has no passing
// tests: there is no evidence a mutant could ever kill, so the run
// cannot proceed.
var ErrGoldenEmpty = errors.New("golden test run produced no passing tests")

// Classify applies the classification rules of the outcome classifier
// in order: trial-state short circuits first, then evidence computed
// from golden and post.
func Classify(m mutant.Mutant, golden, post *testoutcome.Outcome, trial testoutcome.TrialState) (testoutcome.Result, error) {
	if len(golden.Passed) == 0 {
		return testoutcome.Result{}, ErrGoldenEmpty
	}

	empty := func(state testoutcome.State) testoutcome.Result {
		return testoutcome.Result{
			Mutant:        m,
			State:         state,
			KillingTests:  map[string]struct{}{},
			ErroringTests: map[string]struct{}{},
		}
	}

	switch trial {
	case testoutcome.BuildFailed:
		return empty(testoutcome.BuildFailure), nil
	case testoutcome.TimedOut:
		return empty(testoutcome.Timeout), nil
	case testoutcome.Uncovered:
		return empty(testoutcome.Survived), nil
	}

	killing := map[string]struct{}{}
	erroring := map[string]struct{}{}
	for t := range golden.Passed {
		switch {
		case post.HasFailed(t):
			killing[t] = struct{}{}
		case !post.HasPassed(t):
			erroring[t] = struct{}{}
		}
	}

	state := testoutcome.Survived
	switch {
	case len(erroring) > 0:
		state = testoutcome.RuntimeError
	case len(killing) > 0:
		state = testoutcome.Killed
	}

	return testoutcome.Result{
		Mutant:        m,
		State:         state,
		KillingTests:  killing,
		ErroringTests: erroring,
	}, nil
}
