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

package orchestrator

import (
	"context"
	"time"

	"github.com/shift-left/sentinel/internal/classifier"
	"github.com/shift-left/sentinel/internal/coverage"
	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/log"
	"github.com/shift-left/sentinel/internal/mutant"
	"github.com/shift-left/sentinel/internal/runner"
	"github.com/shift-left/sentinel/internal/sourcetree"
	"github.com/shift-left/sentinel/internal/testoutcome"
	"github.com/shift-left/sentinel/internal/testresult"
	"github.com/shift-left/sentinel/internal/workdir"
)

// trial steps one mutant through backup-apply-build-test-classify-
// restore. It always restores the source tree before returning,
// whether the trial succeeded, produced a per-mutant result, or
// failed with a fatal error.
func trial(ctx context.Context, cfg Config, tree *sourcetree.Tree, sourceRoot string, wd *workdir.Dir,
	golden *testoutcome.Outcome, cov coverage.Profile, timeout time.Duration, m mutant.Mutant) (testoutcome.Result, error) {

	if cov != nil && !cov.IsCovered(m.Path, m.First.Line) {
		log.Infof("mutant at %s:%d is not covered, skipping trial", m.Path, m.First.Line)
		return classifier.Classify(m, golden, nil, testoutcome.Uncovered)
	}

	if err := tree.Apply(m); err != nil {
		return testoutcome.Result{}, err
	}

	result, err := runTrial(ctx, cfg, sourceRoot, wd, golden, timeout, m)

	if restoreErr := sourcetree.Restore(wd.Backup, sourceRoot); restoreErr != nil && err == nil {
		err = execution.Wrap(execution.IoError, restoreErr)
	}
	if err != nil {
		return testoutcome.Result{}, err
	}
	return result, nil
}

func runTrial(ctx context.Context, cfg Config, sourceRoot string, wd *workdir.Dir,
	golden *testoutcome.Outcome, timeout time.Duration, m mutant.Mutant) (testoutcome.Result, error) {

	buildRes, err := runner.Run(ctx, sourceRoot, cfg.BuildCommand, 0, 0)
	if err != nil {
		return testoutcome.Result{}, err
	}
	if buildRes.ExitCode != 0 {
		return classifier.Classify(m, golden, nil, testoutcome.BuildFailed)
	}

	testRes, err := runner.Run(ctx, sourceRoot, cfg.TestCommand, timeout, cfg.KillAfter)
	if err != nil {
		return testoutcome.Result{}, err
	}
	if testRes.TimedOut {
		_ = clearDir(wd.Actual)
		return classifier.Classify(m, golden, nil, testoutcome.TimedOut)
	}

	if err := copyTestResults(cfg.TestResultDir, wd.Actual); err != nil {
		return testoutcome.Result{}, execution.Wrap(execution.IoError, err)
	}
	post, err := testresult.Read(wd.Actual)
	if err != nil {
		return testoutcome.Result{}, execution.Wrap(execution.IoError, err)
	}

	return classifier.Classify(m, golden, post, testoutcome.Success)
}
