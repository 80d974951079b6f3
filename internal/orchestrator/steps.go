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
	"os"
	"path/filepath"

	"github.com/shift-left/sentinel/internal/analyzer"
	"github.com/shift-left/sentinel/internal/classifier"
	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/mutant"
	"github.com/shift-left/sentinel/internal/sourcetree"
	"github.com/shift-left/sentinel/internal/testoutcome"
	"github.com/shift-left/sentinel/internal/testresult"
)

// Populate runs the candidate-collection and sampling pipeline alone
// (C2→C4→C5): it is the standalone `populate` command's entry point,
// invoked without a build or test command.
func Populate(cfg Config, coll analyzer.Collector) ([]mutant.Mutant, error) {
	sourceRoot, err := mutant.Canonicalize(cfg.SourceRoot)
	if err != nil {
		return nil, execution.Wrap(execution.ConfigError, err)
	}
	return populate(cfg, sourceRoot, coll)
}

// Mutate applies a single mutant to the source tree rooted at
// sourceRoot, backing up the original file under workDir/backup first.
// It is the standalone `mutate` command's entry point.
func Mutate(sourceRoot, workDir string, m mutant.Mutant) error {
	root, err := mutant.Canonicalize(sourceRoot)
	if err != nil {
		return execution.Wrap(execution.ConfigError, err)
	}

	backup := filepath.Join(workDir, "backup")
	if err := os.MkdirAll(backup, 0o755); err != nil {
		return execution.Wrap(execution.IoError, err)
	}

	tree := sourcetree.New(root, backup)
	return tree.Apply(m)
}

// Evaluate classifies one mutant given pre-populated expected/ and
// actual/ test-result directories and an externally supplied trial
// outcome. It is the standalone `evaluate` command's entry point; when
// trial is anything other than testoutcome.Success, actualDir is never
// read, matching the short-circuit in classifier.Classify.
func Evaluate(m mutant.Mutant, expectedDir, actualDir string, trial testoutcome.TrialState) (testoutcome.Result, error) {
	golden, err := testresult.Read(expectedDir)
	if err != nil {
		return testoutcome.Result{}, execution.Wrap(execution.IoError, err)
	}

	var post *testoutcome.Outcome
	if trial == testoutcome.Success {
		post, err = testresult.Read(actualDir)
		if err != nil {
			return testoutcome.Result{}, execution.Wrap(execution.IoError, err)
		}
	}

	return classifier.Classify(m, golden, post, trial)
}
