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

// Package orchestrator drives the single top-level procedure of a run:
// prepare the workspace, run the golden trial, populate and sample
// mutants, and step each one through backup-apply-build-test-classify-
// restore, in strict sequence.
package orchestrator

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/shift-left/sentinel/internal/analyzer"
	"github.com/shift-left/sentinel/internal/collector"
	"github.com/shift-left/sentinel/internal/coverage"
	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/log"
	"github.com/shift-left/sentinel/internal/mutant"
	"github.com/shift-left/sentinel/internal/runner"
	"github.com/shift-left/sentinel/internal/sampler"
	"github.com/shift-left/sentinel/internal/sourceline"
	"github.com/shift-left/sentinel/internal/sourcetree"
	"github.com/shift-left/sentinel/internal/testoutcome"
	"github.com/shift-left/sentinel/internal/testresult"
	"github.com/shift-left/sentinel/internal/workdir"
)

// Config is everything one run needs, gathered from configuration and
// CLI flags.
type Config struct {
	SourceRoot    string
	WorkDir       string
	BuildCommand  string
	TestCommand   string
	TestResultDir string
	Scope         sourceline.Scope
	Extensions    []string
	Excludes      []string
	Limit         int
	Policy        sampler.Policy
	Seed          int64
	Timeout       time.Duration // 0 means "auto": derive from golden elapsed
	KillAfter     time.Duration
	CoverageFiles []string
}

// Run executes the full populate→trial→aggregate procedure, invoking
// onResult for every MutationResult as it is produced, in selection
// order. Collector is the caller-supplied AST collaborator: the
// orchestrator is agnostic to how candidate sites are discovered.
func Run(ctx context.Context, cfg Config, coll analyzer.Collector, onResult func(testoutcome.Result)) error {
	sourceRoot, err := mutant.Canonicalize(cfg.SourceRoot)
	if err != nil {
		return execution.Wrap(execution.ConfigError, err)
	}

	wd, err := prepareWorkdir(cfg.WorkDir)
	if err != nil {
		return err
	}
	defer wd.Cleanup()

	ctx, stop := runner.WatchSignals(ctx, func() {
		_ = sourcetree.Restore(wd.Backup, sourceRoot)
	})
	defer stop()

	tree := sourcetree.New(sourceRoot, wd.Backup)

	golden, autoTimeout, err := runGoldenTrial(ctx, cfg, sourceRoot, wd.Expected)
	if err != nil {
		return err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = autoTimeout
	}

	mutants, err := populate(cfg, sourceRoot, coll)
	if err != nil {
		return err
	}
	log.Infof("selected %d mutants", len(mutants))

	var cov coverage.Profile
	if len(cfg.CoverageFiles) > 0 {
		cov, err = coverage.ParseFiles(cfg.CoverageFiles)
		if err != nil {
			return err
		}
	}

	for _, m := range mutants {
		result, err := trial(ctx, cfg, tree, sourceRoot, wd, golden, cov, timeout, m)
		if err != nil {
			return err
		}
		onResult(result)
	}
	return nil
}

func prepareWorkdir(root string) (*workdir.Dir, error) {
	return workdir.New(root)
}

// runGoldenTrial builds and runs the test suite on pristine source,
// copies the result into expected/, and returns the golden outcome with
// the "auto" timeout derived from the test's elapsed time: 1.1 times
// the elapsed seconds, rounded up, and never less than one second.
func runGoldenTrial(ctx context.Context, cfg Config, sourceRoot, expectedDir string) (*testoutcome.Outcome, time.Duration, error) {
	log.Infof("running golden build")
	buildRes, err := runner.Run(ctx, sourceRoot, cfg.BuildCommand, 0, 0)
	if err != nil {
		return nil, 0, err
	}
	if buildRes.ExitCode != 0 {
		return nil, 0, execution.NewExitErr(execution.GoldenBuildFail)
	}

	log.Infof("running golden test")
	start := time.Now()
	if _, err := runner.Run(ctx, sourceRoot, cfg.TestCommand, 0, 0); err != nil {
		return nil, 0, err
	}
	elapsed := time.Since(start)

	if err := copyTestResults(cfg.TestResultDir, expectedDir); err != nil {
		return nil, 0, execution.Wrap(execution.IoError, err)
	}

	golden, err := testresult.Read(expectedDir)
	if err != nil {
		return nil, 0, execution.Wrap(execution.IoError, err)
	}
	if len(golden.Passed) == 0 {
		return nil, 0, execution.NewExitErr(execution.GoldenEmpty)
	}

	autoTimeout := time.Duration(math.Ceil(1.1*elapsed.Seconds())) * time.Second
	if autoTimeout < time.Second {
		autoTimeout = time.Second
	}
	return golden, autoTimeout, nil
}

func populate(cfg Config, sourceRoot string, coll analyzer.Collector) ([]mutant.Mutant, error) {
	source := sourceline.NewGitSource(sourceRoot, cfg.Extensions)
	lines, err := source.SourceLines(context.Background(), cfg.Scope)
	if err != nil {
		return nil, execution.Wrap(execution.IoError, err)
	}
	lines = excludeMatching(lines, cfg.Excludes)

	byFile := make(map[string][]int)
	var order []string
	for _, l := range lines {
		if _, ok := byFile[l.Path]; !ok {
			order = append(order, l.Path)
		}
		byFile[l.Path] = append(byFile[l.Path], l.Line)
	}

	var pool collector.Set
	for _, path := range order {
		set, err := collector.Collect(coll, path, byFile[path])
		if err != nil {
			return nil, execution.Wrap(execution.IoError, err)
		}
		pool = append(pool, set...)
	}

	return sampler.Sample(pool, lines, cfg.Seed, cfg.Limit, cfg.Policy), nil
}

func excludeMatching(lines []sourceline.SourceLine, patterns []string) []sourceline.SourceLine {
	if len(patterns) == 0 {
		return lines
	}
	var out []sourceline.SourceLine
	for _, l := range lines {
		excluded := false
		for _, p := range patterns {
			if ok, _ := filepath.Match(p, l.Path); ok {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, l)
		}
	}
	return out
}

func copyTestResults(from, to string) error {
	if err := clearDir(to); err != nil {
		return err
	}
	entries, err := os.ReadDir(from)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		src := filepath.Join(from, e.Name())
		dst := filepath.Join(to, e.Name())
		content, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
