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

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/shift-left/sentinel/cmd/internal/flags"
	"github.com/shift-left/sentinel/internal/aggregator"
	"github.com/shift-left/sentinel/internal/analyzer"
	"github.com/shift-left/sentinel/internal/configuration"
	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/orchestrator"
	"github.com/shift-left/sentinel/internal/report"
	"github.com/shift-left/sentinel/internal/sampler"
	"github.com/shift-left/sentinel/internal/sourceline"
	"github.com/shift-left/sentinel/internal/testoutcome"
)

func newRunCmd(_ context.Context) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "run",
		Args:  cobra.NoArgs,
		Short: "Run the full mutation testing pipeline end to end",
		Long: heredoc.Doc(`
			Builds and runs the test suite once to establish a golden
			result, populates and samples mutants, then steps each one
			through apply-build-test-classify-restore, printing progress
			as it goes and a summary when done.
		`),
		RunE: runRun,
	}

	fls := []*flags.Flag{
		{Name: "source-root", CfgKey: configuration.PopulateSourceRootKey, DefaultV: ".", Usage: "root of the source tree"},
		{Name: "build-dir", CfgKey: configuration.RunBuildDirKey, DefaultV: "", Usage: "directory holding compile_commands.json"},
		{Name: "build-command", CfgKey: configuration.RunBuildCommandKey, DefaultV: "", Usage: "shell command that builds the project"},
		{Name: "test-command", CfgKey: configuration.RunTestCommandKey, DefaultV: "", Usage: "shell command that runs the test suite"},
		{Name: "test-result-dir", CfgKey: configuration.RunTestResultDirKey, DefaultV: "", Usage: "directory the test command writes XML results to"},
		{Name: "scope", CfgKey: configuration.RunScopeKey, DefaultV: "all", Usage: "source-line scope: all or commit"},
		{Name: "extension", CfgKey: configuration.RunExtensionKey, DefaultV: []string{".c", ".cc", ".cpp", ".cxx", ".h", ".hpp"}, Usage: "source file extension to consider (repeatable)"},
		{Name: "exclude", CfgKey: configuration.PopulateExcludeKey, DefaultV: []string{}, Usage: "glob pattern of paths to exclude (repeatable)"},
		{Name: "max-mutants", CfgKey: configuration.RunMaxMutantsKey, DefaultV: 0, Usage: "maximum number of mutants to select (0 means unlimited)"},
		{Name: "sampler", CfgKey: configuration.RunSamplerKey, DefaultV: "uniform", Usage: "sampling policy: uniform, weighted, or random"},
		{Name: "seed", CfgKey: configuration.RunSeedKey, DefaultV: int64(0), Usage: "seed for the sampling policy's deterministic shuffle"},
		{Name: "timeout", CfgKey: configuration.RunTimeoutKey, DefaultV: time.Duration(0), Usage: "per-trial test timeout; 0 derives it from the golden run"},
		{Name: "kill-after", CfgKey: configuration.RunKillAfterKey, DefaultV: 5 * time.Second, Usage: "grace period before SIGKILL once a trial times out"},
		{Name: "coverage-file", CfgKey: configuration.RunCoverageFileKey, DefaultV: []string{}, Usage: "lcov coverage file to narrow trials to covered lines (repeatable)"},
		{Name: "output-statuses", CfgKey: configuration.RunOutputStatusesKey, DefaultV: "", Usage: "restrict per-mutant progress lines to these statuses (ksrbt)"},
		{Name: "output-dir", CfgKey: configuration.ReportOutputDirKey, DefaultV: "", Usage: "directory to write findings.json into; empty disables the file"},
		{Name: "threshold-efficacy", CfgKey: configuration.RunThresholdEfficacyKey, DefaultV: float64(0), Usage: "fail the run if test efficacy is at or below this percentage"},
		{Name: "threshold-mutant-coverage", CfgKey: configuration.RunThresholdMCoverageKey, DefaultV: float64(0), Usage: "fail the run if mutant coverage is at or below this percentage"},
	}
	for _, f := range fls {
		if err := flags.Set(cmd, f); err != nil {
			return nil, err
		}
	}

	workDirFlag := &flags.Flag{Name: "work-dir", CfgKey: configuration.RunWorkDirKey, DefaultV: "", Usage: "scratch directory for backups and golden/actual test results"}
	if err := flags.Set(cmd, workDirFlag); err != nil {
		return nil, err
	}

	return cmd, nil
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg := orchestrator.Config{
		SourceRoot:    configuration.Get[string](configuration.PopulateSourceRootKey),
		WorkDir:       configuration.Get[string](configuration.RunWorkDirKey),
		BuildCommand:  configuration.Get[string](configuration.RunBuildCommandKey),
		TestCommand:   configuration.Get[string](configuration.RunTestCommandKey),
		TestResultDir: configuration.Get[string](configuration.RunTestResultDirKey),
		Scope:         sourceline.Scope(configuration.Get[string](configuration.RunScopeKey)),
		Extensions:    configuration.Get[[]string](configuration.RunExtensionKey),
		Excludes:      configuration.Get[[]string](configuration.PopulateExcludeKey),
		Limit:         configuration.Get[int](configuration.RunMaxMutantsKey),
		Policy:        sampler.Policy(configuration.Get[string](configuration.RunSamplerKey)),
		Seed:          configuration.Get[int64](configuration.RunSeedKey),
		Timeout:       configuration.Get[time.Duration](configuration.RunTimeoutKey),
		KillAfter:     configuration.Get[time.Duration](configuration.RunKillAfterKey),
		CoverageFiles: configuration.Get[[]string](configuration.RunCoverageFileKey),
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 1 << 30
	}

	logger := report.NewLogger()
	rep := newAggregatorReport(cfg.SourceRoot)

	start := time.Now()
	err := orchestrator.Run(cmd.Context(), cfg, analyzer.LineScanner{}, func(result testoutcome.Result) {
		logger.Mutant(result)
		rep.Add(result)
	})
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	outputDir := configuration.Get[string](configuration.ReportOutputDirKey)
	if outputDir != "" {
		if werr := writeFindings(outputDir, rep, elapsed); werr != nil {
			return execution.Wrap(execution.IoError, werr)
		}
	}

	return report.Do(report.Results{
		Report:            rep,
		Elapsed:           elapsed,
		ThresholdEfficacy: configuration.Get[float64](configuration.RunThresholdEfficacyKey),
		ThresholdCoverage: configuration.Get[float64](configuration.RunThresholdMCoverageKey),
	})
}

func newAggregatorReport(sourceRoot string) *aggregator.Report {
	return aggregator.New(sourceRoot)
}

func writeFindings(outputDir string, rep *aggregator.Report, elapsed time.Duration) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	return report.WriteJSON(filepath.Join(outputDir, "findings.json"), rep, elapsed)
}
