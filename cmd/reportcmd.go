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
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/shift-left/sentinel/cmd/internal/flags"
	"github.com/shift-left/sentinel/internal/aggregator"
	"github.com/shift-left/sentinel/internal/configuration"
	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/log"
	"github.com/shift-left/sentinel/internal/report"
	"github.com/shift-left/sentinel/internal/testoutcome"
)

func newReportCmd(_ context.Context) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "report",
		Args:  cobra.NoArgs,
		Short: "Render aggregated results from an evaluation log",
		Long: heredoc.Doc(`
			Reads an evaluation-file of MutationResult lines (as produced by
			repeated "evaluate" invocations, or by "run"), aggregates them
			by file and directory, and renders the summary to the console
			and a findings.json file under output-dir.
		`),
		RunE: runReport,
	}

	fls := []*flags.Flag{
		{Name: "evaluation-file", CfgKey: configuration.ReportEvaluationFileKey, DefaultV: "", Usage: "path to the MutationResult log to render"},
		{Name: "source-root", CfgKey: configuration.ReportSourceRootKey, DefaultV: ".", Usage: "root the results are relative to"},
		{Name: "output-dir", CfgKey: configuration.ReportOutputDirKey, DefaultV: "", Usage: "directory to write findings.json into; empty disables the file"},
	}
	for _, f := range fls {
		if err := flags.Set(cmd, f); err != nil {
			return nil, err
		}
	}

	return cmd, nil
}

func runReport(_ *cobra.Command, _ []string) error {
	evaluationFile := configuration.Get[string](configuration.ReportEvaluationFileKey)
	sourceRoot := configuration.Get[string](configuration.ReportSourceRootKey)
	outputDir := configuration.Get[string](configuration.ReportOutputDirKey)

	rep, err := loadReport(evaluationFile, sourceRoot)
	if err != nil {
		return err
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return execution.Wrap(execution.IoError, err)
		}
		if err := report.WriteJSON(filepath.Join(outputDir, "findings.json"), rep, 0); err != nil {
			log.Errorf("failed to write findings.json: %s\n", err)
		}
	}

	return report.Do(report.Results{
		Report:            rep,
		ThresholdEfficacy: configuration.Get[float64](configuration.RunThresholdEfficacyKey),
		ThresholdCoverage: configuration.Get[float64](configuration.RunThresholdMCoverageKey),
	})
}

func loadReport(evaluationFile, sourceRoot string) (*aggregator.Report, error) {
	f, err := os.Open(evaluationFile)
	if err != nil {
		return nil, execution.Wrap(execution.IoError, err)
	}
	defer f.Close()

	rep := aggregator.New(sourceRoot)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		result, err := testoutcome.ParseResult(line)
		if err != nil {
			log.Errorf("skipping malformed result line: %s\n", err)
			continue
		}
		rep.Add(result)
	}
	if err := scanner.Err(); err != nil {
		return nil, execution.Wrap(execution.IoError, err)
	}
	return rep, nil
}
