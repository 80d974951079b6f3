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
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/shift-left/sentinel/cmd/internal/flags"
	"github.com/shift-left/sentinel/internal/analyzer"
	"github.com/shift-left/sentinel/internal/configuration"
	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/log"
	"github.com/shift-left/sentinel/internal/orchestrator"
	"github.com/shift-left/sentinel/internal/sampler"
	"github.com/shift-left/sentinel/internal/sourceline"
)

func newPopulateCmd(_ context.Context) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "populate [output-file]",
		Args:  cobra.ExactArgs(1),
		Short: "Collect and sample the mutants for a run",
		Long: heredoc.Doc(`
			Walks the configured source lines, asks the AST collaborator for
			every candidate mutation site, narrows the pool to a budget with
			the configured sampling policy, and writes the selection to
			output-file, one serialized mutant per line.
		`),
		RunE: runPopulate,
	}

	fls := []*flags.Flag{
		{Name: "source-root", CfgKey: configuration.PopulateSourceRootKey, DefaultV: ".", Usage: "root of the source tree"},
		{Name: "build-dir", CfgKey: configuration.PopulateBuildDirKey, DefaultV: "", Usage: "directory holding compile_commands.json"},
		{Name: "scope", CfgKey: configuration.PopulateScopeKey, DefaultV: "all", Usage: "source-line scope: all or commit"},
		{Name: "extension", CfgKey: configuration.PopulateExtensionKey, DefaultV: []string{".c", ".cc", ".cpp", ".cxx", ".h", ".hpp"}, Usage: "source file extension to consider (repeatable)"},
		{Name: "exclude", CfgKey: configuration.PopulateExcludeKey, DefaultV: []string{}, Usage: "glob pattern of paths to exclude (repeatable)"},
		{Name: "limit", CfgKey: configuration.PopulateLimitKey, DefaultV: 0, Usage: "maximum number of mutants to select (0 means unlimited)"},
		{Name: "generator", CfgKey: configuration.PopulateGeneratorKey, DefaultV: "uniform", Usage: "sampling policy: uniform, weighted, or random"},
		{Name: "seed", CfgKey: configuration.PopulateSeedKey, DefaultV: int64(0), Usage: "seed for the sampling policy's deterministic shuffle"},
	}
	for _, f := range fls {
		if err := flags.Set(cmd, f); err != nil {
			return nil, err
		}
	}

	return cmd, nil
}

func runPopulate(_ *cobra.Command, args []string) error {
	cfg := orchestrator.Config{
		SourceRoot: configuration.Get[string](configuration.PopulateSourceRootKey),
		Scope:      sourceline.Scope(configuration.Get[string](configuration.PopulateScopeKey)),
		Extensions: configuration.Get[[]string](configuration.PopulateExtensionKey),
		Excludes:   configuration.Get[[]string](configuration.PopulateExcludeKey),
		Limit:      configuration.Get[int](configuration.PopulateLimitKey),
		Policy:     sampler.Policy(configuration.Get[string](configuration.PopulateGeneratorKey)),
		Seed:       configuration.Get[int64](configuration.PopulateSeedKey),
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 1 << 30
	}

	mutants, err := orchestrator.Populate(cfg, analyzer.LineScanner{})
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(mutants))
	for _, m := range mutants {
		lines = append(lines, m.Serialize())
	}
	out := strings.Join(lines, "\n")
	if len(lines) > 0 {
		out += "\n"
	}

	if err := os.WriteFile(args[0], []byte(out), 0o644); err != nil {
		return execution.Wrap(execution.IoError, err)
	}

	log.Infof("wrote %d mutants to %s\n", len(mutants), args[0])
	return nil
}
