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

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/shift-left/sentinel/cmd/internal/flags"
	"github.com/shift-left/sentinel/internal/configuration"
	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/log"
	"github.com/shift-left/sentinel/internal/mutant"
	"github.com/shift-left/sentinel/internal/orchestrator"
)

func newMutateCmd(_ context.Context) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "mutate [source-root]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Apply one mutant string to the source tree",
		Long: heredoc.Doc(`
			Applies a single serialized mutant to the source tree, backing up
			the original file under work-dir/backup first. Pair with
			"evaluate" and a manual build/test invocation to drive a trial
			by hand.
		`),
		RunE: runMutate,
	}

	fls := []*flags.Flag{
		{Name: "mutant", CfgKey: configuration.MutateMutantKey, DefaultV: "", Usage: "the serialized mutant to apply"},
		{Name: "work-dir", CfgKey: configuration.MutateWorkDirKey, DefaultV: "", Usage: "backup location"},
	}
	for _, f := range fls {
		if err := flags.Set(cmd, f); err != nil {
			return nil, err
		}
	}

	return cmd, nil
}

func runMutate(_ *cobra.Command, args []string) error {
	sourceRoot := "."
	if len(args) > 0 {
		sourceRoot = args[0]
	}

	serialized := configuration.Get[string](configuration.MutateMutantKey)
	if serialized == "" {
		return execution.NewExitErr(execution.ConfigError)
	}
	m, err := mutant.Parse(serialized)
	if err != nil {
		return execution.Wrap(execution.ConfigError, err)
	}

	workDir := configuration.Get[string](configuration.MutateWorkDirKey)
	if workDir == "" {
		return execution.NewExitErr(execution.ConfigError)
	}

	if err := orchestrator.Mutate(sourceRoot, workDir, m); err != nil {
		return err
	}

	log.Infof("applied %s\n", m)
	return nil
}
