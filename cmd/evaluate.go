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
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/shift-left/sentinel/cmd/internal/flags"
	"github.com/shift-left/sentinel/internal/configuration"
	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/mutant"
	"github.com/shift-left/sentinel/internal/orchestrator"
	"github.com/shift-left/sentinel/internal/testoutcome"
)

func newEvaluateCmd(_ context.Context) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "evaluate [output-file]",
		Args:  cobra.ExactArgs(1),
		Short: "Classify one mutant from pre-populated test-result directories",
		Long: heredoc.Doc(`
			Classifies a single mutant given its pre-mutation ("expected")
			and post-mutation ("actual") test-result directories, or a
			build-failure/timeout/uncovered trial state supplied directly,
			and appends the MutationResult line to output-file.
		`),
		RunE: runEvaluate,
	}

	fls := []*flags.Flag{
		{Name: "mutant", CfgKey: configuration.EvaluateMutantKey, DefaultV: "", Usage: "the serialized mutant under trial"},
		{Name: "expected", CfgKey: configuration.EvaluateExpectedKey, DefaultV: "", Usage: "directory of pre-mutation (golden) test-result XMLs"},
		{Name: "actual", CfgKey: configuration.EvaluateActualKey, DefaultV: "", Usage: "directory of post-mutation test-result XMLs"},
		{Name: "test-state", CfgKey: configuration.EvaluateTestStateKey, DefaultV: "success", Usage: "trial outcome: success, build_failure, timeout, or uncovered"},
	}
	for _, f := range fls {
		if err := flags.Set(cmd, f); err != nil {
			return nil, err
		}
	}

	return cmd, nil
}

func runEvaluate(_ *cobra.Command, args []string) error {
	serialized := configuration.Get[string](configuration.EvaluateMutantKey)
	m, err := mutant.Parse(serialized)
	if err != nil {
		return execution.Wrap(execution.ConfigError, err)
	}

	trial, ok := testoutcome.ParseTrialState(configuration.Get[string](configuration.EvaluateTestStateKey))
	if !ok {
		return execution.NewExitErr(execution.ConfigError)
	}

	result, err := orchestrator.Evaluate(m,
		configuration.Get[string](configuration.EvaluateExpectedKey),
		configuration.Get[string](configuration.EvaluateActualKey),
		trial,
	)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(args[0], os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return execution.Wrap(execution.IoError, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, result.Serialize()); err != nil {
		return execution.Wrap(execution.IoError, err)
	}

	return nil
}
