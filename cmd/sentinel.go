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

// Package cmd wires Sentinel's cobra command tree: the root command
// and its five subcommands (populate, mutate, evaluate, report, run).
package cmd

import (
	"context"
	"errors"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/shift-left/sentinel/cmd/internal/flags"
	"github.com/shift-left/sentinel/internal/configuration"
	"github.com/shift-left/sentinel/internal/log"
)

const paramConfigFile = "config"

// Execute initialises a new Cobra root command (sentinel) with a
// custom version string used in the `-v` flag results.
func Execute(ctx context.Context, version string) error {
	rootCmd, err := newRootCmd(ctx, version)
	if err != nil {
		return err
	}

	return rootCmd.execute(ctx)
}

type sentinelCmd struct {
	cmd *cobra.Command
}

func (sc sentinelCmd) execute(ctx context.Context) error {
	var cfgFile string
	cobra.OnInitialize(func() {
		if err := configuration.Init([]string{cfgFile}); err != nil {
			log.Errorf("initialization error: %s\n", err)
		}
	})
	sc.cmd.PersistentFlags().StringVar(&cfgFile, paramConfigFile, "", "override config file")

	return sc.cmd.ExecuteContext(ctx)
}

func newRootCmd(ctx context.Context, version string) (*sentinelCmd, error) {
	if version == "" {
		return nil, errors.New("expected a version string")
	}

	cmd := &cobra.Command{
		SilenceUsage:  true,
		SilenceErrors: true,
		Use:           "sentinel",
		Short:         shortExplainer(),
		Version:       version,
	}

	subcommands := []func(context.Context) (*cobra.Command, error){
		newPopulateCmd, newMutateCmd, newEvaluateCmd, newReportCmd, newRunCmd,
	}
	for _, newSub := range subcommands {
		sub, err := newSub(ctx)
		if err != nil {
			return nil, err
		}
		cmd.AddCommand(sub)
	}

	flag := &flags.Flag{Name: "silent", CfgKey: configuration.SentinelSilentKey, Shorthand: "s", DefaultV: false, Usage: "suppress output and run in silent mode"}
	if err := flags.SetPersistent(cmd, flag); err != nil {
		return nil, err
	}
	logFileFlag := &flags.Flag{Name: "log-file", CfgKey: configuration.SentinelLogFileKey, DefaultV: "", Usage: "rotate logs to this file instead of stderr"}
	if err := flags.SetPersistent(cmd, logFileFlag); err != nil {
		return nil, err
	}

	return &sentinelCmd{cmd: cmd}, nil
}

func shortExplainer() string {
	return heredoc.Doc(`
		Sentinel is a mutation testing engine for C and C++ projects.
	`)
}
