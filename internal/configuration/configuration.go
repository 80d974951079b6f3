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

// Package configuration is Sentinel's Viper-backed configuration layer:
// command flags, environment variables and a .sentinel.yaml file, merged
// with flags taking precedence.
package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/shift-left/sentinel/internal/mutant"
)

// This is the list of the keys available in config files and as flags.
const (
	SentinelSilentKey  = "silent"
	SentinelLogFileKey = "log-file"

	RunBuildDirKey           = "run.build-dir"
	RunWorkDirKey            = "run.work-dir"
	RunBuildCommandKey       = "run.build-command"
	RunTestCommandKey        = "run.test-command"
	RunTestResultDirKey      = "run.test-result-dir"
	RunTestResultExtKey      = "run.test-result-extension"
	RunScopeKey              = "run.scope"
	RunExtensionKey          = "run.extension"
	RunPatternKey            = "run.pattern"
	RunMaxMutantsKey         = "run.max-mutants"
	RunSamplerKey            = "run.sampler"
	RunSeedKey               = "run.seed"
	RunTimeoutKey            = "run.timeout"
	RunKillAfterKey          = "run.kill-after"
	RunCoverageFileKey       = "run.coverage-file"
	RunDryRunKey             = "run.dry-run"
	RunThresholdEfficacyKey  = "run.threshold.efficacy"
	RunThresholdMCoverageKey = "run.threshold.mutant-coverage"
	RunOutputStatusesKey     = "run.output-statuses"

	PopulateSourceRootKey = "populate.source-root"
	PopulateBuildDirKey   = "populate.build-dir"
	PopulateScopeKey      = "populate.scope"
	PopulateExtensionKey  = "populate.extension"
	PopulateExcludeKey    = "populate.exclude"
	PopulateLimitKey      = "populate.limit"
	PopulateGeneratorKey  = "populate.generator"
	PopulateSeedKey       = "populate.seed"
	PopulateOutputKey     = "populate.output"

	MutateMutantKey  = "mutate.mutant"
	MutateWorkDirKey = "mutate.work-dir"

	EvaluateMutantKey    = "evaluate.mutant"
	EvaluateExpectedKey  = "evaluate.expected"
	EvaluateActualKey    = "evaluate.actual"
	EvaluateTestStateKey = "evaluate.test-state"
	EvaluateOutputKey    = "evaluate.output"

	ReportFormatKey         = "report.format"
	ReportOutputKey         = "report.output"
	ReportEvaluationFileKey = "report.evaluation-file"
	ReportSourceRootKey     = "report.source-root"
	ReportOutputDirKey      = "report.output-dir"
)

const (
	sentinelCfgName      = ".sentinel"
	sentinelEnvVarPrefix = "SENTINEL"

	xdgConfigHomeKey = "XDG_CONFIG_HOME"

	windowsOs = "windows"
)

// Init initializes the viper configuration for Sentinel.
//
// It sets the configuration file name as .sentinel.yaml, adds the passed
// paths as ConfigPaths and enables AutomaticEnv with SENTINEL as prefix.
// Environment variables take precedence over the configuration file and
// must be set in the format:
//
//	SENTINEL_<COMMAND NAME>_<FLAG NAME>
func Init(cPaths []string) error {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.SetEnvPrefix(sentinelEnvVarPrefix)
	viper.AutomaticEnv()
	viper.SetConfigName(sentinelCfgName)
	viper.SetConfigType("yaml")

	if isSpecificFile(cPaths) {
		viper.SetConfigFile(cPaths[0])
		err := viper.ReadInConfig()
		if err != nil {
			return err
		}
	} else if arePathsNotSet(cPaths) {
		cPaths = defaultConfigPaths()
	}

	for _, p := range cPaths {
		viper.AddConfigPath(p)
	}

	_ = viper.ReadInConfig() // ignoring error if file not present

	return nil
}

// OperatorEnabledKey returns the configuration key controlling whether
// an Operator is active for this run. The generated key has the format
// 'mutants.<operator>.enabled', which corresponds to the Yaml:
//
//	mutants:
//	  aor:
//	    enabled: [bool]
func OperatorEnabledKey(op mutant.Operator) string {
	return fmt.Sprintf("mutants.%s.enabled", strings.ToLower(string(op)))
}

func isSpecificFile(cPaths []string) bool {
	return len(cPaths) == 1 && filepath.Ext(cPaths[0]) != ""
}

func arePathsNotSet(cPaths []string) bool {
	return len(cPaths) == 0 || len(cPaths) == 1 && cPaths[0] == ""
}

func defaultConfigPaths() []string {
	result := make([]string, 0, 4)

	// First global config
	if runtime.GOOS != windowsOs {
		result = append(result, "/etc/sentinel")
	}

	// Then $XDG_CONFIG_HOME
	xchLocation, _ := homedir.Expand("~/.config")
	if x := os.Getenv(xdgConfigHomeKey); x != "" {
		xchLocation = x
	}
	xchLocation = filepath.Join(xchLocation, "sentinel")
	result = append(result, xchLocation)

	// Then $HOME
	homeLocation, err := homedir.Expand("~/.sentinel")
	if err != nil {
		return result
	}
	result = append(result, homeLocation)

	// Then the source tree root, if one can be found
	if root := findSourceRoot(); root != "" {
		result = append(result, root)
	}

	// Finally the current directory
	result = append(result, ".")

	return result
}

// findSourceRoot walks up from the working directory looking for a
// compile_commands.json, the usual marker of a C/C++ build tree's root.
func findSourceRoot() string {
	path, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if fi, err := os.Stat(filepath.Join(path, "compile_commands.json")); err == nil && !fi.IsDir() {
			return path
		}
		d := filepath.Dir(path)
		if d == path {
			break
		}
		path = d
	}

	return ""
}

var mutex sync.RWMutex

// Set offers synchronised access to Viper.
func Set[T any](k string, v T) {
	mutex.Lock()
	defer mutex.Unlock()
	viper.Set(k, v)
}

// Get offers synchronised access to Viper.
func Get[T any](k string) T {
	var r T
	mutex.RLock()
	defer mutex.RUnlock()
	r, _ = viper.Get(k).(T)

	return r
}

// Reset is used mainly for testing purposes, in order to clean up the
// Viper instance.
func Reset() {
	mutex.Lock()
	defer mutex.Unlock()
	viper.Reset()
}
