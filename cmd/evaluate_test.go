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
	"strings"
	"testing"

	"github.com/shift-left/sentinel/internal/configuration"
	"github.com/shift-left/sentinel/internal/mutant"
)

func TestNewEvaluateCmdRegistersFlags(t *testing.T) {
	c, err := newEvaluateCmd(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"mutant", "expected", "actual", "test-state"} {
		if c.Flags().Lookup(name) == nil {
			t.Errorf("expected a %q flag", name)
		}
	}
}

func TestRunEvaluateAppendsResult(t *testing.T) {
	defer configuration.Reset()

	dir := t.TempDir()
	expected := filepath.Join(dir, "expected")
	actual := filepath.Join(dir, "actual")
	if err := os.MkdirAll(expected, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(actual, 0o755); err != nil {
		t.Fatal(err)
	}
	writeGoogleTestXML(t, expected, `<testsuites><testsuite name="Suite"><testcase status="run" name="Test" classname="Suite"/></testsuite></testsuites>`)
	writeGoogleTestXML(t, actual, `<testsuites><testsuite name="Suite"><testcase status="run" name="Test" classname="Suite"><failure message="boom"/></testcase></testsuite></testsuites>`)

	m := mutant.New(mutant.AOR, "target.cpp", "::main",
		mutant.Position{Line: 1, Column: 9}, mutant.Position{Line: 1, Column: 10}, "-")

	configuration.Set(configuration.EvaluateMutantKey, m.Serialize())
	configuration.Set(configuration.EvaluateExpectedKey, expected)
	configuration.Set(configuration.EvaluateActualKey, actual)
	configuration.Set(configuration.EvaluateTestStateKey, "success")

	out := filepath.Join(dir, "results.log")
	if err := runEvaluate(nil, []string{out}); err != nil {
		t.Fatalf("runEvaluate failed: %s", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "target.cpp") {
		t.Errorf("expected output to reference target.cpp, got %q", got)
	}
}

func TestRunEvaluateRejectsUnknownTrialState(t *testing.T) {
	defer configuration.Reset()

	m := mutant.New(mutant.AOR, "target.cpp", "::main",
		mutant.Position{Line: 1, Column: 9}, mutant.Position{Line: 1, Column: 10}, "-")
	configuration.Set(configuration.EvaluateMutantKey, m.Serialize())
	configuration.Set(configuration.EvaluateTestStateKey, "not-a-state")

	if err := runEvaluate(nil, []string{filepath.Join(t.TempDir(), "out.log")}); err == nil {
		t.Error("expected an error for an unknown test-state")
	}
}

func writeGoogleTestXML(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "results.xml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
