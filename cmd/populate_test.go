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
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shift-left/sentinel/internal/configuration"
)

func initGitRepo(t *testing.T, root string) {
	t.Helper()
	run := func(args ...string) {
		cmd := exec.Command("git", append([]string{"-C", root}, args...)...)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-q")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
	run("add", ".")
	run("commit", "-q", "-m", "initial")
}

func TestNewPopulateCmdRegistersFlags(t *testing.T) {
	c, err := newPopulateCmd(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"source-root", "build-dir", "scope", "extension", "exclude", "limit", "generator", "seed"} {
		if c.Flags().Lookup(name) == nil {
			t.Errorf("expected a %q flag", name)
		}
	}
}

func TestRunPopulateWritesMutants(t *testing.T) {
	defer configuration.Reset()

	dir := t.TempDir()
	src := filepath.Join(dir, "main.c")
	if err := os.WriteFile(src, []byte("int add(int a, int b) {\n    return a + b;\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	initGitRepo(t, dir)

	configuration.Set(configuration.PopulateSourceRootKey, dir)
	configuration.Set(configuration.PopulateScopeKey, "all")
	configuration.Set(configuration.PopulateExtensionKey, []string{".c"})
	configuration.Set(configuration.PopulateGeneratorKey, "uniform")

	out := filepath.Join(dir, "mutants.txt")
	if err := runPopulate(nil, []string{out}); err != nil {
		t.Fatalf("runPopulate failed: %s", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "main.c") {
		t.Errorf("expected output to reference main.c, got %q", content)
	}
}
