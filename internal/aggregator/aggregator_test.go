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

package aggregator_test

import (
	"testing"

	"github.com/shift-left/sentinel/internal/aggregator"
	"github.com/shift-left/sentinel/internal/mutant"
	"github.com/shift-left/sentinel/internal/testoutcome"
)

func result(path string, state testoutcome.State) testoutcome.Result {
	m := mutant.New(mutant.AOR, path, "::f", mutant.Position{Line: 1, Column: 1}, mutant.Position{Line: 1, Column: 2}, "-")
	return testoutcome.Result{Mutant: m, State: state}
}

func TestAddTalliesFileDirAndOverall(t *testing.T) {
	r := aggregator.New("/src")
	r.Add(result("/src/pkg/a.cpp", testoutcome.Killed))
	r.Add(result("/src/pkg/a.cpp", testoutcome.Survived))
	r.Add(result("/src/pkg/b.cpp", testoutcome.Killed))

	fileA := r.ByFile["pkg/a.cpp"]
	if fileA.Total != 2 || fileA.Detected != 1 {
		t.Fatalf("want file a: total 2 detected 1, got %+v", fileA)
	}
	dir := r.ByDir["pkg"]
	if dir.Total != 3 || dir.Detected != 2 {
		t.Fatalf("want dir pkg: total 3 detected 2, got %+v", dir)
	}
	if r.Overall.Total != 3 || r.Overall.Detected != 2 {
		t.Fatalf("want overall total 3 detected 2, got %+v", r.Overall)
	}
}

func TestCoverageExcludesBuildFailureRuntimeErrorTimeout(t *testing.T) {
	r := aggregator.New("/src")
	r.Add(result("/src/a.cpp", testoutcome.Killed))
	r.Add(result("/src/a.cpp", testoutcome.Survived))
	r.Add(result("/src/a.cpp", testoutcome.BuildFailure))
	r.Add(result("/src/a.cpp", testoutcome.RuntimeError))
	r.Add(result("/src/a.cpp", testoutcome.Timeout))

	g := r.ByFile["a.cpp"]
	if g.Denominator() != 2 {
		t.Fatalf("want denominator 2 (5 total - 3 excluded), got %d", g.Denominator())
	}
	if got := g.Coverage(); got != 0.5 {
		t.Errorf("want coverage 0.5, got %v", got)
	}
}

func TestCoverageZeroWhenDenominatorIsZero(t *testing.T) {
	r := aggregator.New("/src")
	r.Add(result("/src/a.cpp", testoutcome.BuildFailure))

	g := r.ByFile["a.cpp"]
	if got := g.Coverage(); got != 0 {
		t.Errorf("want coverage 0 when denominator is 0, got %v", got)
	}
}

func TestLegacyDirKeyCollapsesSeparators(t *testing.T) {
	cases := map[string]string{
		".":         ".",
		"":          ".",
		"a":         "a",
		"a/b/c":     "a.b.c",
	}
	for in, want := range cases {
		if got := aggregator.LegacyDirKey(in); got != want {
			t.Errorf("LegacyDirKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSortedKeysAreDeterministic(t *testing.T) {
	r := aggregator.New("/src")
	r.Add(result("/src/z.cpp", testoutcome.Killed))
	r.Add(result("/src/a.cpp", testoutcome.Killed))

	keys := r.SortedFileKeys()
	if len(keys) != 2 || keys[0] != "a.cpp" || keys[1] != "z.cpp" {
		t.Errorf("want sorted [a.cpp z.cpp], got %v", keys)
	}
}
