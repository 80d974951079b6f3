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

package collector_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shift-left/sentinel/internal/analyzer"
	"github.com/shift-left/sentinel/internal/collector"
	"github.com/shift-left/sentinel/internal/mutant"
)

type stubCollector struct {
	nodes []analyzer.Node
}

func (s stubCollector) Collect(string, map[int]bool) ([]analyzer.Node, error) {
	return s.nodes, nil
}

func tempFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.cpp")
	if err := os.WriteFile(path, []byte("int f() { return 1 + 2; }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollectSkipsNodesOffTargetLines(t *testing.T) {
	path := tempFile(t)
	stub := stubCollector{nodes: []analyzer.Node{
		{Kind: analyzer.BinaryArithmetic, Operator: "+", First: pos(1), Last: pos(1)},
		{Kind: analyzer.BinaryArithmetic, Operator: "+", First: pos(99), Last: pos(99)},
	}}

	set, err := collector.Collect(stub, path, []int{1})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	for _, c := range set {
		if c.Mutant.First.Line != 1 {
			t.Errorf("want only line-1 candidates, got line %d", c.Mutant.First.Line)
		}
	}
	if len(set) == 0 {
		t.Fatal("want at least one candidate on line 1")
	}
}

func TestCollectAppliesEveryApplicableOperator(t *testing.T) {
	path := tempFile(t)
	stub := stubCollector{nodes: []analyzer.Node{
		{Kind: analyzer.BinaryArithmetic, Operator: "+", First: pos(1), Last: pos(1), Depth: 2},
	}}

	set, err := collector.Collect(stub, path, []int{1})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	// AOR on "+" emits 4 replacements (- * / %, minus any guarded out).
	if len(set) != 4 {
		t.Errorf("want 4 candidates, got %d", len(set))
	}
	for _, c := range set {
		if c.Depth != 2 {
			t.Errorf("want depth propagated from node, got %d", c.Depth)
		}
	}
}

func TestCollectEmptyNodesReturnsEmptySet(t *testing.T) {
	path := tempFile(t)
	set, err := collector.Collect(stubCollector{}, path, []int{1})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("want empty set, got %d", len(set))
	}
}

func pos(line int) mutant.Position {
	return mutant.Position{Line: line, Column: 1}
}
