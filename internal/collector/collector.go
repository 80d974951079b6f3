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

// Package collector walks one source file's candidate Nodes once and
// applies every operator in the catalog, producing the candidate pool
// a sampler later narrows to the final Mutant list.
package collector

import (
	"github.com/shift-left/sentinel/internal/analyzer"
	"github.com/shift-left/sentinel/internal/mutant"
	"github.com/shift-left/sentinel/internal/mutator"
)

// Candidate pairs a Mutant with the Depth of the Node it was derived
// from; Depth is not one of Mutant's seven identifying fields (it is
// not part of the frozen value type) but the weighted sampler needs it
// to rank lines.
type Candidate struct {
	Mutant mutant.Mutant
	Depth  int
}

// Set is the candidate pool produced for one translation unit: every
// element shares the same Path. Order is AST-traversal order;
// duplicates are possible and intentionally not removed here.
type Set []Candidate

// Collect walks path's Nodes (as produced by the analyzer collaborator)
// restricted to targetLines, and for each Node asks every operator in
// the catalog whether it applies, collecting every Mutant emitted.
func Collect(coll analyzer.Collector, path string, targetLines []int) (Set, error) {
	canonical, err := mutant.Canonicalize(path)
	if err != nil {
		return nil, err
	}

	lineSet := make(map[int]bool, len(targetLines))
	for _, l := range targetLines {
		lineSet[l] = true
	}

	nodes, err := coll.Collect(path, lineSet)
	if err != nil {
		return nil, err
	}

	var set Set
	for _, n := range nodes {
		if !onTargetLine(n, lineSet) {
			continue
		}
		for _, op := range mutator.Catalog {
			if !op.Applicable(n) {
				continue
			}
			for _, m := range op.Emit(n, canonical) {
				set = append(set, Candidate{Mutant: m, Depth: n.Depth})
			}
		}
	}
	return set, nil
}

func onTargetLine(n analyzer.Node, lineSet map[int]bool) bool {
	for l := range lineSet {
		if n.First.Line <= l && l <= n.Last.Line {
			return true
		}
	}
	return false
}
