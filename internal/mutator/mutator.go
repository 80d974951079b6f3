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

// Package mutator is the mutation-operator catalog: seven operators,
// each a pure predicate over an analyzer.Node ("is this mutable?") and
// a generator that emits Mutants for it.
package mutator

import (
	"github.com/shift-left/sentinel/internal/analyzer"
	"github.com/shift-left/sentinel/internal/mutant"
)

// Operator is the catalog's common shape: Applicable is a pure
// predicate, Emit must be idempotent and side-effect-free on the node.
// Both may assume Applicable(n) already returned true when Emit is
// called.
type Operator interface {
	ID() mutant.Operator
	Applicable(n analyzer.Node) bool
	Emit(n analyzer.Node, path string) []mutant.Mutant
}

// Catalog lists every operator in the order C4 tries them against a
// candidate node.
var Catalog = []Operator{
	aorOperator{},
	borOperator{},
	lcrOperator{},
	rorOperator{},
	sorOperator{},
	sdlOperator{},
	uoiOperator{},
}

func emitReplacement(n analyzer.Node, path, replacement string, op mutant.Operator) mutant.Mutant {
	return mutant.New(op, path, n.QualifiedFunction, n.First, n.Last, replacement)
}
