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

package mutator

import (
	"github.com/shift-left/sentinel/internal/analyzer"
	"github.com/shift-left/sentinel/internal/mutant"
)

// lcrOperator is Logical Connector Replacement: && and || replaced
// with each other, plus the whole expression replaced with the
// literals 1 and 0.
type lcrOperator struct{}

var logicalOperators = []string{"&&", "||"}

func (lcrOperator) ID() mutant.Operator { return mutant.LCR }

func (lcrOperator) Applicable(n analyzer.Node) bool {
	return n.Kind == analyzer.BinaryLogical && contains(logicalOperators, n.Operator)
}

func (o lcrOperator) Emit(n analyzer.Node, path string) []mutant.Mutant {
	var mutants []mutant.Mutant
	for _, replacement := range logicalOperators {
		if replacement == n.Operator {
			continue
		}
		mutants = append(mutants, emitReplacement(n, path, replacement, o.ID()))
	}
	mutants = append(mutants,
		emitReplacement(n, path, "1", o.ID()),
		emitReplacement(n, path, "0", o.ID()),
	)
	return mutants
}
