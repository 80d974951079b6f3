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

// rorOperator is Relational Operator Replacement: each of
// < <= > >= == != replaced with each of the other five, plus the whole
// comparison replaced with 1 and 0. If either operand is a null-pointer
// literal, only the ==/!= replacements are emitted.
type rorOperator struct{}

var relationalOperators = []string{"<", "<=", ">", ">=", "==", "!="}
var nullSafeRelationalOperators = []string{"==", "!="}

func (rorOperator) ID() mutant.Operator { return mutant.ROR }

func (rorOperator) Applicable(n analyzer.Node) bool {
	return n.Kind == analyzer.BinaryRelational && contains(relationalOperators, n.Operator)
}

func (o rorOperator) Emit(n analyzer.Node, path string) []mutant.Mutant {
	candidates := relationalOperators
	if n.NullLiteralOperand {
		candidates = nullSafeRelationalOperators
	}

	var mutants []mutant.Mutant
	for _, replacement := range candidates {
		if replacement == n.Operator {
			continue
		}
		mutants = append(mutants, emitReplacement(n, path, replacement, o.ID()))
	}
	if !n.NullLiteralOperand {
		mutants = append(mutants,
			emitReplacement(n, path, "1", o.ID()),
			emitReplacement(n, path, "0", o.ID()),
		)
	}
	return mutants
}
