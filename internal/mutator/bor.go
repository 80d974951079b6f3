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

// borOperator is Bitwise Operator Replacement: each of & | ^ replaced
// with each of the other two.
type borOperator struct{}

var bitwiseOperators = []string{"&", "|", "^"}

func (borOperator) ID() mutant.Operator { return mutant.BOR }

func (borOperator) Applicable(n analyzer.Node) bool {
	return n.Kind == analyzer.BinaryBitwise && contains(bitwiseOperators, n.Operator)
}

func (o borOperator) Emit(n analyzer.Node, path string) []mutant.Mutant {
	var mutants []mutant.Mutant
	for _, replacement := range bitwiseOperators {
		if replacement == n.Operator {
			continue
		}
		mutants = append(mutants, emitReplacement(n, path, replacement, o.ID()))
	}
	return mutants
}
