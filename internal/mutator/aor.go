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

// aorOperator is Arithmetic Operator Replacement: each of + - * / %
// replaced with each of the other four, subject to the operand-type
// guards below.
type aorOperator struct{}

var arithmeticOperators = []string{"+", "-", "*", "/", "%"}

func (aorOperator) ID() mutant.Operator { return mutant.AOR }

func (aorOperator) Applicable(n analyzer.Node) bool {
	if n.Kind != analyzer.BinaryArithmetic {
		return false
	}
	return contains(arithmeticOperators, n.Operator)
}

func (o aorOperator) Emit(n analyzer.Node, path string) []mutant.Mutant {
	var mutants []mutant.Mutant
	for _, replacement := range arithmeticOperators {
		if replacement == n.Operator {
			continue
		}
		if replacement == "%" && n.NonIntegralOperand {
			continue
		}
		if (replacement == "*" || replacement == "/") && (n.PointerOperand || n.ArrayOperand) {
			continue
		}
		mutants = append(mutants, emitReplacement(n, path, replacement, o.ID()))
	}
	return mutants
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
