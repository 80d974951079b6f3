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
	"fmt"

	"github.com/shift-left/sentinel/internal/analyzer"
	"github.com/shift-left/sentinel/internal/mutant"
)

// uoiOperator is Unary Operator Insertion: wraps a variable reference,
// pointer dereference, array subscript, or member expression with a
// post-increment/decrement if scalar non-pointer, or a logical negation
// if boolean. The expression must be non-const.
type uoiOperator struct{}

func (uoiOperator) ID() mutant.Operator { return mutant.UOI }

func (uoiOperator) Applicable(n analyzer.Node) bool {
	if n.Kind != analyzer.Reference {
		return false
	}
	return !n.IsConst
}

func (o uoiOperator) Emit(n analyzer.Node, path string) []mutant.Mutant {
	var mutants []mutant.Mutant
	if n.IsBoolean {
		mutants = append(mutants, wrapReference(n, path, "!(%s)", o.ID()))
		return mutants
	}
	if n.PointerOperand {
		return mutants
	}
	mutants = append(mutants,
		wrapReference(n, path, "((%s)++)", o.ID()),
		wrapReference(n, path, "((%s)--)", o.ID()),
	)
	return mutants
}

func wrapReference(n analyzer.Node, path, format string, op mutant.Operator) mutant.Mutant {
	return emitReplacement(n, path, fmt.Sprintf(format, n.Text), op)
}
