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

// sorOperator is Shift Operator Replacement: << replaced with >> and
// vice versa.
type sorOperator struct{}

func (sorOperator) ID() mutant.Operator { return mutant.SOR }

func (sorOperator) Applicable(n analyzer.Node) bool {
	return n.Kind == analyzer.BinaryShift && (n.Operator == "<<" || n.Operator == ">>")
}

func (o sorOperator) Emit(n analyzer.Node, path string) []mutant.Mutant {
	other := "<<"
	if n.Operator == "<<" {
		other = ">>"
	}
	return []mutant.Mutant{emitReplacement(n, path, other, o.ID())}
}
