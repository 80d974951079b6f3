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

// sdlOperator is Statement Deletion: replace a statement with an empty
// block `{}`. Declarations, null statements, compound bodies, loop and
// selection headers, return, and delete-expressions are never deleted.
// A statement is only a candidate when its parent is a compound
// statement, or it is the unbraced single-statement body of
// if/for/while/do, and it must not be the value-producing statement of
// a GNU statement expression.
type sdlOperator struct{}

func (sdlOperator) ID() mutant.Operator { return mutant.SDL }

func (sdlOperator) Applicable(n analyzer.Node) bool {
	if n.Kind != analyzer.Statement {
		return false
	}
	switch n.StmtK {
	case analyzer.StmtDeclaration, analyzer.StmtNull, analyzer.StmtCompound,
		analyzer.StmtSelectionHeader, analyzer.StmtIterationHeader,
		analyzer.StmtTryHeader, analyzer.StmtReturn, analyzer.StmtDeleteExpr:
		return false
	}
	if n.IsLastOfStmtExpr {
		return false
	}
	return n.ParentIsCompound || n.IsSingleStmtBody
}

func (o sdlOperator) Emit(n analyzer.Node, path string) []mutant.Mutant {
	return []mutant.Mutant{emitReplacement(n, path, "{}", o.ID())}
}
