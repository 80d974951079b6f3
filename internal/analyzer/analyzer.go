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

// Package analyzer defines the AST collaborator boundary: a function
// that, given a source file and a set of target line numbers, emits
// the candidate mutation sites on those lines. The mutation-operator
// catalog and candidate collector consume Nodes through this interface
// and are agnostic to how they were produced; a real build would back
// it with a C/C++ AST library (e.g. clang's Tooling API via cgo), out
// of scope here.
package analyzer

import "github.com/shift-left/sentinel/internal/mutant"

// Kind classifies a Node for the operator catalog's dispatch.
type Kind int

const (
	// BinaryArithmetic covers + - * / % between two operands.
	BinaryArithmetic Kind = iota
	// BinaryBitwise covers & | ^.
	BinaryBitwise
	// BinaryLogical covers && ||.
	BinaryLogical
	// BinaryRelational covers < <= > >= == !=.
	BinaryRelational
	// BinaryShift covers << >>.
	BinaryShift
	// Statement is any statement node considered for SDL.
	Statement
	// Reference is a variable reference, pointer dereference, array
	// subscript, or member expression, considered for UOI.
	Reference
)

// StmtKind narrows Statement nodes for the SDL guard conditions.
type StmtKind int

const (
	StmtPlain StmtKind = iota
	StmtDeclaration
	StmtNull
	StmtCompound
	StmtSelectionHeader
	StmtIterationHeader
	StmtTryHeader
	StmtReturn
	StmtDeleteExpr
)

// Node is one AST site the operator catalog may mutate. The analyzer
// collaborator is responsible for populating every field an operator
// needs; fields irrelevant to a Node's Kind are left zero.
type Node struct {
	Kind Kind

	// First, Last bound the node's source range, 1-based, [First, Last).
	First, Last mutant.Position

	// QualifiedFunction is the enclosing function's fully qualified
	// name, or empty if none could be resolved.
	QualifiedFunction string

	// Depth is the number of enclosing compound statements up to the
	// enclosing function declaration, used only by the weighted sampler.
	Depth int

	// Operator is the source operator token for binary Kinds, e.g. "+"
	// or "<=".
	Operator string

	// Text is the exact source bytes of the node's [First, Last) range,
	// used by operators (UOI) that wrap the original expression rather
	// than replacing it outright.
	Text string

	// Operand type flags, populated for binary Kinds.
	NonIntegralOperand bool
	PointerOperand     bool
	ArrayOperand       bool
	NullLiteralOperand bool

	// StmtK narrows Statement nodes.
	StmtK StmtKind
	// ParentIsCompound is true when the statement's parent is a
	// compound statement ({ ... }).
	ParentIsCompound bool
	// IsSingleStmtBody is true when the statement is the unbraced
	// single-statement body of if/for/while/do.
	IsSingleStmtBody bool
	// IsLastOfStmtExpr is true when deleting this statement would
	// remove the value-producing statement of a GNU statement
	// expression.
	IsLastOfStmtExpr bool

	// Reference-kind flags.
	IsBoolean bool
	IsConst   bool
}

// Collector is the AST collaborator: given a source file and the set
// of target line numbers, it emits candidate Nodes for every construct
// found on those lines. Implementations may resolve macro expansions to
// their expansion location, as clang's SourceManager does.
type Collector interface {
	Collect(path string, targetLines map[int]bool) ([]Node, error)
}
