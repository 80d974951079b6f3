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

package mutator_test

import (
	"testing"

	"github.com/shift-left/sentinel/internal/analyzer"
	"github.com/shift-left/sentinel/internal/mutant"
	"github.com/shift-left/sentinel/internal/mutator"
)

func replacements(t *testing.T, op mutator.Operator, n analyzer.Node) []string {
	t.Helper()
	if !op.Applicable(n) {
		return nil
	}
	var out []string
	for _, m := range op.Emit(n, "/a.cpp") {
		out = append(out, m.Replacement)
	}
	return out
}

func TestAORSkipsModuloOnNonIntegral(t *testing.T) {
	op := findOperator(t, mutant.AOR)
	n := analyzer.Node{Kind: analyzer.BinaryArithmetic, Operator: "+", NonIntegralOperand: true}
	got := replacements(t, op, n)
	for _, r := range got {
		if r == "%" {
			t.Errorf("want no %% replacement for non-integral operand, got %v", got)
		}
	}
}

func TestAORSkipsMulDivOnPointer(t *testing.T) {
	op := findOperator(t, mutant.AOR)
	n := analyzer.Node{Kind: analyzer.BinaryArithmetic, Operator: "+", PointerOperand: true}
	got := replacements(t, op, n)
	for _, r := range got {
		if r == "*" || r == "/" {
			t.Errorf("want no */÷ replacement for pointer operand, got %v", got)
		}
	}
}

func TestAOREmitsFourReplacements(t *testing.T) {
	op := findOperator(t, mutant.AOR)
	n := analyzer.Node{Kind: analyzer.BinaryArithmetic, Operator: "+"}
	got := replacements(t, op, n)
	if len(got) != 4 {
		t.Errorf("want 4 replacements, got %d: %v", len(got), got)
	}
}

func TestBOREmitsTwoReplacements(t *testing.T) {
	op := findOperator(t, mutant.BOR)
	n := analyzer.Node{Kind: analyzer.BinaryBitwise, Operator: "&"}
	got := replacements(t, op, n)
	if len(got) != 2 {
		t.Errorf("want 2 replacements, got %d: %v", len(got), got)
	}
}

func TestLCREmitsOperatorSwapPlusLiterals(t *testing.T) {
	op := findOperator(t, mutant.LCR)
	n := analyzer.Node{Kind: analyzer.BinaryLogical, Operator: "&&"}
	got := replacements(t, op, n)
	want := map[string]bool{"||": false, "1": false, "0": false}
	for _, r := range got {
		if _, ok := want[r]; ok {
			want[r] = true
		}
	}
	for r, found := range want {
		if !found {
			t.Errorf("want replacement %q, got %v", r, got)
		}
	}
}

func TestRORNullOperandOnlyEqNe(t *testing.T) {
	op := findOperator(t, mutant.ROR)
	n := analyzer.Node{Kind: analyzer.BinaryRelational, Operator: "==", NullLiteralOperand: true}
	got := replacements(t, op, n)
	for _, r := range got {
		if r != "!=" {
			t.Errorf("want only != replacement for null operand, got %v", got)
		}
	}
	if len(got) != 1 {
		t.Errorf("want exactly 1 replacement, got %d: %v", len(got), got)
	}
}

func TestROREmitsFiveReplacementsPlusLiterals(t *testing.T) {
	op := findOperator(t, mutant.ROR)
	n := analyzer.Node{Kind: analyzer.BinaryRelational, Operator: "<"}
	got := replacements(t, op, n)
	if len(got) != 7 {
		t.Errorf("want 7 replacements (5 operators + 2 literals), got %d: %v", len(got), got)
	}
}

func TestSOREmitsOtherShift(t *testing.T) {
	op := findOperator(t, mutant.SOR)
	n := analyzer.Node{Kind: analyzer.BinaryShift, Operator: "<<"}
	got := replacements(t, op, n)
	if len(got) != 1 || got[0] != ">>" {
		t.Errorf("want [>>], got %v", got)
	}
}

func TestSDLRejectsHeadersAndReturn(t *testing.T) {
	op := findOperator(t, mutant.SDL)
	testCases := []analyzer.StmtKind{
		analyzer.StmtDeclaration, analyzer.StmtNull, analyzer.StmtCompound,
		analyzer.StmtSelectionHeader, analyzer.StmtIterationHeader,
		analyzer.StmtTryHeader, analyzer.StmtReturn, analyzer.StmtDeleteExpr,
	}
	for _, sk := range testCases {
		n := analyzer.Node{Kind: analyzer.Statement, StmtK: sk, ParentIsCompound: true}
		if op.Applicable(n) {
			t.Errorf("want not applicable for StmtKind %v", sk)
		}
	}
}

func TestSDLRequiresCompoundParentOrSingleBody(t *testing.T) {
	op := findOperator(t, mutant.SDL)
	n := analyzer.Node{Kind: analyzer.Statement, StmtK: analyzer.StmtPlain}
	if op.Applicable(n) {
		t.Error("want not applicable without compound parent or single-statement body")
	}
	n.ParentIsCompound = true
	if !op.Applicable(n) {
		t.Error("want applicable with compound parent")
	}
}

func TestSDLRejectsLastStmtOfStmtExpr(t *testing.T) {
	op := findOperator(t, mutant.SDL)
	n := analyzer.Node{Kind: analyzer.Statement, StmtK: analyzer.StmtPlain, ParentIsCompound: true, IsLastOfStmtExpr: true}
	if op.Applicable(n) {
		t.Error("want not applicable for last statement of a statement-expression")
	}
}

func TestSDLEmitsEmptyBlock(t *testing.T) {
	op := findOperator(t, mutant.SDL)
	n := analyzer.Node{Kind: analyzer.Statement, StmtK: analyzer.StmtPlain, ParentIsCompound: true}
	got := replacements(t, op, n)
	if len(got) != 1 || got[0] != "{}" {
		t.Errorf("want [{}], got %v", got)
	}
}

func TestUOIRequiresNonConst(t *testing.T) {
	op := findOperator(t, mutant.UOI)
	n := analyzer.Node{Kind: analyzer.Reference, IsConst: true}
	if op.Applicable(n) {
		t.Error("want not applicable for const expression")
	}
}

func TestUOIBooleanEmitsNegation(t *testing.T) {
	op := findOperator(t, mutant.UOI)
	n := analyzer.Node{Kind: analyzer.Reference, IsBoolean: true, Text: "ok"}
	got := replacements(t, op, n)
	if len(got) != 1 || got[0] != "!(ok)" {
		t.Errorf("want [!(ok)], got %v", got)
	}
}

func TestUOIScalarEmitsIncrementDecrement(t *testing.T) {
	op := findOperator(t, mutant.UOI)
	n := analyzer.Node{Kind: analyzer.Reference, Text: "x"}
	got := replacements(t, op, n)
	want := map[string]bool{"((x)++)": false, "((x)--)": false}
	for _, r := range got {
		if _, ok := want[r]; ok {
			want[r] = true
		}
	}
	for r, found := range want {
		if !found {
			t.Errorf("want replacement %q, got %v", r, got)
		}
	}
}

func TestUOISkipsPointerOperand(t *testing.T) {
	op := findOperator(t, mutant.UOI)
	n := analyzer.Node{Kind: analyzer.Reference, PointerOperand: true, Text: "p"}
	got := replacements(t, op, n)
	if len(got) != 0 {
		t.Errorf("want no replacements for pointer operand, got %v", got)
	}
}

func TestCatalogCoversAllSevenOperators(t *testing.T) {
	seen := map[mutant.Operator]bool{}
	for _, op := range mutator.Catalog {
		seen[op.ID()] = true
	}
	for _, want := range mutant.Operators {
		if !seen[want] {
			t.Errorf("operator %q missing from mutator.Catalog", want)
		}
	}
}

func findOperator(t *testing.T, id mutant.Operator) mutator.Operator {
	t.Helper()
	for _, op := range mutator.Catalog {
		if op.ID() == id {
			return op
		}
	}
	t.Fatalf("operator %q not found in catalog", id)
	return nil
}
