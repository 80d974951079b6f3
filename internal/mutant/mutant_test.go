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

package mutant_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shift-left/sentinel/internal/mutant"
)

func TestNewSplitsQualifiedFunction(t *testing.T) {
	testCases := []struct {
		name         string
		qualified    string
		wantClass    string
		wantFunction string
	}{
		{"empty", "", "", ""},
		{"free function", "compute", "", "compute"},
		{"method", "Widget::resize", "Widget", "resize"},
		{"nested class", "outer::Inner::resize", "outer::Inner", "resize"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			m := mutant.New(mutant.ROR, "/a.cpp", tc.qualified, mutant.Position{}, mutant.Position{}, "")
			if m.Class != tc.wantClass {
				t.Errorf("class: want %q, got %q", tc.wantClass, m.Class)
			}
			if m.Function != tc.wantFunction {
				t.Errorf("function: want %q, got %q", tc.wantFunction, m.Function)
			}
			if got := m.QualifiedFunction(); got != tc.qualified {
				t.Errorf("QualifiedFunction: want %q, got %q", tc.qualified, got)
			}
		})
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	m := mutant.New(mutant.AOR, "/src/a.cpp", "Widget::resize",
		mutant.Position{Line: 10, Column: 5}, mutant.Position{Line: 10, Column: 8}, "-")

	line := m.Serialize()
	got, err := mutant.Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cmp.Equal(m, got) {
		t.Errorf("round trip mismatch: %s", cmp.Diff(m, got))
	}
}

func TestSerializeParseRoundTripWithCommaInReplacement(t *testing.T) {
	m := mutant.New(mutant.SDL, "/src/a.cpp", "f", mutant.Position{Line: 1, Column: 1}, mutant.Position{Line: 1, Column: 1}, "foo(a, b)")

	line := m.Serialize()
	got, err := mutant.Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !got.Equal(m) {
		t.Errorf("round trip mismatch: want %+v, got %+v", m, got)
	}
}

func TestParseRejectsMalformedLine(t *testing.T) {
	_, err := mutant.Parse("not,enough,fields")
	if err == nil {
		t.Fatal("want error, got nil")
	}
}

func TestParseRejectsUnknownOperator(t *testing.T) {
	_, err := mutant.Parse("XYZ,/a.cpp,f,1,1,1,2,-")
	if err == nil {
		t.Fatal("want error, got nil")
	}
}

func TestEqualIgnoresNothingButTheSevenFields(t *testing.T) {
	a := mutant.New(mutant.ROR, "/a.cpp", "f", mutant.Position{Line: 1, Column: 1}, mutant.Position{Line: 1, Column: 2}, "<=")
	b := mutant.New(mutant.ROR, "/a.cpp", "f", mutant.Position{Line: 1, Column: 1}, mutant.Position{Line: 1, Column: 2}, "<=")
	if !a.Equal(b) {
		t.Error("want equal")
	}

	c := mutant.New(mutant.ROR, "/a.cpp", "f", mutant.Position{Line: 1, Column: 1}, mutant.Position{Line: 1, Column: 2}, ">=")
	if a.Equal(c) {
		t.Error("want not equal, replacement differs")
	}
}

func TestLessOrdersByOperatorThenPathThenSerialization(t *testing.T) {
	a := mutant.New(mutant.AOR, "/a.cpp", "f", mutant.Position{Line: 1, Column: 1}, mutant.Position{Line: 1, Column: 2}, "-")
	b := mutant.New(mutant.BOR, "/a.cpp", "f", mutant.Position{Line: 1, Column: 1}, mutant.Position{Line: 1, Column: 2}, "-")
	if !a.Less(b) {
		t.Error("want AOR < BOR")
	}
}

func TestPositionLess(t *testing.T) {
	p1 := mutant.Position{Line: 1, Column: 10}
	p2 := mutant.Position{Line: 2, Column: 1}
	if !p1.Less(p2) {
		t.Error("want line 1 < line 2 regardless of column")
	}
}
