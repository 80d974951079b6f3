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

// Package mutant defines the Mutant value type: a single syntactic edit
// to a source file, its textual serialization, and ordering.
package mutant

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator is a tag from the closed set of mutation operators Sentinel
// knows how to apply.
type Operator string

// The seven mutation operators, in the order they are tried against a
// candidate site.
const (
	AOR Operator = "AOR" // Arithmetic Operator Replacement
	BOR Operator = "BOR" // Bitwise Operator Replacement
	LCR Operator = "LCR" // Logical Connector Replacement
	ROR Operator = "ROR" // Relational Operator Replacement
	SOR Operator = "SOR" // Shift Operator Replacement
	SDL Operator = "SDL" // Statement Deletion
	UOI Operator = "UOI" // Unary Operator Insertion
)

// Operators lists every known Operator, in a fixed order used wherever
// the full set must be enumerated (default-enablement tables, tests).
var Operators = []Operator{AOR, BOR, LCR, ROR, SOR, SDL, UOI}

// Position is a 1-based (line, column) pair. Both line and column count
// bytes of the file's UTF-8 view; a tab counts as one byte.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Less orders positions first by line, then by column.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// Mutant uniquely identifies one syntactic edit: an Operator applied to
// the byte range [First, Last) of Path, replacing it with Replacement.
// Last.Column is one past the final replaced byte, so a Mutant with
// First == Last represents a zero-byte insertion.
//
// Mutant is a frozen value type: once produced by the candidate
// collector it is never mutated, only copied, serialized, or compared.
type Mutant struct {
	Operator    Operator
	Path        string // canonical form, see Canonicalize
	Class       string // prefix of QualifiedFunction before the last "::", may be empty
	Function    string // suffix of QualifiedFunction after the last "::"
	First       Position
	Last        Position
	Replacement string
}

// QualifiedFunction rejoins Class and Function into the fully qualified
// enclosing function name Mutant was derived from. Empty if Function is
// empty.
func (m Mutant) QualifiedFunction() string {
	if m.Function == "" {
		return ""
	}
	if m.Class == "" {
		return m.Function
	}
	return m.Class + "::" + m.Function
}

// New builds a Mutant, splitting qualifiedFunction into Class/Function
// on its last "::" occurrence.
func New(op Operator, path, qualifiedFunction string, first, last Position, replacement string) Mutant {
	class, function := splitQualified(qualifiedFunction)
	return Mutant{
		Operator:    op,
		Path:        path,
		Class:       class,
		Function:    function,
		First:       first,
		Last:        last,
		Replacement: replacement,
	}
}

func splitQualified(qualified string) (class, function string) {
	if qualified == "" {
		return "", ""
	}
	idx := strings.LastIndex(qualified, "::")
	if idx < 0 {
		return "", qualified
	}
	return qualified[:idx], qualified[idx+2:]
}

// Equal reports whether m and o have all seven identifying fields equal.
func (m Mutant) Equal(o Mutant) bool {
	return m.Operator == o.Operator &&
		m.Path == o.Path &&
		m.QualifiedFunction() == o.QualifiedFunction() &&
		m.First == o.First &&
		m.Last == o.Last &&
		m.Replacement == o.Replacement
}

// Less orders two Mutants lexicographically over their textual
// serialization, giving Mutant a total order suitable for stable sort
// in reports and golden tests.
func (m Mutant) Less(o Mutant) bool {
	return m.Serialize() < o.Serialize()
}

// Serialize renders the Mutant on-disk format: one CSV-like line with
// fields in fixed order. Commas embedded in Replacement are not escaped;
// see the mutant population file format note.
func (m Mutant) Serialize() string {
	fields := []string{
		string(m.Operator),
		m.Path,
		m.QualifiedFunction(),
		strconv.Itoa(m.First.Line),
		strconv.Itoa(m.First.Column),
		strconv.Itoa(m.Last.Line),
		strconv.Itoa(m.Last.Column),
		m.Replacement,
	}
	return strings.Join(fields, ",")
}

// String implements fmt.Stringer with a human-oriented summary, used by
// logging and the text reporter; it is not the on-disk format.
func (m Mutant) String() string {
	return fmt.Sprintf("%s %s@%s [%s-%s] -> %q", m.Operator, m.Path, m.QualifiedFunction(), m.First, m.Last, m.Replacement)
}
