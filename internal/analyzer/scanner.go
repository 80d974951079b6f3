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

package analyzer

import (
	"bufio"
	"os"
	"regexp"

	"github.com/shift-left/sentinel/internal/mutant"
)

// LineScanner is a reference Collector that finds binary-operator
// mutation sites with a regular expression over each target line,
// rather than a real C/C++ AST walk. It exists so the pipeline from
// populate through trial can be exercised end to end without a clang
// front end wired in; a production deployment replaces it with a
// Collector backed by a real AST library, as spec'd. It never
// produces Statement or Reference nodes, so the SDL and UOI operators
// find nothing through it.
type LineScanner struct{}

// operatorPattern matches the longest-first alternation of every
// token the binary operators care about, so e.g. "<<=" a compound
// assignment, is never torn into "<" and "<".
var operatorPattern = regexp.MustCompile(
	`<<=|>>=|<<|>>|<=|>=|==|!=|&&|\|\||[+\-*/%&|^<>]`)

var operatorKind = map[string]Kind{
	"+": BinaryArithmetic, "-": BinaryArithmetic, "*": BinaryArithmetic,
	"/": BinaryArithmetic, "%": BinaryArithmetic,
	"&": BinaryBitwise, "|": BinaryBitwise, "^": BinaryBitwise,
	"&&": BinaryLogical, "||": BinaryLogical,
	"<": BinaryRelational, ">": BinaryRelational, "<=": BinaryRelational,
	">=": BinaryRelational, "==": BinaryRelational, "!=": BinaryRelational,
	"<<": BinaryShift, ">>": BinaryShift,
}

// exclusionPattern excludes operator occurrences that aren't a plain
// binary operator: increments and decrements ("++", "--"), compound
// assignments ("+=", "-=", "<<="...) and the member-access arrow ("->").
var exclusionPattern = regexp.MustCompile(
	`(\+\+|--|\+=|-=|\*=|/=|%=|&=|\|=|\^=|<<=|>>=|->)`)

// funcSignature is a rough heuristic for a C/C++ function definition
// opening line: a name followed by a parameter list and an opening
// brace, optionally on the same line.
var funcSignature = regexp.MustCompile(`([A-Za-z_:~][A-Za-z0-9_:~<>, ]*)\([^;{}]*\)\s*(const\s*)?\{?\s*$`)

// Collect implements Collector by scanning path line by line, only
// examining lines in targetLines.
func (LineScanner) Collect(path string, targetLines map[int]bool) ([]Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var nodes []Node
	qualifiedFunction := ""
	depth := 0
	lineNo := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if m := funcSignature.FindStringSubmatch(line); m != nil && depth == 0 {
			qualifiedFunction = trimToFunctionName(m[1])
		}

		if targetLines[lineNo] {
			nodes = append(nodes, scanLine(line, lineNo, qualifiedFunction, depth)...)
		}

		for _, r := range line {
			switch r {
			case '{':
				depth++
			case '}':
				if depth > 0 {
					depth--
				}
				if depth == 0 {
					qualifiedFunction = ""
				}
			}
		}
	}
	return nodes, scanner.Err()
}

func scanLine(line string, lineNo int, qualifiedFunction string, depth int) []Node {
	var nodes []Node
	excluded := exclusionPattern.FindAllStringIndex(line, -1)

	for _, loc := range operatorPattern.FindAllStringIndex(line, -1) {
		if withinAny(loc, excluded) {
			continue
		}
		op := line[loc[0]:loc[1]]
		kind, ok := operatorKind[op]
		if !ok {
			continue
		}
		nodes = append(nodes, Node{
			Kind:              kind,
			First:             mutant.Position{Line: lineNo, Column: loc[0] + 1},
			Last:              mutant.Position{Line: lineNo, Column: loc[1] + 1},
			QualifiedFunction: qualifiedFunction,
			Depth:             depth,
			Operator:          op,
			Text:              op,
		})
	}
	return nodes
}

func withinAny(loc []int, spans [][]int) bool {
	for _, s := range spans {
		if loc[0] >= s[0] && loc[1] <= s[1] {
			return true
		}
	}
	return false
}

func trimToFunctionName(s string) string {
	// Keep only the qualified-name portion before the parameter list;
	// funcSignature's capture group already stops there, but may
	// still carry a leading return type separated by whitespace.
	last := len(s)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ' ' || s[i] == '*' || s[i] == '&' {
			return s[i+1 : last]
		}
	}
	return s
}
