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

package mutant

import (
	"fmt"
	"strconv"
	"strings"
)

// fieldCount is the number of comma-separated fields preceding
// Replacement in the serialized form; Replacement is everything after
// the seventh comma, so a comma inside Replacement does not break
// parsing of the fields that precede it. A comma inside Path or
// QualifiedFunction would, which is the serialization format's known
// open issue.
const fieldCount = 7

// Parse reads one line of the on-disk mutant format, the inverse of
// Mutant.Serialize.
func Parse(line string) (Mutant, error) {
	parts := strings.SplitN(line, ",", fieldCount+1)
	if len(parts) != fieldCount+1 {
		return Mutant{}, fmt.Errorf("mutant: malformed line, want %d fields, got %d: %q", fieldCount+1, len(parts), line)
	}

	op := Operator(parts[0])
	if !isKnownOperator(op) {
		return Mutant{}, fmt.Errorf("mutant: unknown operator %q", parts[0])
	}

	firstLine, err := strconv.Atoi(parts[3])
	if err != nil {
		return Mutant{}, fmt.Errorf("mutant: invalid first.line %q: %w", parts[3], err)
	}
	firstCol, err := strconv.Atoi(parts[4])
	if err != nil {
		return Mutant{}, fmt.Errorf("mutant: invalid first.column %q: %w", parts[4], err)
	}
	lastLine, err := strconv.Atoi(parts[5])
	if err != nil {
		return Mutant{}, fmt.Errorf("mutant: invalid last.line %q: %w", parts[5], err)
	}
	lastCol, err := strconv.Atoi(parts[6])
	if err != nil {
		return Mutant{}, fmt.Errorf("mutant: invalid last.column %q: %w", parts[6], err)
	}

	return New(
		op,
		parts[1],
		parts[2],
		Position{Line: firstLine, Column: firstCol},
		Position{Line: lastLine, Column: lastCol},
		parts[7],
	), nil
}

func isKnownOperator(op Operator) bool {
	for _, o := range Operators {
		if o == op {
			return true
		}
	}
	return false
}
