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

package testoutcome

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shift-left/sentinel/internal/mutant"
)

// Result is the outcome of one trial: the Mutant under test, its
// classified State, and the evidence that produced that classification.
// Result is created once by the classifier and never mutated after.
type Result struct {
	Mutant        mutant.Mutant
	State         State
	KillingTests  map[string]struct{}
	ErroringTests map[string]struct{}
}

// Serialize renders the on-disk MutationResult line:
//
//	<killing, comma-joined>\t<erroring, comma-joined>\t<state>\t\t\t<mutant>
//
// The triple tab is the record separator between the result prefix and
// the serialized Mutant.
func (r Result) Serialize() string {
	killing := sortedKeys(r.KillingTests)
	erroring := sortedKeys(r.ErroringTests)
	return fmt.Sprintf("%s\t%s\t%d\t\t\t%s",
		strings.Join(killing, ", "),
		strings.Join(erroring, ", "),
		int(r.State),
		r.Mutant.Serialize(),
	)
}

// ParseResult reads one line of the on-disk MutationResult format, the
// inverse of Result.Serialize.
func ParseResult(line string) (Result, error) {
	prefix, mutantPart, ok := strings.Cut(line, "\t\t\t")
	if !ok {
		return Result{}, fmt.Errorf("testoutcome: malformed result line, missing triple-tab separator: %q", line)
	}

	fields := strings.Split(prefix, "\t")
	if len(fields) != 3 {
		return Result{}, fmt.Errorf("testoutcome: malformed result prefix, want 3 fields, got %d: %q", len(fields), prefix)
	}

	stateCode, err := strconv.Atoi(fields[2])
	if err != nil {
		return Result{}, fmt.Errorf("testoutcome: invalid state %q: %w", fields[2], err)
	}
	state := State(stateCode)
	if state < Killed || state > Timeout {
		return Result{}, fmt.Errorf("testoutcome: unknown state code %d", stateCode)
	}

	m, err := mutant.Parse(mutantPart)
	if err != nil {
		return Result{}, fmt.Errorf("testoutcome: %w", err)
	}

	return Result{
		Mutant:        m,
		State:         state,
		KillingTests:  toSet(fields[0]),
		ErroringTests: toSet(fields[1]),
	}, nil
}

func toSet(joined string) map[string]struct{} {
	set := make(map[string]struct{})
	if joined == "" {
		return set
	}
	for _, name := range strings.Split(joined, ", ") {
		set[name] = struct{}{}
	}
	return set
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
