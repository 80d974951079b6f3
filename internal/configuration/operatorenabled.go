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

package configuration

import (
	"github.com/shift-left/sentinel/internal/mutant"
)

// operatorEnabled holds the default enabled/disabled state for each
// Operator when the user hasn't set mutants.<op>.enabled explicitly.
// SDL defaults to off: statement deletion tends to produce a large
// share of equivalent mutants on defensive code (early returns, asserts)
// and is noisier to triage than the others.
var operatorEnabled = map[mutant.Operator]bool{
	mutant.AOR: true,
	mutant.BOR: true,
	mutant.LCR: true,
	mutant.ROR: true,
	mutant.SOR: true,
	mutant.SDL: false,
	mutant.UOI: true,
}

// IsDefaultEnabled returns the default enabled/disabled state of the
// given Operator. The table above must be kept up to date when adding
// new operators.
func IsDefaultEnabled(op mutant.Operator) bool {
	return operatorEnabled[op]
}
