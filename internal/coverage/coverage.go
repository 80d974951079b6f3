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

// Package coverage parses lcov .info files and answers whether a given
// source position was exercised by the suite that produced them.
package coverage

import (
	"path/filepath"

	"github.com/shift-left/sentinel/internal/mutant"
)

// Profile holds the set of covered lines per source file, keyed by the
// file's canonical path.
type Profile map[string]map[int]bool

// IsCovered reports whether line in path was hit by the suite that
// produced the profile. A file absent from the profile is treated as
// entirely uncovered, per spec.
func (p Profile) IsCovered(path string, line int) bool {
	canonical, err := mutant.Canonicalize(path)
	if err != nil {
		canonical = filepath.Clean(path)
	}
	lines, ok := p[canonical]
	if !ok {
		return false
	}
	return lines[line]
}
