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

// Package sourceline produces the set of (file, line) pairs eligible
// for mutation, delegating the actual VCS query to a Source.
package sourceline

import "context"

// SourceLine is a join key: a canonical path and a 1-based line number.
type SourceLine struct {
	Path string
	Line int
}

// Less orders by Path then Line.
func (s SourceLine) Less(o SourceLine) bool {
	if s.Path != o.Path {
		return s.Path < o.Path
	}
	return s.Line < o.Line
}

// Scope selects which source lines are eligible for mutation.
type Scope string

const (
	// ScopeAll returns every tracked source line.
	ScopeAll Scope = "all"
	// ScopeCommit returns lines introduced since the parent of HEAD, or
	// since a tag named devtool-base if present.
	ScopeCommit Scope = "commit"
)

// Source is the VCS adapter collaborator: given a scope, it returns
// the candidate source lines. Sentinel's core treats it as an external
// collaborator; see the git-backed implementation for the concrete
// adapter used by the "run" and "populate" commands.
type Source interface {
	SourceLines(ctx context.Context, scope Scope) ([]SourceLine, error)
}
