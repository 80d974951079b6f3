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

// Package aggregator groups a stream of MutationResults by file and by
// directory, relative to a source root, and computes per-group kill
// counts and coverage.
package aggregator

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/shift-left/sentinel/internal/testoutcome"
)

// Group is the running tally for one file or directory.
type Group struct {
	Total         int
	Detected      int
	BuildFailures int
	RuntimeErrors int
	Timeouts      int
}

// Excluded is the count of trials that don't participate in the
// coverage denominator: BUILD_FAILURE + RUNTIME_ERROR + TIMEOUT.
func (g Group) Excluded() int {
	return g.BuildFailures + g.RuntimeErrors + g.Timeouts
}

// Denominator is the coverage computation's divisor: total minus the
// excluded states. Zero when every trial in the group was excluded.
func (g Group) Denominator() int {
	return g.Total - g.Excluded()
}

// Coverage is Detected / Denominator, or 0 when the denominator is 0.
func (g Group) Coverage() float64 {
	d := g.Denominator()
	if d <= 0 {
		return 0
	}
	return float64(g.Detected) / float64(d)
}

// Report is the aggregate view over an entire run.
type Report struct {
	SourceRoot string
	ByFile     map[string]*Group
	ByDir      map[string]*Group
	Overall    *Group
}

// New builds an empty Report rooted at sourceRoot.
func New(sourceRoot string) *Report {
	return &Report{
		SourceRoot: sourceRoot,
		ByFile:     make(map[string]*Group),
		ByDir:      make(map[string]*Group),
		Overall:    &Group{},
	}
}

// Add folds one MutationResult into the report's file, directory and
// overall groups.
func (r *Report) Add(result testoutcome.Result) {
	rel := result.Mutant.Path
	if relPath, err := filepath.Rel(r.SourceRoot, result.Mutant.Path); err == nil {
		rel = relPath
	}
	rel = filepath.ToSlash(rel)

	fileGroup := r.groupFor(r.ByFile, rel)
	dirGroup := r.groupFor(r.ByDir, filepath.ToSlash(filepath.Dir(rel)))

	for _, g := range []*Group{fileGroup, dirGroup, r.Overall} {
		g.Total++
		switch result.State {
		case testoutcome.Killed:
			g.Detected++
		case testoutcome.BuildFailure:
			g.BuildFailures++
		case testoutcome.RuntimeError:
			g.RuntimeErrors++
		case testoutcome.Timeout:
			g.Timeouts++
		}
	}
}

func (r *Report) groupFor(m map[string]*Group, key string) *Group {
	g, ok := m[key]
	if !ok {
		g = &Group{}
		m[key] = g
	}
	return g
}

// LegacyDirKey renders a directory path the way the legacy on-disk
// report format does: path separators collapsed to ".", so
// "a/b/c" becomes "a.b.c" and "." (the source root itself) stays ".".
func LegacyDirKey(dir string) string {
	if dir == "." || dir == "" {
		return "."
	}
	return strings.ReplaceAll(filepath.ToSlash(dir), "/", ".")
}

// SortedFileKeys returns ByFile's keys in lexicographic order, for
// deterministic report rendering.
func (r *Report) SortedFileKeys() []string {
	keys := make([]string, 0, len(r.ByFile))
	for k := range r.ByFile {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedDirKeys returns ByDir's keys in lexicographic order.
func (r *Report) SortedDirKeys() []string {
	keys := make([]string, 0, len(r.ByDir))
	for k := range r.ByDir {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
