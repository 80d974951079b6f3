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

package sourceline

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/shift-left/sentinel/internal/mutant"
)

// defaultBaseTag is consulted for scope "commit" when present, in
// preference to the parent of HEAD.
const defaultBaseTag = "devtool-base"

// extensions a GitSource considers source files, set by the caller to
// match the project's populate --extension flags.
type GitSource struct {
	Root       string
	Extensions []string
}

// NewGitSource builds a Source backed by the git CLI, rooted at root
// and restricted to the given file extensions (e.g. ".cpp", ".hpp").
func NewGitSource(root string, extensions []string) *GitSource {
	return &GitSource{Root: root, Extensions: extensions}
}

// SourceLines implements Source.
func (g *GitSource) SourceLines(ctx context.Context, scope Scope) ([]SourceLine, error) {
	switch scope {
	case ScopeAll:
		return g.allLines(ctx)
	case ScopeCommit:
		return g.commitLines(ctx)
	default:
		return nil, fmt.Errorf("sourceline: unknown scope %q", scope)
	}
}

func (g *GitSource) allLines(ctx context.Context) ([]SourceLine, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", g.Root, "ls-files")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("sourceline: git ls-files failed: %w", err)
	}

	var lines []SourceLine
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		rel := scanner.Text()
		if !g.hasWantedExtension(rel) {
			continue
		}
		abs, err := mutant.Canonicalize(filepath.Join(g.Root, rel))
		if err != nil {
			continue
		}
		n, err := countLines(abs)
		if err != nil {
			continue
		}
		for l := 1; l <= n; l++ {
			lines = append(lines, SourceLine{Path: abs, Line: l})
		}
	}
	return lines, scanner.Err()
}

func (g *GitSource) commitLines(ctx context.Context) ([]SourceLine, error) {
	ref := "HEAD^"
	if g.tagExists(ctx, defaultBaseTag) {
		ref = defaultBaseTag
	}

	cmd := exec.CommandContext(ctx, "git", "-C", g.Root, "diff", "--merge-base", ref)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("sourceline: git diff failed: %w", err)
	}

	files, _, err := gitdiff.Parse(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("sourceline: parsing diff: %w", err)
	}

	var lines []SourceLine
	for _, file := range files {
		if !g.hasWantedExtension(file.NewName) {
			continue
		}
		abs, err := mutant.Canonicalize(filepath.Join(g.Root, file.NewName))
		if err != nil {
			continue
		}
		for _, fragment := range file.TextFragments {
			if fragment.LinesAdded == 0 {
				continue
			}
			start := int(fragment.NewPosition + fragment.LeadingContext)
			end := start + int(fragment.LinesAdded) - 1
			for l := start; l <= end; l++ {
				lines = append(lines, SourceLine{Path: abs, Line: l})
			}
		}
	}
	return lines, nil
}

func (g *GitSource) tagExists(ctx context.Context, tag string) bool {
	cmd := exec.CommandContext(ctx, "git", "-C", g.Root, "rev-parse", "--verify", "--quiet", "refs/tags/"+tag)
	return cmd.Run() == nil
}

func (g *GitSource) hasWantedExtension(path string) bool {
	if len(g.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, want := range g.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
