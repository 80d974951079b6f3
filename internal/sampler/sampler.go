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

// Package sampler narrows a candidate pool to the final Mutant list
// under a budget, following one of three deterministic policies.
package sampler

import (
	"math/rand"
	"sort"

	"github.com/shift-left/sentinel/internal/collector"
	"github.com/shift-left/sentinel/internal/mutant"
	"github.com/shift-left/sentinel/internal/sourceline"
)

// Policy is one of the three sampling strategies.
type Policy string

const (
	// Uniform picks one mutant per line, visiting lines in upstream
	// order.
	Uniform Policy = "uniform"
	// Weighted is Uniform but visits lines in order of decreasing
	// statement depth.
	Weighted Policy = "weighted"
	// Random shuffles the whole candidate pool and takes the first N,
	// with no per-line limit.
	Random Policy = "random"
)

// Sample narrows pool to at most budget Mutants under policy, given
// the upstream-ordered list of target lines and a seed. All three
// policies are deterministic given identical inputs and seed.
func Sample(pool collector.Set, lines []sourceline.SourceLine, seed int64, budget int, policy Policy) []mutant.Mutant {
	if len(pool) == 0 || budget <= 0 {
		return nil
	}

	switch policy {
	case Weighted:
		return samplePerLine(pool, weightedLineOrder(pool, lines), seed, budget)
	case Random:
		return sampleRandom(pool, seed, budget)
	default:
		return samplePerLine(pool, lines, seed, budget)
	}
}

// samplePerLine implements both uniform and weighted: for each line in
// the given order, shuffle the candidates on that line with the seed
// and pick the first one not already selected.
func samplePerLine(pool collector.Set, lines []sourceline.SourceLine, seed int64, budget int) []mutant.Mutant {
	selected := make([]mutant.Mutant, 0, budget)
	chosen := make(map[string]bool)

	rng := rand.New(rand.NewSource(seed))

	for _, line := range lines {
		if len(selected) == budget {
			break
		}
		onLine := candidatesOnLine(pool, line)
		if len(onLine) == 0 {
			continue
		}
		rng.Shuffle(len(onLine), func(i, j int) { onLine[i], onLine[j] = onLine[j], onLine[i] })

		for _, m := range onLine {
			key := m.Serialize()
			if chosen[key] {
				continue
			}
			chosen[key] = true
			selected = append(selected, m)
			break
		}
	}
	return selected
}

func sampleRandom(pool collector.Set, seed int64, budget int) []mutant.Mutant {
	all := make([]mutant.Mutant, len(pool))
	for i, c := range pool {
		all[i] = c.Mutant
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

	if budget >= len(all) {
		return all
	}
	return all[:budget]
}

func candidatesOnLine(pool collector.Set, line sourceline.SourceLine) []mutant.Mutant {
	var out []mutant.Mutant
	for _, c := range pool {
		m := c.Mutant
		if m.Path == line.Path && m.First.Line <= line.Line && line.Line <= m.Last.Line {
			out = append(out, m)
		}
	}
	return out
}

// weightedLineOrder sorts lines by the maximum candidate Depth found on
// that line, descending; ties keep the upstream order, since sort.SliceStable
// preserves relative order of equal elements.
func weightedLineOrder(pool collector.Set, lines []sourceline.SourceLine) []sourceline.SourceLine {
	depthOf := make(map[sourceline.SourceLine]int, len(lines))
	for _, c := range pool {
		for l := c.Mutant.First.Line; l <= c.Mutant.Last.Line; l++ {
			key := sourceline.SourceLine{Path: c.Mutant.Path, Line: l}
			if c.Depth > depthOf[key] {
				depthOf[key] = c.Depth
			}
		}
	}

	ordered := make([]sourceline.SourceLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool {
		return depthOf[ordered[i]] > depthOf[ordered[j]]
	})
	return ordered
}
