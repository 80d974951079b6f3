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

// Package testresult reads a test command's XML output directory and
// builds a testoutcome.Outcome out of it, trying each known dialect
// (GoogleTest, QtTest, CTest) in turn until one parses the document.
package testresult

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shift-left/sentinel/internal/log"
	"github.com/shift-left/sentinel/internal/testoutcome"
)

// dialect recognizes and extracts test cases from one XML schema. It
// returns ok=false when the document's root shape doesn't match what
// the dialect expects, so the caller can fall through to the next one.
type dialect interface {
	parse(doc []byte) (outcome *testoutcome.Outcome, ok bool)
}

// chain is tried in order for every XML file found; GoogleTest and
// CTest both nest under a bare <testsuite>, so CTest (the less
// specific of the two, no classname attribute) is tried last.
var chain = []dialect{
	googleTestDialect{},
	qtTestDialect{},
	cTestDialect{},
}

// Read walks dir recursively, parses every *.xml file (case
// insensitive) with the first matching dialect, and unions every
// file's test cases into one Outcome. Files that don't match any
// dialect are logged and skipped; a run with no readable test files at
// all still returns an empty, non-nil Outcome.
func Read(dir string) (*testoutcome.Outcome, error) {
	outcome := testoutcome.New()

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xml") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Errorf("failed to read test result file %s: %v", path, err)
			return nil
		}

		parsed, ok := parseWithChain(content)
		if !ok {
			log.Infof("file does not match a known test result format: %s", path)
			return nil
		}
		outcome.Merge(parsed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func parseWithChain(content []byte) (*testoutcome.Outcome, bool) {
	for _, d := range chain {
		if outcome, ok := d.parse(content); ok {
			return outcome, true
		}
	}
	return nil, false
}
