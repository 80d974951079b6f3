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

package coverage

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/mutant"
)

// ParseFiles reads one or more lcov .info files and merges their DA
// (line-hit) records into a single Profile. SF introduces a source
// file section; DA:<line>,<hits>[,<checksum>] records a line hit
// count within the current SF section. A line is covered when its
// hit count is greater than zero.
func ParseFiles(paths []string) (Profile, error) {
	profile := make(Profile)
	for _, path := range paths {
		if err := parseFile(path, profile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func parseFile(path string, profile Profile) error {
	f, err := os.Open(path)
	if err != nil {
		return execution.Wrap(execution.IoError, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var currentFile string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "SF:"):
			raw := strings.TrimPrefix(line, "SF:")
			canonical, err := mutant.Canonicalize(raw)
			if err != nil {
				canonical = raw
			}
			currentFile = canonical
			if _, ok := profile[currentFile]; !ok {
				profile[currentFile] = make(map[int]bool)
			}
		case strings.HasPrefix(line, "DA:"):
			if currentFile == "" {
				continue
			}
			fields := strings.SplitN(strings.TrimPrefix(line, "DA:"), ",", 3)
			if len(fields) < 2 {
				continue
			}
			lineNo, err := strconv.Atoi(fields[0])
			if err != nil {
				continue
			}
			hits, err := strconv.Atoi(fields[1])
			if err != nil {
				continue
			}
			if hits > 0 {
				profile[currentFile][lineNo] = true
			}
		case line == "end_of_record":
			currentFile = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return execution.Wrap(execution.IoError, err)
	}
	return nil
}
