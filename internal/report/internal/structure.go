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

// Package internal holds Sentinel's on-disk JSON report format,
// kept separate from the rendering logic in the parent report package.
package internal

// OutputResult is the data structure for Sentinel's JSON report file.
type OutputResult struct {
	SourceRoot        string       `json:"source_root"`
	TestEfficacy      float64      `json:"test_efficacy"`
	MutationsCoverage float64      `json:"mutations_coverage"`
	ElapsedTime       float64      `json:"elapsed_time"`
	Overall           Stats        `json:"overall"`
	Files             []OutputFile `json:"files"`
}

// OutputFile is one source file's tally in the OutputResult.
type OutputFile struct {
	Filename string `json:"file_name"`
	Stats    Stats  `json:"stats"`
}

// Stats is the per-file or per-run mutant tally, by testoutcome.State.
type Stats struct {
	Total         int `json:"total"`
	Killed        int `json:"killed"`
	Survived      int `json:"survived"`
	BuildFailures int `json:"build_failures"`
	RuntimeErrors int `json:"runtime_errors"`
	Timeouts      int `json:"timeouts"`
}
