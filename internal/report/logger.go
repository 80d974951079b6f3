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

package report

import (
	"errors"

	"github.com/shift-left/sentinel/internal/configuration"
	"github.com/shift-left/sentinel/internal/log"
	"github.com/shift-left/sentinel/internal/testoutcome"
)

// Filter maps testoutcome states to filter which mutants are logged.
type Filter = map[testoutcome.State]struct{}

// ErrInvalidFilter is returned when an invalid status filter string is provided.
var ErrInvalidFilter = errors.New("invalid statuses filter, only 'ksrbt' letters allowed")

// MutantLogger prints mutant results based on filter and verbosity flags.
type MutantLogger struct {
	Filter
}

// NewLogger creates a new MutantLogger with filters from configuration.
func NewLogger() MutantLogger {
	outputStatuses := configuration.Get[string](configuration.RunOutputStatusesKey)
	f, err := ParseFilter(outputStatuses)
	if err != nil {
		log.Infof("output-statuses filter not applied: %s\n", err)
	}

	return MutantLogger{
		Filter: f,
	}
}

// Mutant logs a result if it passes the filter.
func (l MutantLogger) Mutant(r testoutcome.Result) {
	if l.Filter == nil {
		Mutant(r)

		return
	}

	if _, ok := l.Filter[r.State]; ok {
		Mutant(r)
	}
}

// ParseFilter parses a status filter string into a Filter map.
// Valid characters are 'ksrbt': killed, survived, runtime error,
// build failure, timeout.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return nil, nil
	}

	result := Filter{}

	for _, r := range s {
		switch r {
		case 'k':
			result[testoutcome.Killed] = struct{}{}
		case 's':
			result[testoutcome.Survived] = struct{}{}
		case 'r':
			result[testoutcome.RuntimeError] = struct{}{}
		case 'b':
			result[testoutcome.BuildFailure] = struct{}{}
		case 't':
			result[testoutcome.Timeout] = struct{}{}
		default:
			return nil, ErrInvalidFilter
		}
	}

	return result, nil
}
