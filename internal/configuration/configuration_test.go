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

package configuration_test

import (
	"testing"

	"github.com/shift-left/sentinel/internal/configuration"
	"github.com/shift-left/sentinel/internal/mutant"
)

func TestOperatorEnabledKey(t *testing.T) {
	testCases := []struct {
		op   mutant.Operator
		want string
	}{
		{mutant.AOR, "mutants.aor.enabled"},
		{mutant.SDL, "mutants.sdl.enabled"},
		{mutant.UOI, "mutants.uoi.enabled"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(string(tc.op), func(t *testing.T) {
			if got := configuration.OperatorEnabledKey(tc.op); got != tc.want {
				t.Errorf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	defer configuration.Reset()

	configuration.Set(configuration.RunMaxMutantsKey, 42)

	if got := configuration.Get[int](configuration.RunMaxMutantsKey); got != 42 {
		t.Errorf("want 42, got %d", got)
	}
}

func TestGetMissingKeyReturnsZeroValue(t *testing.T) {
	defer configuration.Reset()

	if got := configuration.Get[string]("does.not.exist"); got != "" {
		t.Errorf("want empty string, got %q", got)
	}
}

func TestInitWithEmptyPathsDoesNotError(t *testing.T) {
	defer configuration.Reset()

	if err := configuration.Init(nil); err != nil {
		t.Errorf("want no error, got %v", err)
	}
}

func TestInitWithSpecificFileNotFoundReturnsError(t *testing.T) {
	defer configuration.Reset()

	err := configuration.Init([]string{"testdata/does-not-exist.yaml"})
	if err == nil {
		t.Error("want error for missing specific config file, got nil")
	}
}
