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

package testresult

import (
	"encoding/xml"
	"fmt"

	"github.com/shift-left/sentinel/internal/testoutcome"
)

// qtTestDialect recognizes QtTest's <testsuite name="S"><testcase
// result="pass"|"fail" name="T"/></testsuite> shape: the test's
// identifier is "S.T", the suite name taken from the enclosing
// element rather than a per-case classname attribute.
type qtTestDialect struct{}

type qtestSuite struct {
	XMLName xml.Name    `xml:"testsuite"`
	Name    string      `xml:"name,attr"`
	Cases   []qtestCase `xml:"testcase"`
}

type qtestCase struct {
	Result string `xml:"result,attr"`
	Name   string `xml:"name,attr"`
}

func (qtTestDialect) parse(doc []byte) (*testoutcome.Outcome, bool) {
	var root qtestSuite
	if err := xml.Unmarshal(doc, &root); err != nil || len(root.Cases) == 0 {
		return nil, false
	}

	outcome := testoutcome.New()
	for _, c := range root.Cases {
		if c.Result == "" {
			return nil, false
		}
		if root.Name == "" || c.Name == "" {
			return nil, false
		}
		name := fmt.Sprintf("%s.%s", root.Name, c.Name)
		switch c.Result {
		case "pass":
			outcome.AddPassed(name)
		case "fail":
			outcome.AddFailed(name)
		}
	}
	return outcome, true
}
