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

// googleTestDialect recognizes GoogleTest's <testsuites><testsuite>
// <testcase status="run" classname="C" name="T"><failure/></testcase>
// shape. A testcase with no status="run" (e.g. "notrun") is not
// counted either way.
type googleTestDialect struct{}

type gtestSuites struct {
	XMLName  xml.Name    `xml:"testsuites"`
	Suites   []gtestSuite `xml:"testsuite"`
}

type gtestSuite struct {
	Cases []gtestCase `xml:"testcase"`
}

type gtestCase struct {
	Status    string    `xml:"status,attr"`
	ClassName string    `xml:"classname,attr"`
	Name      string    `xml:"name,attr"`
	Failure   *struct{} `xml:"failure"`
}

func (googleTestDialect) parse(doc []byte) (*testoutcome.Outcome, bool) {
	var root gtestSuites
	if err := xml.Unmarshal(doc, &root); err != nil || len(root.Suites) == 0 {
		return nil, false
	}

	outcome := testoutcome.New()
	for _, suite := range root.Suites {
		if len(suite.Cases) == 0 {
			return nil, false
		}
		for _, c := range suite.Cases {
			if c.Status != "run" {
				continue
			}
			if c.ClassName == "" || c.Name == "" {
				return nil, false
			}
			name := fmt.Sprintf("%s.%s", c.ClassName, c.Name)
			if c.Failure != nil {
				outcome.AddFailed(name)
			} else {
				outcome.AddPassed(name)
			}
		}
	}
	return outcome, true
}
