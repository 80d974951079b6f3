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

	"github.com/shift-left/sentinel/internal/testoutcome"
)

// cTestDialect recognizes a bare <testsuite><testcase status="run"|
// "fail" name="T"><failure/></testcase> shape, with no classname
// attribute and no enclosing <testsuites>. Tried after googleTestDialect
// and qtTestDialect since it is the least specific of the three.
type cTestDialect struct{}

type ctestSuite struct {
	XMLName xml.Name    `xml:"testsuite"`
	Cases   []ctestCase `xml:"testcase"`
}

type ctestCase struct {
	Status  string    `xml:"status,attr"`
	Name    string    `xml:"name,attr"`
	Failure *struct{} `xml:"failure"`
}

func (cTestDialect) parse(doc []byte) (*testoutcome.Outcome, bool) {
	var root ctestSuite
	if err := xml.Unmarshal(doc, &root); err != nil || len(root.Cases) == 0 {
		return nil, false
	}

	outcome := testoutcome.New()
	for _, c := range root.Cases {
		if c.Status != "run" && c.Status != "fail" {
			continue
		}
		if c.Name == "" {
			return nil, false
		}
		if c.Failure != nil {
			outcome.AddFailed(c.Name)
		} else {
			outcome.AddPassed(c.Name)
		}
	}
	return outcome, true
}
