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

package testresult_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shift-left/sentinel/internal/testresult"
)

func writeXML(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const gtestDoc = `<?xml version="1.0"?>
<testsuites>
  <testsuite name="Suite">
    <testcase status="run" classname="Suite" name="PassingTest"></testcase>
    <testcase status="run" classname="Suite" name="FailingTest"><failure message="boom"/></testcase>
    <testcase status="notrun" classname="Suite" name="SkippedTest"></testcase>
  </testsuite>
</testsuites>`

func TestReadGoogleTestFormat(t *testing.T) {
	dir := t.TempDir()
	writeXML(t, dir, "result.xml", gtestDoc)

	outcome, err := testresult.Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !outcome.HasPassed("Suite.PassingTest") {
		t.Error("want Suite.PassingTest recorded as passed")
	}
	if !outcome.HasFailed("Suite.FailingTest") {
		t.Error("want Suite.FailingTest recorded as failed")
	}
	if outcome.HasPassed("Suite.SkippedTest") || outcome.HasFailed("Suite.SkippedTest") {
		t.Error("want SkippedTest (status=notrun) not recorded either way")
	}
}

const ctestDoc = `<?xml version="1.0"?>
<testsuite>
  <testcase status="run" name="test_one"></testcase>
  <testcase status="fail" name="test_two"><failure message="boom"/></testcase>
</testsuite>`

func TestReadCTestFormat(t *testing.T) {
	dir := t.TempDir()
	writeXML(t, dir, "result.xml", ctestDoc)

	outcome, err := testresult.Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !outcome.HasPassed("test_one") {
		t.Error("want test_one recorded as passed")
	}
	if !outcome.HasFailed("test_two") {
		t.Error("want test_two recorded as failed")
	}
}

const qtestDoc = `<?xml version="1.0"?>
<testsuite name="MyTestSuite">
  <testcase name="testOne" result="pass"></testcase>
  <testcase name="testTwo" result="fail"></testcase>
</testsuite>`

func TestReadQtTestFormat(t *testing.T) {
	dir := t.TempDir()
	writeXML(t, dir, "result.xml", qtestDoc)

	outcome, err := testresult.Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !outcome.HasPassed("MyTestSuite.testOne") {
		t.Error("want MyTestSuite.testOne recorded as passed")
	}
	if !outcome.HasFailed("MyTestSuite.testTwo") {
		t.Error("want MyTestSuite.testTwo recorded as failed")
	}
}

func TestReadMergesMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writeXML(t, dir, "a.xml", ctestDoc)
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeXML(t, sub, "b.XML", `<testsuite><testcase status="run" name="test_three"></testcase></testsuite>`)

	outcome, err := testresult.Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !outcome.HasPassed("test_one") || !outcome.HasPassed("test_three") {
		t.Error("want both files' passing tests merged")
	}
}

func TestReadSkipsUnrecognizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeXML(t, dir, "garbage.xml", "<not-a-test-result/>")

	outcome, err := testresult.Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(outcome.Passed) != 0 || len(outcome.Failed) != 0 {
		t.Error("want empty outcome for unrecognized file")
	}
}
