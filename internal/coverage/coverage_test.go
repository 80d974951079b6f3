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

package coverage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shift-left/sentinel/internal/coverage"
)

func TestParseFilesMarksHitLinesCovered(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.cpp")
	if err := os.WriteFile(src, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	info := filepath.Join(dir, "coverage.info")
	content := "TN:\nSF:" + src + "\nDA:1,3\nDA:2,0\nDA:3,1\nend_of_record\n"
	if err := os.WriteFile(info, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	profile, err := coverage.ParseFiles([]string{info})
	if err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}
	if !profile.IsCovered(src, 1) {
		t.Error("want line 1 covered (3 hits)")
	}
	if profile.IsCovered(src, 2) {
		t.Error("want line 2 not covered (0 hits)")
	}
	if !profile.IsCovered(src, 3) {
		t.Error("want line 3 covered (1 hit)")
	}
}

func TestIsCoveredReturnsFalseForUnknownFile(t *testing.T) {
	profile, err := coverage.ParseFiles(nil)
	if err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}
	if profile.IsCovered("/does/not/exist.cpp", 1) {
		t.Error("want false for file absent from profile")
	}
}

func TestParseFilesMergesMultipleInputs(t *testing.T) {
	dir := t.TempDir()
	srcA := filepath.Join(dir, "a.cpp")
	srcB := filepath.Join(dir, "b.cpp")
	if err := os.WriteFile(srcA, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(srcB, []byte("y\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	infoA := filepath.Join(dir, "a.info")
	infoB := filepath.Join(dir, "b.info")
	if err := os.WriteFile(infoA, []byte("SF:"+srcA+"\nDA:1,1\nend_of_record\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(infoB, []byte("SF:"+srcB+"\nDA:1,1\nend_of_record\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	profile, err := coverage.ParseFiles([]string{infoA, infoB})
	if err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}
	if !profile.IsCovered(srcA, 1) || !profile.IsCovered(srcB, 1) {
		t.Error("want lines from both files covered")
	}
}

func TestParseFilesMissingFileReturnsError(t *testing.T) {
	_, err := coverage.ParseFiles([]string{"/does/not/exist.info"})
	if err == nil {
		t.Fatal("want error for missing coverage file")
	}
}
