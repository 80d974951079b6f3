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

// Package workdir manages the run's working directory, made of three
// subdirectories (backup, expected, actual), tracking which of them
// pre-existed the run so cleanup never deletes a user's own data.
package workdir

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shift-left/sentinel/internal/execution"
	"github.com/shift-left/sentinel/internal/mutant"
)

// Dir is the run's working area. Root, Backup, Expected and Actual are
// canonical, existing paths once New returns successfully.
type Dir struct {
	Root     string
	Backup   string
	Expected string
	Actual   string

	rootExisted     bool
	backupExisted   bool
	expectedExisted bool
	actualExisted   bool
}

// New prepares root/{backup,expected,actual}, creating whichever of
// them is missing. backup must be empty if it already existed (it is
// meant to be filled only by this run's Apply calls); expected and
// actual may be non-empty (test-result and coverage scratch space).
func New(root string) (*Dir, error) {
	d := &Dir{}

	rootExisted, err := exists(root)
	if err != nil {
		return nil, execution.Wrap(execution.IoError, err)
	}
	d.rootExisted = rootExisted
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, execution.Wrap(execution.IoError, err)
	}
	d.Root, err = mutant.Canonicalize(root)
	if err != nil {
		return nil, execution.Wrap(execution.IoError, err)
	}

	if d.Backup, d.backupExisted, err = prepare(filepath.Join(d.Root, "backup"), true); err != nil {
		return nil, err
	}
	if d.Expected, d.expectedExisted, err = prepare(filepath.Join(d.Root, "expected"), false); err != nil {
		return nil, err
	}
	if d.Actual, d.actualExisted, err = prepare(filepath.Join(d.Root, "actual"), false); err != nil {
		return nil, err
	}
	return d, nil
}

// prepare creates target if missing, otherwise validates it is a
// directory and, unless mustBeEmpty is false, that it is empty.
func prepare(target string, mustBeEmpty bool) (canonical string, preexisted bool, err error) {
	preexisted, err = exists(target)
	if err != nil {
		return "", false, execution.Wrap(execution.IoError, err)
	}

	if !preexisted {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return "", false, execution.Wrap(execution.IoError, err)
		}
	} else {
		info, statErr := os.Stat(target)
		if statErr != nil {
			return "", false, execution.Wrap(execution.IoError, statErr)
		}
		if !info.IsDir() {
			return "", false, execution.Wrap(execution.IoError, fmt.Errorf("%s must be a directory", target))
		}
		if mustBeEmpty {
			empty, emptyErr := isEmpty(target)
			if emptyErr != nil {
				return "", false, execution.Wrap(execution.IoError, emptyErr)
			}
			if !empty {
				return "", false, execution.Wrap(execution.IoError, fmt.Errorf("%s must be empty", target))
			}
		}
	}

	canonical, err = mutant.Canonicalize(target)
	if err != nil {
		return "", false, execution.Wrap(execution.IoError, err)
	}
	return canonical, preexisted, nil
}

// Cleanup removes every subdirectory that did not exist before New was
// called, and the root itself if it too was created by this run. It is
// meant to run both on normal completion and from a signal handler, so
// it never returns an error: best-effort removal only.
func (d *Dir) Cleanup() {
	if !d.rootExisted {
		_ = os.RemoveAll(d.Root)
		return
	}
	if !d.backupExisted {
		_ = os.RemoveAll(d.Backup)
	}
	if !d.expectedExisted {
		_ = os.RemoveAll(d.Expected)
	}
	if !d.actualExisted {
		_ = os.RemoveAll(d.Actual)
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func isEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()
	_, err = f.Readdirnames(1)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}
