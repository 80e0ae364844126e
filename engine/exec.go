// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	userBinFile = "user.bin"
	userCSVFile = "user.csv"
)

// ExecOptions are options for Exec.
type ExecOptions struct {
	// DictIndex is the dictionary compiler command.
	DictIndex string

	// Analyzer is the analyzer command.
	Analyzer string

	// TempDir is the directory where dictionary resources are materialized.
	// The system default is used if empty.
	TempDir string
}

// DefaultExecOptions are the default options for Exec.
var DefaultExecOptions = &ExecOptions{
	DictIndex: "mecab-dict-index",
	Analyzer:  "mecab",
}

// Exec is an Engine that runs the MeCab command line tools. Resources are
// materialized in temporary directories which are removed on a best-effort
// basis.
type Exec struct {
	dictIndex string
	analyzer  string
	tempDir   string
}

// NewExec returns a new Exec engine.
func NewExec(opts *ExecOptions) *Exec {
	if opts == nil {
		opts = DefaultExecOptions
	}
	e := &Exec{
		dictIndex: opts.DictIndex,
		analyzer:  opts.Analyzer,
		tempDir:   opts.TempDir,
	}
	if e.dictIndex == "" {
		e.dictIndex = DefaultExecOptions.DictIndex
	}
	if e.analyzer == "" {
		e.analyzer = DefaultExecOptions.Analyzer
	}
	return e
}

// CompileDictionary implements Engine.CompileDictionary.
func (e *Exec) CompileDictionary(srcDir, destDir, encoding string) error {
	return e.run(nil, e.dictIndex, "-d", srcDir, "-o", destDir, "-t", encoding)
}

// CompileUserDictionary implements Engine.CompileUserDictionary.
func (e *Exec) CompileUserDictionary(sys Resources, csv []byte, encoding string) ([]byte, error) {
	dir, err := e.materialize(sys)
	if err != nil {
		return nil, err
	}
	defer e.cleanup(dir)

	csvPath := filepath.Join(dir, userCSVFile)
	if err := os.WriteFile(csvPath, csv, 0o600); err != nil {
		return nil, fmt.Errorf("writing user dictionary: %w", err)
	}
	binPath := filepath.Join(dir, userBinFile)
	if err := e.run(nil, e.dictIndex, "-d", dir, "-u", binPath, "-f", encoding, "-t", encoding, csvPath); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(binPath)
	if err != nil {
		return nil, fmt.Errorf("reading compiled user dictionary: %w", err)
	}
	return b, nil
}

// NewHandle implements Engine.NewHandle. The analyzer is run once over empty
// input to check that it accepts the dictionary.
func (e *Exec) NewHandle(dictDir string, sys Resources, userDict []byte) (Handle, error) {
	dir, err := e.materialize(sys)
	if err != nil {
		return nil, err
	}

	args := []string{"-d", dir}
	if userDict != nil {
		binPath := filepath.Join(dir, userBinFile)
		if err := os.WriteFile(binPath, userDict, 0o600); err != nil {
			e.cleanup(dir)
			return nil, fmt.Errorf("writing user dictionary: %w", err)
		}
		args = append(args, "-u", binPath)
	}

	if err := e.run(strings.NewReader(""), e.analyzer, args...); err != nil {
		e.cleanup(dir)
		return nil, err
	}

	tracer().Debugf("engine handle for %s in %s", dictDir, dir)
	return &execHandle{
		dir: dir,
	}, nil
}

// materialize writes all resources to a new temporary directory.
func (e *Exec) materialize(sys Resources) (string, error) {
	dir, err := os.MkdirTemp(e.tempDir, "jma-")
	if err != nil {
		return "", fmt.Errorf("creating dictionary directory: %w", err)
	}
	for _, name := range sys.Names() {
		b, err := sys.Resource(name)
		if err == nil {
			err = os.WriteFile(filepath.Join(dir, filepath.Base(name)), b, 0o600)
		}
		if err != nil {
			e.cleanup(dir)
			return "", fmt.Errorf("materializing %s: %w", name, err)
		}
	}
	return dir, nil
}

func (e *Exec) cleanup(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		tracer().Infof("leaving temporary dictionary %s: %v", dir, err)
	}
}

func (e *Exec) run(stdin *strings.Reader, name string, args ...string) error {
	tracer().Debugf("running %s %s", name, strings.Join(args, " "))

	cmd := exec.Command(name, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s: exit status %d: %s", ErrToolFailed, name, exitErr.ExitCode(), strings.TrimSpace(out.String()))
		}
		return fmt.Errorf("%w: %s: %w", ErrToolFailed, name, err)
	}
	return nil
}

// execHandle owns the materialized dictionary of an analyzer.
type execHandle struct {
	dir string
}

// Close removes the materialized dictionary.
func (h *execHandle) Close() error {
	if h.dir == "" {
		return nil
	}
	err := os.RemoveAll(h.dir)
	h.dir = ""
	if err != nil {
		return fmt.Errorf("closing engine handle: %w", err)
	}
	return nil
}
