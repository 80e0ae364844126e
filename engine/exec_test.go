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

package engine_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-jma/engine"
)

type resources map[string][]byte

func (r resources) Resource(name string) ([]byte, error) {
	b, ok := r[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return b, nil
}

func (r resources) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// writeTool writes an executable shell script and returns its path. Tests
// using it do not run in parallel since executing a file that another
// goroutine's fork still holds open for writing fails with ETXTBSY.
func writeTool(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}

	path := filepath.Join(t.TempDir(), "tool")
	//nolint:gosec // test tool must be executable.
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o700); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// TestExec_CompileDictionary tests the arguments and status of the
// dictionary compiler.
func TestExec_CompileDictionary(t *testing.T) {
	out := filepath.Join(t.TempDir(), "args")
	e := engine.NewExec(&engine.ExecOptions{
		DictIndex: writeTool(t, `echo "$@" > "`+out+`"`+"\n"),
	})

	if err := e.CompileDictionary("txt", "bin", "EUC-JP"); err != nil {
		t.Fatalf("CompileDictionary: %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff("-d txt -o bin -t EUC-JP\n", string(b)); diff != "" {
		t.Fatalf("arguments (-want, +got):\n%s", diff)
	}
}

// TestExec_CompileDictionary_failure tests that a non-zero exit status is
// reported.
func TestExec_CompileDictionary_failure(t *testing.T) {
	e := engine.NewExec(&engine.ExecOptions{
		DictIndex: writeTool(t, "echo broken >&2\nexit 3\n"),
	})

	err := e.CompileDictionary("txt", "bin", "EUC-JP")
	if !errors.Is(err, engine.ErrToolFailed) {
		t.Fatalf("CompileDictionary: want ErrToolFailed, got: %v", err)
	}
}

// TestExec_CompileUserDictionary tests compiling a user dictionary against
// materialized system resources.
func TestExec_CompileUserDictionary(t *testing.T) {
	// Writes the materialized dicrc followed by the CSV records to the file
	// given with -u.
	script := `
while [ $# -gt 0 ]; do
	case "$1" in
		-d) dir="$2"; shift 2 ;;
		-u) bin="$2"; shift 2 ;;
		-f|-t) shift 2 ;;
		*) csv="$1"; shift ;;
	esac
done
cat "$dir/dicrc" "$csv" > "$bin"
`
	e := engine.NewExec(&engine.ExecOptions{
		DictIndex: writeTool(t, script),
		TempDir:   t.TempDir(),
	})

	sys := resources{
		"dicrc":   []byte("cost-factor = 800\n"),
		"sys.dic": {0, 1, 2},
	}
	b, err := e.CompileUserDictionary(sys, []byte("本田,-1,-1,-500\n"), "UTF-8")
	if err != nil {
		t.Fatalf("CompileUserDictionary: %v", err)
	}
	if diff := cmp.Diff("cost-factor = 800\n本田,-1,-1,-500\n", string(b)); diff != "" {
		t.Fatalf("user dictionary (-want, +got):\n%s", diff)
	}
}

// TestExec_NewHandle tests constructing and closing handles.
func TestExec_NewHandle(t *testing.T) {
	tempDir := t.TempDir()
	e := engine.NewExec(&engine.ExecOptions{
		Analyzer: writeTool(t, "cat > /dev/null\n"),
		TempDir:  tempDir,
	})

	h, err := e.NewHandle("dict", resources{"dicrc": []byte("a = b\n")}, []byte{1})
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if want, got := 1, len(entries); want != got {
		t.Fatalf("materialized dictionaries; want: %d, got: %d", want, got)
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	entries, err = os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if want, got := 0, len(entries); want != got {
		t.Fatalf("materialized dictionaries after Close; want: %d, got: %d", want, got)
	}
}

// TestExec_NewHandle_failure tests that a rejected dictionary is reported
// and cleaned up.
func TestExec_NewHandle_failure(t *testing.T) {
	tempDir := t.TempDir()
	e := engine.NewExec(&engine.ExecOptions{
		Analyzer: writeTool(t, "exit 1\n"),
		TempDir:  tempDir,
	})

	if _, err := e.NewHandle("dict", resources{}, nil); !errors.Is(err, engine.ErrToolFailed) {
		t.Fatalf("NewHandle: want ErrToolFailed, got: %v", err)
	}
	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if want, got := 0, len(entries); want != got {
		t.Fatalf("materialized dictionaries; want: %d, got: %d", want, got)
	}
}
