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

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ianlewis/go-jma/engine"
)

// Engine is a fake engine.Engine recording its calls.
type Engine struct {
	// CompileErr, UserDictErr and HandleErr are returned by the
	// corresponding methods if set.
	CompileErr  error
	UserDictErr error
	HandleErr   error

	// Encodings are the encoding arguments in call order.
	Encodings []string

	// UserCSV is the CSV passed to the last CompileUserDictionary call.
	UserCSV []byte

	// UserDict is the user dictionary passed to the last NewHandle call.
	UserDict []byte

	// Resources are the resource names passed to the last NewHandle call.
	Resources []string

	// Handles is the number of handles created.
	Handles int

	// Open is the number of handles not yet closed.
	Open int
}

var _ engine.Engine = (*Engine)(nil)

// CompileDictionary writes BinaryFiles to destDir.
func (e *Engine) CompileDictionary(srcDir, destDir, encoding string) error {
	e.Encodings = append(e.Encodings, encoding)
	if e.CompileErr != nil {
		return e.CompileErr
	}
	if _, err := os.Stat(filepath.Join(srcDir, "dicrc")); err != nil {
		return fmt.Errorf("%w: %w", engine.ErrToolFailed, err)
	}
	for name, data := range BinaryFiles {
		if err := os.WriteFile(filepath.Join(destDir, name), data, 0o600); err != nil {
			return err
		}
	}
	return nil
}

// CompileUserDictionary returns the CSV prefixed with "bin:".
func (e *Engine) CompileUserDictionary(sys engine.Resources, csv []byte, encoding string) ([]byte, error) {
	e.Encodings = append(e.Encodings, encoding)
	e.UserCSV = slices.Clone(csv)
	if e.UserDictErr != nil {
		return nil, e.UserDictErr
	}
	if _, err := sys.Resource("sys.dic"); err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrToolFailed, err)
	}
	return append([]byte("bin:"), csv...), nil
}

// NewHandle returns a handle tracked by Open.
func (e *Engine) NewHandle(dictDir string, sys engine.Resources, userDict []byte) (engine.Handle, error) {
	e.UserDict = slices.Clone(userDict)
	e.Resources = sys.Names()
	if e.HandleErr != nil {
		return nil, e.HandleErr
	}
	e.Handles++
	e.Open++
	return &handle{e: e}, nil
}

type handle struct {
	e      *Engine
	closed bool
}

func (h *handle) Close() error {
	if !h.closed {
		h.closed = true
		h.e.Open--
	}
	return nil
}
