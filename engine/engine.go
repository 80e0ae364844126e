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
	"errors"
)

// ErrToolFailed indicates that an engine tool exited with a non-zero status.
var ErrToolFailed = errors.New("engine tool failed")

// Resources is a set of named dictionary resources such as an opened system
// dictionary archive.
type Resources interface {
	// Resource returns the contents of the named resource.
	Resource(name string) ([]byte, error)

	// Names returns the names of all resources.
	Names() []string
}

// Handle is an analyzer handle constructed by the engine.
type Handle interface {
	// Close releases the handle.
	Close() error
}

// Engine is the external morphological analysis engine.
type Engine interface {
	// CompileDictionary compiles the text dictionary in srcDir into binary
	// files in destDir using the named output encoding.
	CompileDictionary(srcDir, destDir, encoding string) error

	// CompileUserDictionary compiles user dictionary CSV records against the
	// system dictionary resources and returns the binary user dictionary. The
	// records are encoded in the named encoding.
	CompileUserDictionary(sys Resources, csv []byte, encoding string) ([]byte, error)

	// NewHandle constructs an analyzer handle from the system dictionary
	// resources and an optional binary user dictionary. dictDir is the
	// system dictionary directory.
	NewHandle(dictDir string, sys Resources, userDict []byte) (Handle, error)
}
