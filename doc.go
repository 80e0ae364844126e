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

// Package jma manages the dictionary knowledge of a Japanese morphological
// analyzer.
//
// A compiled system dictionary is a directory holding:
//  1. A "sys.bin" archive with the dictionary configuration ("dicrc"), the
//     POS table ("pos-id.def"), the character maps ("map-kana.def",
//     "map-width.def", "map-case.def"), the connection and rewrite
//     definitions and the binary files produced by the dictionary compiler.
//  2. An optional "compound.def" file with POS combination rules.
//
// Knowledge loads a system dictionary, compiles user dictionaries against it
// and checks that the analysis engine accepts the result. Once loaded it
// answers queries about POS tags, character maps, stop words and sentence
// separators. EncodeSystemDict builds a system dictionary from its text
// sources.
package jma

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'jma'
func tracer() tracing.Trace {
	return tracing.Select("jma")
}
