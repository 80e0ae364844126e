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

// Package userdic compiles user dictionaries written by hand into the CSV
// format consumed by the dictionary compiler.
//
// Each line of a user dictionary holds a word optionally followed by a
// pattern and a reading pattern, separated by whitespace:
//
//	本田総一郎 2,3 ホンダ,ソウイチロウ
//	東京タワー トウキョウタワー
//
// If the pattern is a comma separated list of character counts, the word is
// decomposed into components of those lengths and the reading pattern, if
// present, gives the reading of each component. Otherwise the pattern is the
// reading of the whole word. Blank lines and lines starting with ';' or '#'
// are ignored.
package userdic

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'jma.userdic'
func tracer() tracing.Trace {
	return tracing.Select("jma.userdic")
}
