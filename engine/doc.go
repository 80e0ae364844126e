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

// Package engine is the boundary to the external morphological analysis
// engine. The engine compiles text dictionaries into its binary format and
// constructs analyzer handles from compiled dictionaries. Nothing in this
// module interprets those binary formats.
//
// Exec drives the MeCab command line tools:
//
//	mecab-dict-index -d <src> -o <dest> -t <encoding>
//	mecab-dict-index -d <sys> -u user.bin -f <encoding> -t <encoding> user.csv
//	mecab -d <sys> [-u user.bin]
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'jma.engine'
func tracer() tracing.Trace {
	return tracing.Select("jma.engine")
}
