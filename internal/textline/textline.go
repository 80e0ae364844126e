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

// Package textline scans the line-oriented text resources of a dictionary.
package textline

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize is the longest line accepted by the Scanner.
const maxLineSize = 1 << 20

// Options are options for a Scanner.
type Options struct {
	// Comments is the set of bytes that start a comment line when found in
	// the first column.
	Comments string
}

// DefaultOptions treats lines starting with ';' or '#' as comments.
var DefaultOptions = &Options{
	Comments: ";#",
}

// Scanner returns the meaningful lines of a text resource. Everything from
// the first carriage return of a line onwards is dropped and blank or comment
// lines are skipped.
type Scanner struct {
	s        *bufio.Scanner
	comments string
	line     string
	lineno   int
}

// NewScanner returns a new Scanner reading from r.
func NewScanner(r io.Reader, options *Options) *Scanner {
	if options == nil {
		options = DefaultOptions
	}
	s := bufio.NewScanner(r)
	s.Buffer(nil, maxLineSize)
	return &Scanner{
		s:        s,
		comments: options.Comments,
	}
}

// Scan advances to the next meaningful line. It returns false at the end of
// the input or on error.
func (s *Scanner) Scan() bool {
	for s.s.Scan() {
		s.lineno++
		line := s.s.Text()
		if i := strings.IndexByte(line, '\r'); i >= 0 {
			line = line[:i]
		}
		if line == "" || strings.IndexByte(s.comments, line[0]) >= 0 {
			continue
		}
		s.line = line
		return true
	}
	return false
}

// Text returns the current line.
func (s *Scanner) Text() string {
	return s.line
}

// Line returns the one-based number of the current line in the input.
func (s *Scanner) Line() int {
	return s.lineno
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if err := s.s.Err(); err != nil {
		return fmt.Errorf("reading line %d: %w", s.lineno+1, err)
	}
	return nil
}

// IsSpace reports whether b is an ASCII whitespace byte.
func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Fields splits s around runs of ASCII whitespace. Bytes of multi-byte
// characters are never treated as separators.
func Fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r < 0x80 && IsSpace(byte(r))
	})
}
