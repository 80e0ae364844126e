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

// Package chartable implements character mapping tables such as the
// conversion between Hiragana and Katakana ("map-kana.def"), half and full
// width ("map-width.def") or lower and upper case ("map-case.def").
//
// Each row of a mapping file holds a left and a right character separated by
// whitespace.
//
//	あ ア
package chartable

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-jma/ctype"
	"github.com/ianlewis/go-jma/internal/textline"
)

// ErrFormat indicates that a mapping file is malformed.
var ErrFormat = errors.New("mapping format error")

// Direction is a conversion direction.
type Direction int

const (
	// ToRight converts left characters to right characters.
	ToRight Direction = iota

	// ToLeft converts right characters to left characters.
	ToLeft
)

// Table is a bidirectional character mapping. The zero value maps nothing.
type Table struct {
	right map[string]string
	left  map[string]string
}

// New reads a mapping table from r.
func New(r io.Reader) (*Table, error) {
	t := &Table{
		right: map[string]string{},
		left:  map[string]string{},
	}

	s := textline.NewScanner(r, textline.DefaultOptions)
	for s.Scan() {
		fields := textline.Fields(s.Text())
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want 2 fields, got %d", ErrFormat, s.Line(), len(fields))
		}
		// The first mapping wins for characters defined more than once.
		if _, ok := t.right[fields[0]]; !ok {
			t.right[fields[0]] = fields[1]
		}
		if _, ok := t.left[fields[1]]; !ok {
			t.left[fields[1]] = fields[0]
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

// Len returns the number of left characters with a mapping.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.right)
}

// Lookup maps a single character in the given direction.
func (t *Table) Lookup(ch string, dir Direction) (string, bool) {
	if t == nil {
		return "", false
	}
	m := t.right
	if dir == ToLeft {
		m = t.left
	}
	v, ok := m[ch]
	return v, ok
}

// Convert maps every character of s in the given direction. Characters
// without a mapping are kept.
func (t *Table) Convert(s string, dir Direction, c *ctype.CType) string {
	out, _, err := transform.String(t.Transformer(dir, c), s)
	if err != nil {
		// The transformer only fails on short buffers which transform.String
		// handles itself.
		return s
	}
	return out
}

// Transformer returns a [transform.Transformer] that maps characters in the
// given direction. Characters are delimited using c.
func (t *Table) Transformer(dir Direction, c *ctype.CType) transform.Transformer {
	return &mapper{
		t:   t,
		dir: dir,
		c:   c,
	}
}

type mapper struct {
	transform.NopResetter

	t   *Table
	dir Direction
	c   *ctype.CType
}

// Transform implements [transform.Transformer.Transform].
func (m *mapper) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		size := m.c.LeadWidth(src[nSrc])
		if nSrc+size > len(src) {
			if !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			// Emit a truncated character as is.
			size = len(src) - nSrc
		}

		ch := src[nSrc : nSrc+size]
		out := ch
		if v, ok := m.t.Lookup(string(ch), m.dir); ok {
			out = []byte(v)
		}
		if nDst+len(out) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], out)
		nSrc += size
	}

	return nDst, nSrc, nil
}
