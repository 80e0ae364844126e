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

// Package separator implements sets of sentence separator characters.
//
// A character is stored as the big-endian packing of its bytes in a set
// chosen by its byte width.
package separator

import (
	"io"

	"github.com/ianlewis/go-jma/ctype"
	"github.com/ianlewis/go-jma/internal/textline"
)

// MaxWidth is the widest character in bytes a Set can hold.
const MaxWidth = 4

// Set is a set of separator characters. The zero value is an empty set.
type Set struct {
	// sets is indexed by character byte width.
	sets [MaxWidth + 1]map[uint32]struct{}
}

// New returns an empty Set.
func New() *Set {
	return &Set{}
}

// Pack returns the big-endian packing of the first w bytes of s.
func Pack(s string, w int) uint32 {
	var v uint32
	for i := 0; i < w; i++ {
		v = v<<8 | uint32(s[i])
	}
	return v
}

// Width returns the number of bytes v occupies.
func Width(v uint32) int {
	w := 1
	for v > 0xff {
		v >>= 8
		w++
	}
	return w
}

// Add adds the packed character v to the set.
func (s *Set) Add(v uint32) {
	s.add(Width(v), v)
}

func (s *Set) add(w int, v uint32) {
	if s.sets[w] == nil {
		s.sets[w] = map[uint32]struct{}{}
	}
	s.sets[w][v] = struct{}{}
}

// AddChar adds the first character of ch to the set.
func (s *Set) AddChar(ch string, c *ctype.CType) {
	w := c.ByteWidth(ch)
	if w == 0 {
		return
	}
	assert(w <= MaxWidth, "cannot handle characters wider than 4 bytes")
	s.add(w, Pack(ch, w))
}

// Contains returns whether the first character of p is a separator.
func (s *Set) Contains(p string, c *ctype.CType) bool {
	w := c.ByteWidth(p)
	if w == 0 {
		return false
	}
	assert(w <= MaxWidth, "cannot handle characters wider than 4 bytes")
	_, ok := s.sets[w][Pack(p, w)]
	return ok
}

// Len returns the number of separators in the set.
func (s *Set) Len() int {
	n := 0
	for _, m := range s.sets {
		n += len(m)
	}
	return n
}

// Load reads a separator configuration from r into a new Set. Each line
// holds one character. Blank lines and lines starting with '#' are skipped.
func Load(r io.Reader, c *ctype.CType) (*Set, error) {
	s := New()
	sc := textline.NewScanner(r, &textline.Options{
		Comments: "#",
	})
	for sc.Scan() {
		s.AddChar(sc.Text(), c)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
