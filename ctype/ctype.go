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

// Package ctype classifies characters of multi-byte Japanese text.
//
// Text is handled as raw bytes in one of the supported encodings. A CType
// knows how many bytes the character at the start of a byte sequence
// occupies and whether a character is whitespace. It is the single place
// where the rest of the module becomes aware of the text encoding.
package ctype

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ErrEncodingInconsistency indicates that the bytes of a text do not follow
// the layout of the declared encoding. CType panics with an error wrapping
// this value since offsets computed past this point would be corrupt.
var ErrEncodingInconsistency = errors.New("encoding inconsistency")

// CType is a character classifier for a single encoding.
type CType struct {
	enc Encoding
}

// New returns a classifier for the given encoding.
func New(enc Encoding) *CType {
	return &CType{enc: enc}
}

// Encoding returns the encoding handled by the classifier.
func (c *CType) Encoding() Encoding {
	return c.enc
}

// LeadWidth returns the byte width of a character implied by its lead byte.
// It does not look at the following bytes.
func (c *CType) LeadWidth(b byte) int {
	if b < 0x80 {
		return 1
	}
	switch c.enc {
	case EUCJP:
		// SS3 introduces a JIS X 0212 character.
		if b == 0x8f {
			return 3
		}
		return 2
	case ShiftJIS:
		// Half-width katakana.
		if 0xa1 <= b && b <= 0xdf {
			return 1
		}
		return 2
	default:
		switch {
		case b&0xe0 == 0xc0:
			return 2
		case b&0xf0 == 0xe0:
			return 3
		case b&0xf8 == 0xf0:
			return 4
		}
		return 1
	}
}

// ByteWidth returns the number of bytes occupied by the first character of
// s. It returns 0 if s is empty or starts with a NUL byte.
//
// ByteWidth panics if the width implied by the lead byte runs past the end
// of s or over a NUL byte.
func (c *CType) ByteWidth(s string) int {
	if len(s) == 0 || s[0] == 0 {
		return 0
	}
	w := c.LeadWidth(s[0])
	if w > len(s) {
		panic(fmt.Errorf("%w: %v character of %d bytes truncated in %q", ErrEncodingInconsistency, c.enc, w, s))
	}
	for i := 1; i < w; i++ {
		if s[i] == 0 {
			panic(fmt.Errorf("%w: %v character of %d bytes interrupted by NUL in %q", ErrEncodingInconsistency, c.enc, w, s))
		}
	}
	return w
}

// IsSpace returns whether s is a non-empty string composed entirely of
// whitespace characters.
func (c *CType) IsSpace(s string) bool {
	if s == "" {
		return false
	}
	for s != "" {
		w := c.ByteWidth(s)
		if w == 0 {
			// Text after a NUL is not considered.
			break
		}
		if !c.isSpaceChar(s[:w]) {
			return false
		}
		s = s[w:]
	}
	return true
}

func (c *CType) isSpaceChar(ch string) bool {
	if len(ch) == 1 {
		switch ch[0] {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			return true
		}
		return false
	}
	switch c.enc {
	case EUCJP:
		return ch == "\xa1\xa1"
	case ShiftJIS:
		return ch == "\x81\x40"
	default:
		r, _ := utf8.DecodeRuneInString(ch)
		return r != utf8.RuneError && unicode.IsSpace(r)
	}
}

// Chars splits s into its characters.
func (c *CType) Chars(s string) []string {
	var chars []string
	t := c.NewTokenizer(s)
	for {
		ch, ok := t.Next()
		if !ok {
			break
		}
		chars = append(chars, ch)
	}
	return chars
}

// Len returns the number of characters in s.
func (c *CType) Len(s string) int {
	n := 0
	for {
		w := c.ByteWidth(s)
		if w == 0 {
			return n
		}
		s = s[w:]
		n++
	}
}
