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

package ctype

// Tokenizer walks a string one character at a time.
type Tokenizer struct {
	c *CType
	s string
}

// NewTokenizer returns a Tokenizer over s.
func (c *CType) NewTokenizer(s string) *Tokenizer {
	return &Tokenizer{
		c: c,
		s: s,
	}
}

// Next returns the next character. It returns false once the end of the
// string or a NUL byte is reached.
func (t *Tokenizer) Next() (string, bool) {
	w := t.c.ByteWidth(t.s)
	if w == 0 {
		return "", false
	}
	ch := t.s[:w]
	t.s = t.s[w:]
	return ch, true
}

// Rest returns the part of the string not yet consumed.
func (t *Tokenizer) Rest() string {
	return t.s
}

// ScanChars is a [bufio.SplitFunc] that returns each character of the input
// as a token. An incomplete character at EOF is returned as is.
func (c *CType) ScanChars(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if len(data) == 0 {
		return 0, nil, nil
	}

	w := c.LeadWidth(data[0])
	if len(data) >= w {
		return w, data[:w], nil
	}

	if atEOF {
		return len(data), data, nil
	}

	// Request more data.
	return 0, nil, nil
}
