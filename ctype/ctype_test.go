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

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestCType_ByteWidth tests CType.ByteWidth.
func TestCType_ByteWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		enc      Encoding
		s        string
		expected int
	}{
		{
			name:     "empty",
			enc:      EUCJP,
			s:        "",
			expected: 0,
		},
		{
			name:     "nul",
			enc:      EUCJP,
			s:        "\x00abc",
			expected: 0,
		},
		{
			name:     "ascii euc-jp",
			enc:      EUCJP,
			s:        "a",
			expected: 1,
		},
		{
			name:     "ascii shift-jis",
			enc:      ShiftJIS,
			s:        "a",
			expected: 1,
		},
		{
			name:     "ascii utf-8",
			enc:      UTF8,
			s:        "a",
			expected: 1,
		},
		{
			name:     "euc-jp hiragana",
			enc:      EUCJP,
			s:        "\xa4\xa2",
			expected: 2,
		},
		{
			name:     "euc-jp half-width katakana",
			enc:      EUCJP,
			s:        "\x8e\xb1",
			expected: 2,
		},
		{
			name:     "euc-jp jis x 0212",
			enc:      EUCJP,
			s:        "\x8f\xb0\xa1",
			expected: 3,
		},
		{
			name:     "shift-jis hiragana",
			enc:      ShiftJIS,
			s:        "\x82\xa0",
			expected: 2,
		},
		{
			name:     "shift-jis half-width katakana",
			enc:      ShiftJIS,
			s:        "\xb1\x82\xa0",
			expected: 1,
		},
		{
			name:     "utf-8 kanji",
			enc:      UTF8,
			s:        "本田",
			expected: 3,
		},
		{
			name:     "utf-8 four bytes",
			enc:      UTF8,
			s:        "𠮷",
			expected: 4,
		},
		{
			name:     "utf-8 latin",
			enc:      UTF8,
			s:        "é",
			expected: 2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := New(test.enc).ByteWidth(test.s); got != test.expected {
				t.Fatalf("ByteWidth(%q); want: %d, got: %d", test.s, test.expected, got)
			}
		})
	}
}

// TestCType_ByteWidth_inconsistent tests that ByteWidth panics on truncated
// characters.
func TestCType_ByteWidth_inconsistent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		enc  Encoding
		s    string
	}{
		{
			name: "truncated euc-jp",
			enc:  EUCJP,
			s:    "\xa4",
		},
		{
			name: "nul in euc-jp",
			enc:  EUCJP,
			s:    "\xa4\x00",
		},
		{
			name: "truncated utf-8",
			enc:  UTF8,
			s:    "\xe6\x9c",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("ByteWidth: expected panic")
				}
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrEncodingInconsistency) {
					t.Fatalf("ByteWidth: unexpected panic value: %v", r)
				}
			}()
			New(test.enc).ByteWidth(test.s)
		})
	}
}

// TestCType_IsSpace tests CType.IsSpace.
func TestCType_IsSpace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		enc      Encoding
		s        string
		expected bool
	}{
		{
			name:     "empty",
			enc:      EUCJP,
			s:        "",
			expected: false,
		},
		{
			name:     "ascii spaces",
			enc:      EUCJP,
			s:        " \t \r\n",
			expected: true,
		},
		{
			name:     "euc-jp ideographic space",
			enc:      EUCJP,
			s:        "\xa1\xa1 \xa1\xa1",
			expected: true,
		},
		{
			name:     "shift-jis ideographic space",
			enc:      ShiftJIS,
			s:        "\x81\x40",
			expected: true,
		},
		{
			name:     "utf-8 ideographic space",
			enc:      UTF8,
			s:        "　 ",
			expected: true,
		},
		{
			name:     "word",
			enc:      UTF8,
			s:        " 本 ",
			expected: false,
		},
		{
			name:     "euc-jp hiragana",
			enc:      EUCJP,
			s:        "\xa4\xa2",
			expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := New(test.enc).IsSpace(test.s); got != test.expected {
				t.Fatalf("IsSpace(%q); want: %v, got: %v", test.s, test.expected, got)
			}
		})
	}
}

// TestCType_Chars tests CType.Chars and CType.Len.
func TestCType_Chars(t *testing.T) {
	t.Parallel()

	c := New(UTF8)
	got := c.Chars("本田a総")
	if diff := cmp.Diff([]string{"本", "田", "a", "総"}, got); diff != "" {
		t.Fatalf("Chars (-want, +got):\n%s", diff)
	}
	if want, got := 4, c.Len("本田a総"); want != got {
		t.Fatalf("Len; want: %d, got: %d", want, got)
	}
}

// TestCType_ScanChars tests CType.ScanChars.
func TestCType_ScanChars(t *testing.T) {
	t.Parallel()

	word, err := TranscodeString("本田ｱa", UTF8, EUCJP)
	if err != nil {
		t.Fatalf("TranscodeString: %v", err)
	}

	s := bufio.NewScanner(strings.NewReader(word))
	s.Split(New(EUCJP).ScanChars)
	var got []string
	for s.Scan() {
		got = append(got, s.Text())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	var want []string
	for _, ch := range []string{"本", "田", "ｱ", "a"} {
		e, err := TranscodeString(ch, UTF8, EUCJP)
		if err != nil {
			t.Fatalf("TranscodeString: %v", err)
		}
		want = append(want, e)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ScanChars (-want, +got):\n%s", diff)
	}
}

// TestTranscode tests Transcode.
func TestTranscode(t *testing.T) {
	t.Parallel()

	sjis, err := TranscodeString("ホンダ", UTF8, ShiftJIS)
	if err != nil {
		t.Fatalf("TranscodeString: %v", err)
	}
	euc, err := TranscodeString(sjis, ShiftJIS, EUCJP)
	if err != nil {
		t.Fatalf("TranscodeString: %v", err)
	}
	if want, got := 6, len(euc); want != got {
		t.Fatalf("len; want: %d, got: %d", want, got)
	}
	back, err := TranscodeString(euc, EUCJP, UTF8)
	if err != nil {
		t.Fatalf("TranscodeString: %v", err)
	}
	if want, got := "ホンダ", back; want != got {
		t.Fatalf("round trip; want: %q, got: %q", want, got)
	}

	if _, err := TranscodeString("😀", UTF8, EUCJP); err == nil {
		t.Fatal("TranscodeString: expected failure for unsupported rune")
	}
}

// TestParseEncoding tests ParseEncoding.
func TestParseEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected Encoding
		err      bool
	}{
		{name: "EUC-JP", expected: EUCJP},
		{name: "euc-jp", expected: EUCJP},
		{name: "SHIFT-JIS", expected: ShiftJIS},
		{name: "sjis", expected: ShiftJIS},
		{name: "utf8", expected: UTF8},
		{name: "latin1", err: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseEncoding(test.name)
			if test.err {
				if !errors.Is(err, ErrUnknownEncoding) {
					t.Fatalf("ParseEncoding: expected ErrUnknownEncoding, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEncoding: %v", err)
			}
			if got != test.expected {
				t.Fatalf("ParseEncoding(%q); want: %v, got: %v", test.name, test.expected, got)
			}
		})
	}
}
