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

package archive

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestIndexScanner tests indexScanner.
func TestIndexScanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		names []string
		sizes []int

		expected []*Entry
	}{
		{
			name:     "empty",
			expected: nil,
		},
		{
			name:  "multi",
			names: []string{"dicrc", "pos-id.def", "sys.dic"},
			sizes: []int{12, 0, 345},

			expected: []*Entry{
				{Name: "dicrc", Offset: 0, Size: 12},
				{Name: "pos-id.def", Offset: 12, Size: 0},
				{Name: "sys.dic", Offset: 12, Size: 345},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			b, err := makeIndex(test.names, test.sizes)
			if err != nil {
				t.Fatalf("makeIndex: %v", err)
			}

			var entries []*Entry
			s := newIndexScanner(bytes.NewReader(b))
			for s.Scan() {
				e, err := s.Entry()
				if err != nil {
					t.Fatalf("Entry: %v", err)
				}
				entries = append(entries, e)
			}
			if err := s.Err(); err != nil {
				t.Fatalf("Err: %v", err)
			}

			if diff := cmp.Diff(test.expected, entries); diff != "" {
				t.Fatalf("entries (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestIndexScanner_truncated tests that a truncated entry is reported.
func TestIndexScanner_truncated(t *testing.T) {
	t.Parallel()

	b, err := makeIndex([]string{"dicrc"}, []int{1})
	if err != nil {
		t.Fatalf("makeIndex: %v", err)
	}

	s := newIndexScanner(bytes.NewReader(b[:len(b)-2]))
	if !s.Scan() {
		t.Fatalf("Scan: want true, got false: %v", s.Err())
	}
	if _, err := s.Entry(); !errors.Is(err, ErrFormat) {
		t.Fatalf("Entry: want ErrFormat, got: %v", err)
	}
}

// TestMakeIndex_zeroByte tests that names with zero bytes are rejected.
func TestMakeIndex_zeroByte(t *testing.T) {
	t.Parallel()

	if _, err := makeIndex([]string{"a\x00b"}, []int{1}); !errors.Is(err, ErrFormat) {
		t.Fatalf("makeIndex: want ErrFormat, got: %v", err)
	}
}
