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

package textline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestScanner tests Scanner.
func TestScanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		options  *Options
		expected []string
		lines    []int
	}{
		{
			name:     "empty",
			data:     "",
			expected: nil,
		},
		{
			name:     "comments and blanks",
			data:     "; comment\n# comment\n\nfoo\r\n\r\nbar\n",
			expected: []string{"foo", "bar"},
			lines:    []int{4, 6},
		},
		{
			name:     "carriage return truncates",
			data:     "foo\rbar\nbaz",
			expected: []string{"foo", "baz"},
			lines:    []int{1, 2},
		},
		{
			name: "hash only",
			data: "; kept\n# skipped\n",
			options: &Options{
				Comments: "#",
			},
			expected: []string{"; kept"},
			lines:    []int{1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s := NewScanner(strings.NewReader(test.data), test.options)
			var got []string
			var lines []int
			for s.Scan() {
				got = append(got, s.Text())
				lines = append(lines, s.Line())
			}
			if err := s.Err(); err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Text (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.lines, lines); diff != "" {
				t.Fatalf("Line (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestFields tests Fields.
func TestFields(t *testing.T) {
	t.Parallel()

	got := Fields("本田総一郎\t2,3  ホンダ,ソウイチロウ \xa1\xa1x")
	want := []string{"本田総一郎", "2,3", "ホンダ,ソウイチロウ", "\xa1\xa1x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Fields (-want, +got):\n%s", diff)
	}
}
