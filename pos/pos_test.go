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

package pos_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-jma/pos"
)

const posDef = `# full-category alpha index
名詞,一般,*,* NC-G 0
名詞,固有名詞,人名,姓 NP-S 1
名詞,固有名詞,人名,名	NP-G	2
名詞,固有名詞,一般,* NP-H 4
名詞,ユーザ定義,*,* N-USER 5
`

func mustTable(t *testing.T) *pos.Table {
	t.Helper()
	tbl, err := pos.New(strings.NewReader(posDef))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tbl
}

// TestTable_POS tests Table.Index and Table.POS.
func TestTable_POS(t *testing.T) {
	t.Parallel()

	tbl := mustTable(t)
	if want, got := 6, tbl.Len(); want != got {
		t.Fatalf("Len; want: %d, got: %d", want, got)
	}

	tests := []struct {
		name     string
		alpha    string
		format   pos.Format
		expected string
	}{
		{
			name:     "default",
			alpha:    "NP-S",
			format:   pos.FormatDefault,
			expected: "名詞-固有名詞-人名-姓",
		},
		{
			name:     "default drops unspecified",
			alpha:    "NC-G",
			format:   pos.FormatDefault,
			expected: "名詞-一般",
		},
		{
			name:     "alpha",
			alpha:    "NP-G",
			format:   pos.FormatAlpha,
			expected: "NP-G",
		},
		{
			name:     "full category",
			alpha:    "N-USER",
			format:   pos.FormatFullCategory,
			expected: "名詞,ユーザ定義,*,*",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			index, ok := tbl.Index(test.alpha)
			if !ok {
				t.Fatalf("Index(%q): not found", test.alpha)
			}
			got, ok := tbl.POS(index, test.format)
			if !ok {
				t.Fatalf("POS(%d): not found", index)
			}
			if got != test.expected {
				t.Fatalf("POS(%d); want: %q, got: %q", index, test.expected, got)
			}
		})
	}

	if _, ok := tbl.Index("X-NONE"); ok {
		t.Fatal("Index(X-NONE): expected not found")
	}
	if _, ok := tbl.POS(3, pos.FormatAlpha); ok {
		t.Fatal("POS(3): expected unused index not found")
	}
	if _, ok := tbl.POS(-1, pos.FormatAlpha); ok {
		t.Fatal("POS(-1): expected not found")
	}
}

// TestNew_errors tests malformed POS tables.
func TestNew_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing field",
			data: "名詞,一般 NC-G",
		},
		{
			name: "bad index",
			data: "名詞,一般 NC-G x",
		},
		{
			name: "negative index",
			data: "名詞,一般 NC-G -1",
		},
		{
			name: "duplicate index",
			data: "名詞,一般 NC-G 0\n名詞,数 NC-N 0",
		},
		{
			name: "duplicate label",
			data: "名詞,一般 NC-G 0\n名詞,数 NC-G 1",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if _, err := pos.New(strings.NewReader(test.data)); !errors.Is(err, pos.ErrFormat) {
				t.Fatalf("New: want ErrFormat, got: %v", err)
			}
		})
	}
}

// TestTable_Combine tests Table.LoadCombineRules and Table.Combine.
func TestTable_Combine(t *testing.T) {
	t.Parallel()

	tbl := mustTable(t)
	if err := tbl.LoadCombineRules(strings.NewReader("; target sources...\nNP-H NP-S NP-G\n")); err != nil {
		t.Fatalf("LoadCombineRules: %v", err)
	}

	s, _ := tbl.Index("NP-S")
	g, _ := tbl.Index("NP-G")
	h, _ := tbl.Index("NP-H")

	want := []pos.Rule{{Target: h, Sources: []int{s, g}}}
	if diff := cmp.Diff(want, tbl.Rules()); diff != "" {
		t.Fatalf("Rules (-want, +got):\n%s", diff)
	}

	got, ok := tbl.Combine(s, g)
	if !ok || got != h {
		t.Fatalf("Combine(%d, %d); want: %d, got: %d, %v", s, g, h, got, ok)
	}
	if _, ok := tbl.Combine(g, s); ok {
		t.Fatal("Combine: expected no match for reversed sequence")
	}

	if err := tbl.LoadCombineRules(strings.NewReader("NP-H NP-S X-NONE")); !errors.Is(err, pos.ErrFormat) {
		t.Fatalf("LoadCombineRules: want ErrFormat, got: %v", err)
	}
	if diff := cmp.Diff(want, tbl.Rules()); diff != "" {
		t.Fatalf("Rules after failure (-want, +got):\n%s", diff)
	}
}
