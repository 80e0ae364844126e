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

// Package pos implements the part-of-speech table loaded from "pos-id.def".
//
// Each row of "pos-id.def" holds three whitespace separated fields: the full
// category of a POS tag as comma separated components, its alphabetical label
// and its index code.
//
//	名詞,固有名詞,人名,姓 NP-S 41
//
// The optional "compound.def" file defines rules combining a sequence of
// tokens into one. Each row holds the alphabetical label of the combined POS
// followed by the labels of the sequence.
//
//	NP-H NP-S NP-G
package pos

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ianlewis/go-jma/internal/textline"
)

// ErrFormat indicates that a POS definition file is malformed.
var ErrFormat = errors.New("pos format error")

// Format is an output format of a POS tag.
type Format int

const (
	// FormatDefault is the full category without unspecified ("*")
	// components, joined by '-'. e.g. "名詞-固有名詞-人名-姓".
	FormatDefault Format = iota

	// FormatAlpha is the alphabetical label. e.g. "NP-S".
	FormatAlpha

	// FormatFullCategory is the full category. e.g. "名詞,固有名詞,人名,姓".
	FormatFullCategory
)

type entry struct {
	full  string
	alpha string
	short string
}

// Table is a part-of-speech table.
type Table struct {
	// entries is indexed by the POS index code.
	entries []*entry
	byAlpha map[string]int
	rules   []Rule
}

// Rule combines a sequence of POS tags into one.
type Rule struct {
	Target  int
	Sources []int
}

// New reads a POS table from r.
func New(r io.Reader) (*Table, error) {
	t := &Table{
		byAlpha: map[string]int{},
	}

	s := textline.NewScanner(r, textline.DefaultOptions)
	for s.Scan() {
		fields := textline.Fields(s.Text())
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: want 3 fields, got %d", ErrFormat, s.Line(), len(fields))
		}
		index, err := strconv.Atoi(fields[2])
		if err != nil || index < 0 {
			return nil, fmt.Errorf("%w: line %d: invalid index %q", ErrFormat, s.Line(), fields[2])
		}
		if index < len(t.entries) && t.entries[index] != nil {
			return nil, fmt.Errorf("%w: line %d: duplicate index %d", ErrFormat, s.Line(), index)
		}
		if _, ok := t.byAlpha[fields[1]]; ok {
			return nil, fmt.Errorf("%w: line %d: duplicate label %q", ErrFormat, s.Line(), fields[1])
		}
		for len(t.entries) <= index {
			t.entries = append(t.entries, nil)
		}
		t.entries[index] = &entry{
			full:  fields[0],
			alpha: fields[1],
			short: shorten(fields[0]),
		}
		t.byAlpha[fields[1]] = index
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

func shorten(full string) string {
	var parts []string
	for _, c := range strings.Split(full, ",") {
		if c != "*" && c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "-")
}

// Len returns the number of index codes, including unused codes below the
// highest one.
func (t *Table) Len() int {
	return len(t.entries)
}

// Index returns the index code of the POS with the given alphabetical label.
func (t *Table) Index(alpha string) (int, bool) {
	i, ok := t.byAlpha[alpha]
	return i, ok
}

// POS returns the POS string of an index code in the requested format.
func (t *Table) POS(index int, f Format) (string, bool) {
	if index < 0 || index >= len(t.entries) || t.entries[index] == nil {
		return "", false
	}
	e := t.entries[index]
	switch f {
	case FormatAlpha:
		return e.alpha, true
	case FormatFullCategory:
		return e.full, true
	default:
		return e.short, true
	}
}

// LoadCombineRules reads POS combination rules from r, replacing any rules
// loaded before. On error the previous rules are kept.
func (t *Table) LoadCombineRules(r io.Reader) error {
	var rules []Rule
	s := textline.NewScanner(r, textline.DefaultOptions)
	for s.Scan() {
		fields := textline.Fields(s.Text())
		if len(fields) < 3 {
			return fmt.Errorf("%w: line %d: a rule needs a target and at least two sources", ErrFormat, s.Line())
		}
		var rule Rule
		for i, f := range fields {
			index, ok := t.Index(f)
			if !ok {
				return fmt.Errorf("%w: line %d: unknown POS %q", ErrFormat, s.Line(), f)
			}
			if i == 0 {
				rule.Target = index
				continue
			}
			rule.Sources = append(rule.Sources, index)
		}
		rules = append(rules, rule)
	}
	if err := s.Err(); err != nil {
		return err
	}
	t.rules = rules
	return nil
}

// Rules returns the POS combination rules.
func (t *Table) Rules() []Rule {
	return t.rules
}

// Combine returns the POS that the given sequence of POS index codes is
// combined into, if a rule matches the sequence.
func (t *Table) Combine(seq ...int) (int, bool) {
	for _, r := range t.rules {
		if len(r.Sources) != len(seq) {
			continue
		}
		match := true
		for i := range seq {
			if r.Sources[i] != seq[i] {
				match = false
				break
			}
		}
		if match {
			return r.Target, true
		}
	}
	return 0, false
}
