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

package userdic

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ianlewis/go-jma/ctype"
	"github.com/ianlewis/go-jma/internal/textline"
)

// DefaultCost is the word cost of user defined nouns. The smaller the cost,
// the more likely user defined nouns are recognized.
const DefaultCost = -500

var (
	// ErrEmpty indicates that no entries were found in the user dictionaries.
	ErrEmpty = errors.New("empty user dictionary")

	// ErrInvalidLine indicates that a line of a user dictionary was rejected.
	ErrInvalidLine = errors.New("invalid user dictionary line")

	// ErrInvalidOptions indicates that the compiler options are unusable.
	ErrInvalidOptions = errors.New("invalid user dictionary options")
)

// Morpheme is one component of a decomposed user noun.
type Morpheme struct {
	// Lexicon is the surface string of the component.
	Lexicon string

	// ReadForm is the reading of the component. It is empty if no reading
	// is defined.
	ReadForm string
}

// DecompMap maps user nouns such as "本田総一郎" to their components such as
// "本田" and "総一郎".
type DecompMap map[string][]Morpheme

// Options are options for the Compiler.
type Options struct {
	// CType delimits the characters of words. Required.
	CType *ctype.CType

	// POS is the full category string of the user noun POS, such as
	// "名詞,固有名詞,ユーザ定義,*". Required.
	POS string

	// ReadFormOffset is the zero based offset of the reading form in the
	// features of an entry.
	ReadFormOffset int

	// Cost is the word cost of each entry.
	Cost int
}

// Compiler converts user dictionaries to the CSV format consumed by the
// dictionary compiler.
type Compiler struct {
	ct             *ctype.CType
	pos            string
	posSize        int
	readFormOffset int
	cost           int

	csv    bytes.Buffer
	count  int
	decomp DecompMap
}

// NewCompiler returns a new Compiler.
func NewCompiler(opts *Options) (*Compiler, error) {
	if opts == nil || opts.CType == nil {
		return nil, fmt.Errorf("%w: no character classifier", ErrInvalidOptions)
	}
	posSize := len(tokenizeCSV(opts.POS))
	if posSize == 0 {
		return nil, fmt.Errorf("%w: empty POS", ErrInvalidOptions)
	}
	return &Compiler{
		ct:             opts.CType,
		pos:            opts.POS,
		posSize:        posSize,
		readFormOffset: opts.ReadFormOffset,
		cost:           opts.Cost,
		decomp:         DecompMap{},
	}, nil
}

// Convert reads a user dictionary from r and appends its entries. name is
// used in diagnostics. Invalid lines are reported and skipped. It returns the
// number of entries added.
func (c *Compiler) Convert(r io.Reader, name string) (int, error) {
	count := 0
	s := textline.NewScanner(r, textline.DefaultOptions)
	for s.Scan() {
		if err := c.convertLine(s.Text()); err != nil {
			tracer().Errorf("%s:%d: %v", name, s.Line(), err)
			continue
		}
		count++
	}
	if err := s.Err(); err != nil {
		return count, fmt.Errorf("reading %s: %w", name, err)
	}
	return count, nil
}

// ConvertFile is like Convert but reads the user dictionary from path.
func (c *Compiler) ConvertFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening user dictionary: %w", err)
	}
	defer f.Close()
	return c.Convert(f, path)
}

// CSV returns the converted entries.
func (c *Compiler) CSV() []byte {
	return c.csv.Bytes()
}

// Count returns the number of converted entries.
func (c *Compiler) Count() int {
	return c.count
}

// DecompMap returns the decompositions of the converted user nouns.
func (c *Compiler) DecompMap() DecompMap {
	return c.decomp
}

// convertLine converts one line. Nothing is written if the line is invalid.
func (c *Compiler) convertLine(line string) error {
	fields := textline.Fields(line)
	if len(fields) == 0 {
		return fmt.Errorf("%w: no word is defined in line: %q", ErrInvalidLine, line)
	}
	word := fields[0]

	var read string
	hasRead := false
	var decomp []Morpheme
	if len(fields) > 1 {
		pattern := fields[1]
		comps := tokenizeCSV(pattern)
		if len(comps) == 0 {
			return fmt.Errorf("%w: fail to tokenize pattern: %q", ErrInvalidLine, pattern)
		}

		if !isNumber(comps[0]) {
			// The pattern is the reading of the whole word.
			read = strings.Join(comps, "")
			hasRead = true
		} else {
			var err error
			decomp, err = c.decompose(word, comps)
			if err != nil {
				return err
			}

			if len(fields) > 2 {
				pattern = fields[2]
				reads := tokenizeCSV(pattern)
				if len(reads) == 0 {
					return fmt.Errorf("%w: fail to tokenize pattern: %q", ErrInvalidLine, pattern)
				}
				if len(reads) != len(decomp) {
					return fmt.Errorf("%w: %d readings for %d components in line: %q", ErrInvalidLine, len(reads), len(decomp), line)
				}
				for i := range reads {
					decomp[i].ReadForm = reads[i]
				}
				read = strings.Join(reads, "")
				hasRead = true
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s,-1,-1,%d,%s", word, c.cost, c.pos)
	for i := c.posSize; i < c.readFormOffset; i++ {
		b.WriteString(",*")
	}
	if hasRead {
		b.WriteString(",")
		b.WriteString(read)
	} else {
		b.WriteString(",*")
	}
	b.WriteString("\n")

	c.csv.WriteString(b.String())
	c.count++
	if decomp != nil {
		c.decomp[word] = decomp
	}
	return nil
}

// decompose splits word into components of the character counts in comps.
// The counts must consume the whole word.
func (c *Compiler) decompose(word string, comps []string) ([]Morpheme, error) {
	t := c.ct.NewTokenizer(word)
	decomp := make([]Morpheme, 0, len(comps))
	for _, comp := range comps {
		if !isNumber(comp) {
			return nil, fmt.Errorf("%w: only digits are allowed in decomposition pattern: %q", ErrInvalidLine, strings.Join(comps, ","))
		}
		n, err := strconv.Atoi(comp)
		if err != nil {
			return nil, fmt.Errorf("%w: decomposition pattern %q: %w", ErrInvalidLine, comp, err)
		}

		var lexicon strings.Builder
		for range n {
			ch, ok := t.Next()
			if !ok {
				return nil, fmt.Errorf("%w: decomposition pattern exceeds the characters of %q", ErrInvalidLine, word)
			}
			lexicon.WriteString(ch)
		}
		decomp = append(decomp, Morpheme{
			Lexicon: lexicon.String(),
		})
	}
	if _, ok := t.Next(); ok {
		return nil, fmt.Errorf("%w: decomposition pattern does not cover the characters of %q", ErrInvalidLine, word)
	}
	return decomp, nil
}

// tokenizeCSV splits a comma separated string. A trailing empty component
// is dropped.
func tokenizeCSV(s string) []string {
	if s == "" {
		return nil
	}
	comps := strings.Split(s, ",")
	if comps[len(comps)-1] == "" {
		comps = comps[:len(comps)-1]
	}
	return comps
}

// isNumber returns whether s is a non-empty string of decimal digits.
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Result is the result of compiling user dictionaries.
type Result struct {
	// CSV holds the entries in the format of the dictionary compiler.
	CSV []byte

	// Count is the number of entries.
	Count int

	// DecompMap holds the decompositions of the user nouns.
	DecompMap DecompMap
}

// Compile converts all user dictionary files. Files that cannot be read are
// reported and skipped. It is an error if no entries were found.
func Compile(paths []string, opts *Options) (*Result, error) {
	c, err := NewCompiler(opts)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		if _, err := c.ConvertFile(path); err != nil {
			tracer().Errorf("ignoring user dictionary %s: %v", path, err)
		}
	}
	if c.Count() == 0 {
		return nil, ErrEmpty
	}
	return &Result{
		CSV:       c.CSV(),
		Count:     c.Count(),
		DecompMap: c.DecompMap(),
	}, nil
}
