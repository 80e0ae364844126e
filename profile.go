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

package jma

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-jma/ctype"
)

// ErrProfile indicates that a profile is invalid.
var ErrProfile = fmt.Errorf("%w: invalid profile", ErrKnowledge)

// Profile describes the dictionaries of a Knowledge in YAML.
//
//	encoding: UTF-8
//	system-dict: dict/ipadic
//	user-dicts:
//	  - user/names.txt
//	stop-words:
//	  - stopwords.txt
//	sentence-separators: separators.txt
//	separator-charset: UTF-8
//	keyword-pos: [0, 1, 2]
type Profile struct {
	Encoding           string   `yaml:"encoding"`
	SystemDict         string   `yaml:"system-dict"`
	UserDicts          []string `yaml:"user-dicts"`
	StopWords          []string `yaml:"stop-words"`
	SentenceSeparators string   `yaml:"sentence-separators"`
	SeparatorCharset   string   `yaml:"separator-charset"`
	KeywordPOS         []int    `yaml:"keyword-pos"`

	// Dir is the directory relative paths are resolved against.
	Dir string `yaml:"-"`
}

// LoadProfile reads a profile from r. Unknown fields are an error.
func LoadProfile(r io.Reader) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrProfile, err)
	}
	return &p, nil
}

// LoadProfileFile reads the profile at path. Relative paths in the profile
// are resolved against the directory of path.
func LoadProfileFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfile, err)
	}
	defer f.Close()

	p, err := LoadProfile(f)
	if err != nil {
		return nil, err
	}
	p.Dir = filepath.Dir(path)
	return p, nil
}

func (p *Profile) path(name string) string {
	if name == "" || filepath.IsAbs(name) || p.Dir == "" {
		return name
	}
	return filepath.Join(p.Dir, name)
}

// Apply configures k with the profile. Dictionaries are not loaded.
func (p *Profile) Apply(k *Knowledge) error {
	if p.Encoding != "" {
		enc, err := ctype.ParseEncoding(p.Encoding)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrProfile, err)
		}
		k.SetEncoding(enc)
	}

	if p.SystemDict != "" {
		k.SetSystemDict(p.path(p.SystemDict))
	}
	for _, u := range p.UserDicts {
		k.AddUserDict(p.path(u))
	}

	for _, s := range p.StopWords {
		if err := k.LoadStopWordDict(p.path(s)); err != nil {
			return err
		}
	}

	if p.SentenceSeparators != "" {
		src := k.Encoding()
		if p.SeparatorCharset != "" {
			var err error
			src, err = ctype.ParseEncoding(p.SeparatorCharset)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrProfile, err)
			}
		}
		if err := k.LoadSentenceSeparatorConfig(p.path(p.SentenceSeparators), src); err != nil {
			return err
		}
	}

	if len(p.KeywordPOS) > 0 {
		k.SetKeywordPOS(p.KeywordPOS...)
	}
	return nil
}
