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
	"fmt"

	"github.com/ianlewis/go-jma/conf"
	"github.com/ianlewis/go-jma/ctype"
	"github.com/ianlewis/go-jma/engine"
	"github.com/ianlewis/go-jma/userdic"
)

// Resource file names.
const (
	// ArchiveFile is the system dictionary archive.
	ArchiveFile = "sys.bin"

	// ConfigFile is the dictionary configuration.
	ConfigFile = "dicrc"

	// POSFile is the POS table.
	POSFile = "pos-id.def"

	// CombineFile holds the POS combination rules. It is read from the
	// system dictionary directory rather than the archive.
	CombineFile = "compound.def"

	// KanaMapFile maps Hiragana to Katakana.
	KanaMapFile = "map-kana.def"

	// WidthMapFile maps half width to full width characters.
	WidthMapFile = "map-width.def"

	// CaseMapFile maps lower case to upper case characters.
	CaseMapFile = "map-case.def"

	// UserBinFile is the staged binary user dictionary.
	UserBinFile = "user.bin"

	// UserCSVFile is the staged text user dictionary.
	UserCSVFile = "user.csv"
)

// ConfigFiles are the text configuration files of a dictionary.
var ConfigFiles = []string{"dicrc", "rewrite.def", "left-id.def", "right-id.def"}

// BinaryFiles are the files produced by the dictionary compiler.
var BinaryFiles = []string{"unk.dic", "char.bin", "sys.dic", "matrix.bin"}

// Settings are the dictionary settings read from the dictionary
// configuration, with defaults for entries that are absent.
type Settings struct {
	// BaseFormOffset is the feature offset of the base form.
	BaseFormOffset int

	// ReadFormOffset is the feature offset of the reading form.
	ReadFormOffset int

	// NormFormOffset is the feature offset of the normalized form.
	NormFormOffset int

	// UserNounPOS is the alphabetical POS label of user defined nouns.
	UserNounPOS string

	// ConfigCharset is the encoding of the text resources in the archive.
	ConfigCharset ctype.Encoding

	// BinaryCharset is the encoding the binary dictionary was compiled
	// into. It is recorded by EncodeSystemDict.
	BinaryCharset ctype.Encoding

	// UserNounCost is the word cost of user defined nouns.
	UserNounCost int
}

// DefaultSettings are the settings used for entries absent from the
// dictionary configuration.
var DefaultSettings = Settings{
	BaseFormOffset: 6,
	ReadFormOffset: 7,
	NormFormOffset: 9,
	UserNounPOS:    "N-USER",
	ConfigCharset:  ctype.EUCJP,
	BinaryCharset:  ctype.EUCJP,
	UserNounCost:   userdic.DefaultCost,
}

// Dictionary configuration keys.
const (
	baseFormKey      = "base-form-feature-offset"
	readFormKey      = "read-form-feature-offset"
	normFormKey      = "norm-form-feature-offset"
	userNounPOSKey   = "user-noun-pos"
	configCharsetKey = "config-charset"
	binaryCharsetKey = "binary-charset"
)

// ParseSettings returns def updated with the entries of the dictionary
// configuration c. An offset that is not an integer is an error. An unknown
// charset is logged and the default is kept.
func ParseSettings(c *conf.Config, def Settings) (Settings, error) {
	s := def
	for _, o := range []struct {
		key string
		v   *int
	}{
		{baseFormKey, &s.BaseFormOffset},
		{readFormKey, &s.ReadFormOffset},
		{normFormKey, &s.NormFormOffset},
	} {
		var err error
		if *o.v, err = c.Int(o.key, *o.v); err != nil {
			return def, fmt.Errorf("loading %s: %w", ConfigFile, err)
		}
	}
	if v, ok := c.Lookup(userNounPOSKey); ok {
		s.UserNounPOS = v
	}
	for _, o := range []struct {
		key string
		v   *ctype.Encoding
	}{
		{configCharsetKey, &s.ConfigCharset},
		{binaryCharsetKey, &s.BinaryCharset},
	} {
		v, ok := c.Lookup(o.key)
		if !ok {
			continue
		}
		enc, err := ctype.ParseEncoding(v)
		if err != nil {
			tracer().Infof("unknown %s %q, using %s", o.key, v, *o.v)
			continue
		}
		*o.v = enc
	}
	return s, nil
}

// Options are options for Knowledge.
type Options struct {
	// Encoding is the initial encoding of analyzed text.
	Encoding ctype.Encoding

	// Engine is the analysis engine. An engine.Exec with default options is
	// used if nil.
	Engine engine.Engine

	// Settings are the default dictionary settings. DefaultSettings are used
	// if nil.
	Settings *Settings
}

// DefaultOptions are the default options for Knowledge.
var DefaultOptions = &Options{
	Encoding: ctype.EUCJP,
}
