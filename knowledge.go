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
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ianlewis/go-jma/archive"
	"github.com/ianlewis/go-jma/chartable"
	"github.com/ianlewis/go-jma/conf"
	"github.com/ianlewis/go-jma/ctype"
	"github.com/ianlewis/go-jma/engine"
	"github.com/ianlewis/go-jma/internal/textline"
	"github.com/ianlewis/go-jma/pos"
	"github.com/ianlewis/go-jma/separator"
	"github.com/ianlewis/go-jma/userdic"
)

var (
	// ErrKnowledge is a parent error for all Knowledge errors.
	ErrKnowledge = errors.New("jma")

	// ErrNotReady indicates that dictionaries have not been loaded
	// successfully.
	ErrNotReady = fmt.Errorf("%w: dictionaries not loaded", ErrKnowledge)

	// ErrNoUserNounPOS indicates that the POS of user nouns is missing from
	// the POS table.
	ErrNoUserNounPOS = fmt.Errorf("%w: user noun POS not defined", ErrKnowledge)

	// ErrBinaryCharset indicates that the binary dictionary was compiled
	// into an encoding other than the encoding of analyzed text.
	ErrBinaryCharset = fmt.Errorf("%w: binary dictionary encoding mismatch", ErrKnowledge)
)

// State is the load state of a Knowledge.
type State int

const (
	// Uninitialized means no dictionary has been loaded.
	Uninitialized State = iota

	// ArchiveOpened means the system dictionary archive is open.
	ArchiveOpened

	// ConfigLoaded means the dictionary configuration is loaded.
	ConfigLoaded

	// TablesLoaded means the POS table and character maps are loaded.
	TablesLoaded

	// UserDictCompiled means the user dictionaries are compiled.
	UserDictCompiled

	// Ready means the engine accepted the dictionaries.
	Ready

	// Failed means the last load failed.
	Failed
)

var stateNames = map[State]string{
	Uninitialized:    "Uninitialized",
	ArchiveOpened:    "ArchiveOpened",
	ConfigLoaded:     "ConfigLoaded",
	TablesLoaded:     "TablesLoaded",
	UserDictCompiled: "UserDictCompiled",
	Ready:            "Ready",
	Failed:           "Failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Knowledge holds the dictionary knowledge used by the analyzer. It is not
// safe for concurrent use.
type Knowledge struct {
	enc      ctype.Encoding
	ct       *ctype.CType
	engine   engine.Engine
	defaults Settings
	settings Settings

	sysDir    string
	userDicts []string

	state    State
	arc      *archive.Archive
	posTable *pos.Table
	kana     *chartable.Table
	width    *chartable.Table
	caseMap  *chartable.Table
	decomp   userdic.DecompMap
	userDict []byte

	stopWords  map[string]struct{}
	seps       *separator.Set
	keywordPOS map[int]struct{}
}

// New returns a new Knowledge.
func New(opts *Options) *Knowledge {
	if opts == nil {
		opts = DefaultOptions
	}
	k := &Knowledge{
		enc:        opts.Encoding,
		ct:         ctype.New(opts.Encoding),
		engine:     opts.Engine,
		defaults:   DefaultSettings,
		stopWords:  map[string]struct{}{},
		seps:       separator.New(),
		keywordPOS: map[int]struct{}{},
	}
	if k.engine == nil {
		k.engine = engine.NewExec(nil)
	}
	if opts.Settings != nil {
		k.defaults = *opts.Settings
	}
	k.settings = k.defaults
	return k
}

// SetEncoding sets the encoding of analyzed text and replaces the character
// classifier. Loaded tables keep the encoding they were loaded with until
// the next LoadDict.
func (k *Knowledge) SetEncoding(enc ctype.Encoding) {
	if enc == k.enc {
		return
	}
	k.enc = enc
	k.ct = ctype.New(enc)
}

// Encoding returns the encoding of analyzed text.
func (k *Knowledge) Encoding() ctype.Encoding {
	return k.enc
}

// CType returns the character classifier of the current encoding.
func (k *Knowledge) CType() *ctype.CType {
	return k.ct
}

// SetSystemDict sets the directory of the compiled system dictionary.
func (k *Knowledge) SetSystemDict(dir string) {
	k.sysDir = dir
}

// SystemDict returns the directory of the compiled system dictionary.
func (k *Knowledge) SystemDict() string {
	return k.sysDir
}

// AddUserDict registers a user dictionary file.
func (k *Knowledge) AddUserDict(path string) {
	k.userDicts = append(k.userDicts, path)
}

// UserDicts returns the registered user dictionary files.
func (k *Knowledge) UserDicts() []string {
	return slices.Clone(k.userDicts)
}

// State returns the load state.
func (k *Knowledge) State() State {
	return k.state
}

// LoadDict loads the system dictionary, compiles the user dictionaries and
// checks that the engine accepts them. Every step is rerun when called
// again. On error the state is Failed.
func (k *Knowledge) LoadDict() error {
	k.reset()
	if err := k.loadDict(); err != nil {
		k.state = Failed
		tracer().Errorf("loading dictionary %s: %v", k.sysDir, err)
		return fmt.Errorf("%w: loading dictionary: %w", ErrKnowledge, err)
	}
	return nil
}

func (k *Knowledge) loadDict() error {
	a, err := archive.Open(filepath.Join(k.sysDir, ArchiveFile))
	if err != nil {
		return err
	}
	k.arc = a
	k.state = ArchiveOpened

	if err := k.loadConfig(); err != nil {
		return err
	}
	k.state = ConfigLoaded

	if err := k.loadTables(); err != nil {
		return err
	}
	k.state = TablesLoaded

	if len(k.userDicts) > 0 {
		if err := k.compileUserDicts(); err != nil {
			return err
		}
		k.state = UserDictCompiled
	}

	// Probe the engine with the finished dictionaries.
	h, err := k.engine.NewHandle(k.sysDir, k.arc, k.userDict)
	if err != nil {
		return fmt.Errorf("creating engine handle: %w", err)
	}
	if err := h.Close(); err != nil {
		tracer().Infof("closing engine handle: %v", err)
	}
	k.state = Ready
	return nil
}

// reset discards everything loaded by LoadDict.
func (k *Knowledge) reset() {
	if k.arc != nil {
		if err := k.arc.Close(); err != nil {
			tracer().Infof("%v", err)
		}
	}
	k.arc = nil
	k.settings = k.defaults
	k.posTable = nil
	k.kana = nil
	k.width = nil
	k.caseMap = nil
	k.decomp = nil
	k.userDict = nil
	k.state = Uninitialized
}

// loadConfig reads the settings from the dictionary configuration. Absent
// entries, or an absent configuration, keep their defaults. A binary
// dictionary is assumed to be in the current encoding unless the
// configuration records otherwise.
func (k *Knowledge) loadConfig() error {
	def := k.defaults
	def.BinaryCharset = k.enc
	b, err := k.arc.Resource(ConfigFile)
	switch {
	case errors.Is(err, archive.ErrNotExist):
		tracer().Infof("%s not found, using default settings", ConfigFile)
		k.settings = def
		return nil
	case err != nil:
		return err
	}

	c, err := conf.New(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("loading %s: %w", ConfigFile, err)
	}
	s, err := ParseSettings(c, def)
	if err != nil {
		return err
	}
	if s.BinaryCharset != k.enc {
		return fmt.Errorf("%w: dictionary is %s, text is %s", ErrBinaryCharset, s.BinaryCharset, k.enc)
	}

	tracer().Debugf("settings of %s: %+v", k.sysDir, s)
	k.settings = s
	return nil
}

// textResource returns a text resource of the archive in the current
// encoding.
func (k *Knowledge) textResource(name string) ([]byte, error) {
	b, err := k.arc.Resource(name)
	if err != nil {
		return nil, err
	}
	if k.settings.ConfigCharset == k.enc {
		return b, nil
	}
	b, err = ctype.Transcode(b, k.settings.ConfigCharset, k.enc)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", name, err)
	}
	return b, nil
}

// loadTables loads the POS table, which is required, and the POS
// combination rules and character maps, which are not.
func (k *Knowledge) loadTables() error {
	b, err := k.textResource(POSFile)
	if err != nil {
		return fmt.Errorf("loading POS table: %w", err)
	}
	t, err := pos.New(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("loading POS table: %w", err)
	}
	k.posTable = t

	combinePath := filepath.Join(k.sysDir, CombineFile)
	if f, err := os.Open(combinePath); err != nil {
		tracer().Infof("no POS combination rules: %v", err)
	} else {
		if err := t.LoadCombineRules(f); err != nil {
			tracer().Infof("ignoring %s: %v", combinePath, err)
		}
		_ = f.Close()
	}

	k.kana = k.loadCharTable(KanaMapFile)
	k.width = k.loadCharTable(WidthMapFile)
	k.caseMap = k.loadCharTable(CaseMapFile)
	return nil
}

// loadCharTable loads a character map. An empty map is returned if it cannot
// be loaded.
func (k *Knowledge) loadCharTable(name string) *chartable.Table {
	b, err := k.textResource(name)
	if err != nil {
		tracer().Infof("no mapping from %s: %v", name, err)
		return &chartable.Table{}
	}
	t, err := chartable.New(bytes.NewReader(b))
	if err != nil {
		tracer().Infof("no mapping from %s: %v", name, err)
		return &chartable.Table{}
	}
	return t
}

// compileUserDicts converts the user dictionaries into staged archive
// resources and compiles them with the engine.
func (k *Knowledge) compileUserDicts() error {
	k.arc.StageBinary(UserBinFile)
	k.arc.StageText(UserCSVFile)

	index, ok := k.posTable.Index(k.settings.UserNounPOS)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoUserNounPOS, k.settings.UserNounPOS)
	}
	full, _ := k.posTable.POS(index, pos.FormatFullCategory)

	r, err := userdic.Compile(k.userDicts, &userdic.Options{
		CType:          k.ct,
		POS:            full,
		ReadFormOffset: k.settings.ReadFormOffset,
		Cost:           k.settings.UserNounCost,
	})
	if err != nil {
		return fmt.Errorf("compiling user dictionaries: %w", err)
	}
	tracer().Infof("%d entries in user dictionaries", r.Count)

	if err := k.arc.CopyText(r.CSV, UserCSVFile); err != nil {
		return err
	}
	bin, err := k.engine.CompileUserDictionary(k.arc, r.CSV, k.enc.String())
	if err != nil {
		return fmt.Errorf("compiling user dictionaries: %w", err)
	}
	if err := k.arc.Put(UserBinFile, bin); err != nil {
		return err
	}

	k.userDict = bin
	k.decomp = r.DecompMap
	return nil
}

// NewHandle returns a new engine handle over the loaded dictionaries. It
// fails with ErrNotReady unless the last LoadDict succeeded.
func (k *Knowledge) NewHandle() (engine.Handle, error) {
	if k.state != Ready {
		return nil, fmt.Errorf("%w: state %s", ErrNotReady, k.state)
	}
	h, err := k.engine.NewHandle(k.sysDir, k.arc, k.userDict)
	if err != nil {
		return nil, fmt.Errorf("%w: creating engine handle: %w", ErrKnowledge, err)
	}
	return h, nil
}

// Close releases the loaded dictionaries.
func (k *Knowledge) Close() error {
	var err error
	if k.arc != nil {
		err = k.arc.Close()
		k.arc = nil
	}
	k.reset()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKnowledge, err)
	}
	return nil
}

// LoadStopWordDict adds the words of a stop word file, one per line.
func (k *Knowledge) LoadStopWordDict(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: loading stop words: %w", ErrKnowledge, err)
	}
	defer f.Close()

	s := textline.NewScanner(f, &textline.Options{})
	for s.Scan() {
		k.stopWords[s.Text()] = struct{}{}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("%w: loading stop words: %w", ErrKnowledge, err)
	}
	return nil
}

// IsStopWord returns whether word is a stop word or consists of whitespace
// only.
func (k *Knowledge) IsStopWord(word string) bool {
	if _, ok := k.stopWords[word]; ok {
		return true
	}
	return k.ct.IsSpace(word)
}

// LoadSentenceSeparatorConfig replaces the sentence separators with those of
// the file at path, which is encoded in src.
func (k *Knowledge) LoadSentenceSeparatorConfig(path string, src ctype.Encoding) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: loading sentence separators: %w", ErrKnowledge, err)
	}
	if src != k.enc {
		b, err = ctype.Transcode(b, src, k.enc)
		if err != nil {
			return fmt.Errorf("%w: loading sentence separators: %w", ErrKnowledge, err)
		}
	}
	s, err := separator.Load(bytes.NewReader(b), k.ct)
	if err != nil {
		return fmt.Errorf("%w: loading sentence separators: %w", ErrKnowledge, err)
	}
	k.seps = s
	return nil
}

// IsSentenceSeparator returns whether the first character of p is a sentence
// separator.
func (k *Knowledge) IsSentenceSeparator(p string) bool {
	return k.seps.Contains(p, k.ct)
}

// AddSentenceSeparator adds a sentence separator given as the big-endian
// packing of its bytes.
func (k *Knowledge) AddSentenceSeparator(v uint32) {
	k.seps.Add(v)
}

// SetKeywordPOS replaces the set of keyword POS index codes.
func (k *Knowledge) SetKeywordPOS(indices ...int) {
	k.keywordPOS = make(map[int]struct{}, len(indices))
	for _, i := range indices {
		k.keywordPOS[i] = struct{}{}
	}
}

// IsKeywordPOS returns whether the POS index code is a keyword POS. Every POS
// is a keyword POS if none were set.
func (k *Knowledge) IsKeywordPOS(index int) bool {
	if len(k.keywordPOS) == 0 {
		return true
	}
	_, ok := k.keywordPOS[index]
	return ok
}

// POSTable returns the POS table. It is nil until the tables are loaded.
func (k *Knowledge) POSTable() *pos.Table {
	return k.posTable
}

// KanaTable returns the Hiragana to Katakana map.
func (k *Knowledge) KanaTable() *chartable.Table {
	return k.kana
}

// WidthTable returns the half width to full width map.
func (k *Knowledge) WidthTable() *chartable.Table {
	return k.width
}

// CaseTable returns the lower case to upper case map.
func (k *Knowledge) CaseTable() *chartable.Table {
	return k.caseMap
}

// DecompMap returns the decompositions of user nouns.
func (k *Knowledge) DecompMap() userdic.DecompMap {
	return k.decomp
}

// Settings returns the dictionary settings.
func (k *Knowledge) Settings() Settings {
	return k.settings
}

// BaseFormOffset returns the feature offset of the base form.
func (k *Knowledge) BaseFormOffset() int {
	return k.settings.BaseFormOffset
}

// ReadFormOffset returns the feature offset of the reading form.
func (k *Knowledge) ReadFormOffset() int {
	return k.settings.ReadFormOffset
}

// NormFormOffset returns the feature offset of the normalized form.
func (k *Knowledge) NormFormOffset() int {
	return k.settings.NormFormOffset
}

// UserNounPOSIndex returns the POS index code of user defined nouns.
func (k *Knowledge) UserNounPOSIndex() (int, bool) {
	if k.posTable == nil {
		return 0, false
	}
	return k.posTable.Index(k.settings.UserNounPOS)
}
