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

package testutil

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ianlewis/go-jma/archive"
	"github.com/ianlewis/go-jma/ctype"
)

// TextFiles are the text resources of a small dictionary, in UTF-8. The
// "dicrc" file is generated by MakeSystemDict and MakeTextDict.
var TextFiles = map[string]string{
	"rewrite.def":  "[unigram rewrite]\n*,*,* $1,$2,$3\n",
	"left-id.def":  "0 BOS/EOS,*,*,*\n1 名詞,一般,*,*\n",
	"right-id.def": "0 BOS/EOS,*,*,*\n1 名詞,一般,*,*\n",
	"pos-id.def": "; POS table\n" +
		"名詞,一般,*,* N-G 0\n" +
		"名詞,固有名詞,人名,姓 NP-S 1\n" +
		"名詞,固有名詞,人名,名 NP-G 2\n" +
		"名詞,固有名詞,人名,一般 NP-H 3\n" +
		"名詞,固有名詞,ユーザ定義,* N-USER 4\n" +
		"記号,句点,*,* S-P 5\n",
	"map-kana.def":  "あ ア\nい イ\n",
	"map-width.def": "ｱ ア\nＡ A\n",
	"map-case.def":  "a A\nb B\n",
	"compound.def":  "NP-H NP-S NP-G\n",
}

// BinaryFiles are the binary resources produced by the dictionary compiler.
var BinaryFiles = map[string][]byte{
	"unk.dic":    []byte("unk"),
	"char.bin":   []byte("char"),
	"sys.dic":    []byte("sys"),
	"matrix.bin": []byte("matrix"),
}

// DictOptions are options for creating test dictionaries.
type DictOptions struct {
	// Encoding is the encoding of the text resources, also declared as the
	// "config-charset" in "dicrc". Nil options use UTF-8.
	Encoding ctype.Encoding

	// Dicrc is the contents of "dicrc", in addition to "config-charset".
	Dicrc string

	// Omit are the names of resources to leave out.
	Omit []string
}

func (o *DictOptions) omitted(name string) bool {
	return o != nil && slices.Contains(o.Omit, name)
}

func (o *DictOptions) encoding() ctype.Encoding {
	if o == nil {
		return ctype.UTF8
	}
	return o.Encoding
}

// textFiles returns the text resources encoded as requested.
func textFiles(t *testing.T, opts *DictOptions) map[string][]byte {
	t.Helper()

	files := map[string][]byte{}
	if !opts.omitted("dicrc") {
		dicrc := "; test dictionary\nconfig-charset = " + opts.encoding().String() + "\n"
		if opts != nil {
			dicrc += opts.Dicrc
		}
		files["dicrc"] = []byte(dicrc)
	}
	for name, data := range TextFiles {
		if opts.omitted(name) {
			continue
		}
		b, err := ctype.Transcode([]byte(data), ctype.UTF8, opts.encoding())
		if err != nil {
			t.Fatalf("Transcode(%q): %v", name, err)
		}
		files[name] = b
	}
	return files
}

// WriteFile writes data to name in dir and returns its path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// MakeTextDict creates a temporary text dictionary directory.
func MakeTextDict(t *testing.T, opts *DictOptions) string {
	t.Helper()

	dir := t.TempDir()
	for name, data := range textFiles(t, opts) {
		WriteFile(t, dir, name, data)
	}
	return dir
}

// MakeSystemDict creates a temporary compiled system dictionary directory
// holding the "sys.bin" archive and "compound.def".
func MakeSystemDict(t *testing.T, opts *DictOptions) string {
	t.Helper()

	dir := t.TempDir()
	text := textFiles(t, opts)

	var files []archive.File
	for _, name := range []string{
		"dicrc", "rewrite.def", "left-id.def", "right-id.def", "pos-id.def",
		"map-kana.def", "map-width.def", "map-case.def",
	} {
		if data, ok := text[name]; ok {
			files = append(files, archive.File{Name: name, Data: data})
		}
	}
	for _, name := range []string{"unk.dic", "char.bin", "sys.dic", "matrix.bin"} {
		if !opts.omitted(name) {
			files = append(files, archive.File{Name: name, Data: BinaryFiles[name]})
		}
	}

	f, err := os.Create(filepath.Join(dir, "sys.bin"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := archive.Write(f, files); err != nil {
		t.Fatal(err)
	}

	if data, ok := text["compound.def"]; ok {
		WriteFile(t, dir, "compound.def", data)
	}
	return dir
}

// Encode converts a UTF-8 string to enc.
func Encode(t *testing.T, s string, enc ctype.Encoding) string {
	t.Helper()

	e, err := ctype.TranscodeString(s, ctype.UTF8, enc)
	if err != nil {
		t.Fatal(err)
	}
	return e
}
