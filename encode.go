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
	"io"
	"os"
	"path/filepath"

	"github.com/ianlewis/go-jma/archive"
	"github.com/ianlewis/go-jma/conf"
	"github.com/ianlewis/go-jma/ctype"
)

// ErrNotDir indicates that a dictionary path is not a directory.
var ErrNotDir = fmt.Errorf("%w: not a directory", ErrKnowledge)

// EncodeSystemDict compiles the text dictionary in txtDir into a system
// dictionary in binDir. The binary dictionary is compiled into binEnc, which
// is recorded as the "binary-charset" of the archived configuration.
//
// The binary files produced by the engine are packed into the archive with
// the configuration files and removed afterwards. If the engine or the
// archive fails no archive is written, but binary files and the rewritten
// configuration may be left in binDir.
func (k *Knowledge) EncodeSystemDict(txtDir, binDir string, binEnc ctype.Encoding) error {
	for _, dir := range []string{txtDir, binDir} {
		if err := checkDir(dir); err != nil {
			return err
		}
	}

	tracer().Infof("compiling %s into %s as %s", txtDir, binDir, binEnc)
	if err := k.engine.CompileDictionary(txtDir, binDir, binEnc.String()); err != nil {
		return fmt.Errorf("%w: compiling system dictionary: %w", ErrKnowledge, err)
	}

	if err := copyFile(filepath.Join(txtDir, CombineFile), filepath.Join(binDir, CombineFile)); err != nil {
		tracer().Infof("no rules are defined to combine POS: %v", err)
	}

	dicrc := filepath.Join(binDir, ConfigFile)
	if err := fillBinaryCharset(filepath.Join(txtDir, ConfigFile), dicrc, binEnc); err != nil {
		return fmt.Errorf("%w: %w", ErrKnowledge, err)
	}

	var srcFiles []string
	for _, name := range ConfigFiles {
		if name == ConfigFile {
			srcFiles = append(srcFiles, dicrc)
			continue
		}
		srcFiles = append(srcFiles, filepath.Join(txtDir, name))
	}
	for _, name := range []string{POSFile, KanaMapFile, WidthMapFile, CaseMapFile} {
		srcFiles = append(srcFiles, filepath.Join(txtDir, name))
	}
	for _, name := range BinaryFiles {
		srcFiles = append(srcFiles, filepath.Join(binDir, name))
	}

	dest := filepath.Join(binDir, ArchiveFile)
	tracer().Infof("compressing into archive file %s", dest)
	if err := archive.Create(dest, srcFiles); err != nil {
		return fmt.Errorf("%w: %w", ErrKnowledge, err)
	}

	for _, name := range append([]string{ConfigFile}, BinaryFiles...) {
		path := filepath.Join(binDir, name)
		if err := os.Remove(path); err != nil {
			tracer().Errorf("failed to delete temporary file %s: %v", path, err)
		}
	}
	return nil
}

// fillBinaryCharset writes the configuration at src to dest with its
// "binary-charset" set to enc. The configuration must exist.
func fillBinaryCharset(src, dest string, enc ctype.Encoding) (err error) {
	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	c, err := conf.New(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	c.Set(binaryCharsetKey, enc.String())

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	_, err = c.WriteTo(f)
	return err
}

func checkDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKnowledge, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDir, path)
	}
	return nil
}

func copyFile(src, dest string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	_, err = io.Copy(out, in)
	return err
}
