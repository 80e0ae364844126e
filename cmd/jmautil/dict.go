// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jma "github.com/ianlewis/go-jma"
	"github.com/ianlewis/go-jma/archive"
	"github.com/ianlewis/go-jma/conf"
	"github.com/ianlewis/go-jma/ctype"
	"github.com/ianlewis/go-jma/pos"
)

// sysDict is a system dictionary opened for inspection without an engine.
type sysDict struct {
	a        *archive.Archive
	conf     *conf.Config
	settings jma.Settings
}

func openSysDict(dir string) (*sysDict, error) {
	a, err := archive.Open(filepath.Join(dir, jma.ArchiveFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJmautil, err)
	}
	d := &sysDict{
		a:        a,
		conf:     &conf.Config{},
		settings: jma.DefaultSettings,
	}

	b, err := a.Resource(jma.ConfigFile)
	switch {
	case errors.Is(err, archive.ErrNotExist):
		return d, nil
	case err != nil:
		_ = a.Close()
		return nil, fmt.Errorf("%w: %w", ErrJmautil, err)
	}
	if d.conf, err = conf.New(bytes.NewReader(b)); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrJmautil, jma.ConfigFile, err)
	}
	if d.settings, err = jma.ParseSettings(d.conf, jma.DefaultSettings); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("%w: %w", ErrJmautil, err)
	}
	return d, nil
}

// text returns a text resource converted to enc.
func (d *sysDict) text(name string, enc ctype.Encoding) ([]byte, error) {
	b, err := d.a.Resource(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJmautil, err)
	}
	b, err = ctype.Transcode(b, d.settings.ConfigCharset, enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrJmautil, name, err)
	}
	return b, nil
}

func (d *sysDict) posTable(enc ctype.Encoding) (*pos.Table, error) {
	b, err := d.text(jma.POSFile, enc)
	if err != nil {
		return nil, err
	}
	t, err := pos.New(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJmautil, err)
	}
	return t, nil
}

// loadCombineRules loads the POS combination rules kept next to the archive,
// if there are any.
func loadCombineRules(t *pos.Table, dir string) error {
	f, err := os.Open(filepath.Join(dir, jma.CombineFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", ErrJmautil, err)
	}
	defer f.Close()

	if err := t.LoadCombineRules(f); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrJmautil, jma.CombineFile, err)
	}
	return nil
}

func (d *sysDict) Close() error {
	return d.a.Close()
}
