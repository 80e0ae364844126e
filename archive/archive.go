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

// Package archive implements the system dictionary archive, a single
// dictzip compressed file holding the named text and binary resources of a
// compiled dictionary.
//
// The uncompressed archive starts with a 4 byte magic number and the 32-bit
// big-endian size of the index. The index is a sequence of entries made of a
// zero terminated resource name followed by the 32-bit big-endian offset and
// size of the resource in the data section that follows the index.
//
// Resources can also be staged in memory on an opened archive. Staged
// resources shadow archived resources of the same name and are never written
// back to disk.
package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/ianlewis/go-dictzip"
)

const (
	magic      = "JMA\x01"
	headerSize = len(magic) + 4
)

var (
	// ErrNotExist indicates that a resource is not present in the archive.
	ErrNotExist = errors.New("resource does not exist")

	// ErrFormat indicates that the archive is malformed.
	ErrFormat = errors.New("invalid archive")

	// ErrNotStaged indicates that a resource was written without being
	// staged with the matching kind first.
	ErrNotStaged = errors.New("resource is not staged")
)

// File is a named resource to be written to an archive.
type File struct {
	Name string
	Data []byte
}

type staged struct {
	text bool
	data []byte
}

// Archive is an opened system dictionary archive.
type Archive struct {
	f       *os.File
	z       *dictzip.Reader
	base    int64
	index   map[string]*Entry
	entries []*Entry
	staged  map[string]*staged
}

// Open opens the archive at path.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	a, err := open(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reading archive %q: %w", path, err)
	}
	return a, nil
}

func open(f *os.File) (*Archive, error) {
	z, err := dictzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	hdr := make([]byte, headerSize)
	if err := readAt(z, hdr, 0); err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrFormat, err)
	}
	if string(hdr[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: bad magic number", ErrFormat)
	}
	indexSize := binary.BigEndian.Uint32(hdr[len(magic):])

	b := make([]byte, indexSize)
	if err := readAt(z, b, int64(headerSize)); err != nil {
		return nil, fmt.Errorf("%w: reading index: %w", ErrFormat, err)
	}

	a := &Archive{
		f:      f,
		z:      z,
		base:   int64(headerSize) + int64(indexSize),
		index:  map[string]*Entry{},
		staged: map[string]*staged{},
	}
	s := newIndexScanner(bytes.NewReader(b))
	for s.Scan() {
		e, err := s.Entry()
		if err != nil {
			return nil, err
		}
		if _, ok := a.index[e.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate resource %q", ErrFormat, e.Name)
		}
		a.index[e.Name] = e
		a.entries = append(a.entries, e)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return a, nil
}

// Resource returns the contents of the named resource. Staged resources take
// precedence over archived ones. ErrNotExist is returned if neither exists.
func (a *Archive) Resource(name string) ([]byte, error) {
	if s, ok := a.staged[name]; ok {
		return s.data, nil
	}

	e, ok := a.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	b := make([]byte, e.Size)
	if err := readAt(a.z, b, a.base+int64(e.Offset)); err != nil {
		return nil, fmt.Errorf("reading resource %s: %w", name, err)
	}
	return b, nil
}

// Names returns the names of the archived resources in archive order followed
// by the names of resources that are only staged, sorted.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.entries)+len(a.staged))
	for _, e := range a.entries {
		names = append(names, e.Name)
	}
	var extra []string
	for name := range a.staged {
		if _, ok := a.index[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Entries returns the index of the archive.
func (a *Archive) Entries() []Entry {
	entries := make([]Entry, 0, len(a.entries))
	for _, e := range a.entries {
		entries = append(entries, *e)
	}
	return entries
}

// StageBinary stages an empty binary resource. Any previously staged
// resource of the same name is discarded.
func (a *Archive) StageBinary(name string) {
	a.staged[name] = &staged{}
}

// StageText stages an empty text resource. Any previously staged resource of
// the same name is discarded.
func (a *Archive) StageText(name string) {
	a.staged[name] = &staged{text: true}
}

// CopyText replaces the contents of the staged text resource name with text.
func (a *Archive) CopyText(text []byte, name string) error {
	s, ok := a.staged[name]
	if !ok || !s.text {
		return fmt.Errorf("%w: text resource %s", ErrNotStaged, name)
	}
	s.data = slices.Clone(text)
	return nil
}

// Put replaces the contents of the staged binary resource name with data.
func (a *Archive) Put(name string, data []byte) error {
	s, ok := a.staged[name]
	if !ok || s.text {
		return fmt.Errorf("%w: binary resource %s", ErrNotStaged, name)
	}
	s.data = slices.Clone(data)
	return nil
}

// Close closes the archive and discards all staged resources.
func (a *Archive) Close() error {
	a.staged = map[string]*staged{}
	var errs []error
	if err := a.z.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.f.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// Write writes an archive holding files to w.
func Write(w io.WriteSeeker, files []File) error {
	names := make([]string, 0, len(files))
	sizes := make([]int, 0, len(files))
	seen := map[string]bool{}
	for _, file := range files {
		if seen[file.Name] {
			return fmt.Errorf("%w: duplicate resource %q", ErrFormat, file.Name)
		}
		seen[file.Name] = true
		names = append(names, file.Name)
		sizes = append(sizes, len(file.Data))
	}
	index, err := makeIndex(names, sizes)
	if err != nil {
		return err
	}

	z, err := dictzip.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	hdr := make([]byte, 0, headerSize)
	hdr = append(hdr, magic...)
	//nolint:gosec // index size is bounded by makeIndex.
	hdr = binary.BigEndian.AppendUint32(hdr, uint32(len(index)))
	chunks := [][]byte{hdr, index}
	for _, file := range files {
		chunks = append(chunks, file.Data)
	}
	for _, c := range chunks {
		if _, err := z.Write(c); err != nil {
			_ = z.Close()
			return fmt.Errorf("writing archive: %w", err)
		}
	}
	if err := z.Close(); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	return nil
}

// Create writes an archive at dest holding the files at paths, each named by
// its base name. The archive is written to a temporary file first and renamed
// into place, so dest is never left partially written.
func Create(dest string, paths []string) error {
	files := make([]File, 0, len(paths))
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading archive member: %w", err)
		}
		files = append(files, File{
			Name: filepath.Base(path),
			Data: b,
		})
	}

	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	tmp := f.Name()

	if err := Write(f, files); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("creating archive: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("creating archive: %w", err)
	}
	return nil
}

// readAt reads exactly len(b) bytes at off.
func readAt(r io.ReaderAt, b []byte, off int64) error {
	n, err := r.ReadAt(b, off)
	if n == len(b) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return err
}
