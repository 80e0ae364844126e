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

package archive

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// entrySuffixSize is the size of the offset and size fields that follow the
// zero terminated name of an index entry.
const entrySuffixSize = 8

// Entry is an archive index entry.
type Entry struct {
	// Name is the resource name.
	Name string

	// Offset is the offset of the resource from the start of the data
	// section.
	Offset uint32

	// Size is the size of the resource in bytes.
	Size uint32
}

// indexScanner scans an archive index from start to end.
type indexScanner struct {
	s *bufio.Scanner
}

func newIndexScanner(r io.Reader) *indexScanner {
	s := &indexScanner{
		s: bufio.NewScanner(r),
	}
	s.s.Split(splitIndex)
	return s
}

// Scan advances to the next index entry.
func (s *indexScanner) Scan() bool {
	return s.s.Scan()
}

// Err returns the first error encountered.
func (s *indexScanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Entry returns the current index entry.
func (s *indexScanner) Entry() (*Entry, error) {
	b := s.s.Bytes()
	i := bytes.IndexByte(b, 0)
	if i < 0 || len(b) != i+1+entrySuffixSize {
		return nil, fmt.Errorf("%w: truncated index entry", ErrFormat)
	}
	return &Entry{
		Name:   string(b[:i]),
		Offset: binary.BigEndian.Uint32(b[i+1:]),
		Size:   binary.BigEndian.Uint32(b[i+5:]),
	}, nil
}

// splitIndex splits an index entry in the index.
func splitIndex(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		// Found zero byte.
		tokenSize := i + 1 + entrySuffixSize
		if len(data) >= tokenSize {
			return tokenSize, data[:tokenSize], nil
		}
	}

	if atEOF {
		return len(data), data, nil
	}

	// Request more data.
	return 0, nil, nil
}

// appendEntry appends the encoding of e to b.
func appendEntry(b []byte, e *Entry) []byte {
	b = append(b, e.Name...)
	b = append(b, 0) // Add the zero byte terminator.
	b = binary.BigEndian.AppendUint32(b, e.Offset)
	b = binary.BigEndian.AppendUint32(b, e.Size)
	return b
}

// makeIndex encodes an index for resources of the given names and sizes laid
// out back to back in the data section.
func makeIndex(names []string, sizes []int) ([]byte, error) {
	var b []byte
	var offset uint64
	for i, name := range names {
		if bytes.IndexByte([]byte(name), 0) >= 0 {
			return nil, fmt.Errorf("%w: resource name contains a zero byte: %q", ErrFormat, name)
		}
		if sizes[i] > math.MaxUint32 || offset+uint64(sizes[i]) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: resource too large: %s", ErrFormat, name)
		}
		b = appendEntry(b, &Entry{
			Name: name,
			//nolint:gosec // bounds checked above.
			Offset: uint32(offset),
			//nolint:gosec // bounds checked above.
			Size: uint32(sizes[i]),
		})
		offset += uint64(sizes[i])
	}
	return b, nil
}
