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

package ctype

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding indicates an encoding name could not be recognized.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Encoding is a character encoding of dictionary text.
type Encoding int

const (
	// EUCJP is the EUC-JP encoding.
	EUCJP Encoding = iota

	// ShiftJIS is the Shift-JIS encoding.
	ShiftJIS

	// UTF8 is the UTF-8 encoding.
	UTF8
)

var encodingNames = map[Encoding]string{
	EUCJP:    "EUC-JP",
	ShiftJIS: "SHIFT-JIS",
	UTF8:     "UTF-8",
}

// String returns the canonical label of the encoding. This label is also the
// one handed to the external dictionary compiler.
func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// ParseEncoding returns the Encoding for the given label. Labels are matched
// case-insensitively.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euc-jp", "eucjp", "euc_jp":
		return EUCJP, nil
	case "shift-jis", "shiftjis", "shift_jis", "sjis":
		return ShiftJIS, nil
	case "utf-8", "utf8":
		return UTF8, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// MarshalText implements [encoding.TextMarshaler].
func (e Encoding) MarshalText() ([]byte, error) {
	if _, ok := encodingNames[e]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEncoding, int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Encoding) UnmarshalText(text []byte) error {
	enc, err := ParseEncoding(string(text))
	if err != nil {
		return err
	}
	*e = enc
	return nil
}

func (e Encoding) charset() encoding.Encoding {
	switch e {
	case EUCJP:
		return japanese.EUCJP
	case ShiftJIS:
		return japanese.ShiftJIS
	default:
		return unicode.UTF8
	}
}

// Transcode converts text from one encoding to another. Text that cannot be
// represented in the destination encoding is an error.
func Transcode(b []byte, from, to Encoding) ([]byte, error) {
	if from == to {
		return b, nil
	}
	t := transform.Chain(from.charset().NewDecoder(), to.charset().NewEncoder())
	out, _, err := transform.Bytes(t, b)
	if err != nil {
		return nil, fmt.Errorf("converting from %v to %v: %w", from, to, err)
	}
	return out, nil
}

// TranscodeString is like Transcode but for strings.
func TranscodeString(s string, from, to Encoding) (string, error) {
	b, err := Transcode([]byte(s), from, to)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
