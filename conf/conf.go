// Copyright 2021 Google LLC
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

// Package conf implements reading dictionary configuration files such as
// "dicrc".
//
// A configuration file holds one "key = value" entry per line. Blank lines
// and lines starting with ';' or '#' are ignored.
package conf

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ianlewis/go-jma/internal/textline"
)

// ErrFormat indicates that a configuration file is malformed.
var ErrFormat = errors.New("configuration format error")

// Config is a parsed configuration file.
type Config struct {
	entries map[string]string

	// keys are in the order they first appeared.
	keys []string
}

// New parses a configuration file from r. A line that is neither blank, a
// comment nor contains '=' fails the whole parse.
func New(r io.Reader) (*Config, error) {
	c := &Config{
		entries: map[string]string{},
	}

	s := textline.NewScanner(r, textline.DefaultOptions)
	for s.Scan() {
		line := s.Text()
		i := strings.IndexByte(line, '=')
		if i < 0 {
			return nil, fmt.Errorf("%w: line %d: missing '=': %q", ErrFormat, s.Line(), line)
		}
		key := strings.TrimRightFunc(line[:i], isSpace)
		value := strings.TrimLeftFunc(line[i+1:], isSpace)
		c.Set(key, value)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

func isSpace(r rune) bool {
	return r < 0x80 && textline.IsSpace(byte(r))
}

// Set sets the value for key.
func (c *Config) Set(key, value string) {
	if c.entries == nil {
		c.entries = map[string]string{}
	}
	if _, ok := c.entries[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = value
}

// Value returns the value for key or an empty string if it is not present.
func (c *Config) Value(key string) string {
	return c.entries[key]
}

// Lookup returns the value for key and whether it is present.
func (c *Config) Lookup(key string) (string, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Int returns the value for key as an integer. def is returned if the key is
// not present. A value that is not an integer is an error.
func (c *Config) Int(key string, def int) (int, error) {
	v, ok := c.entries[key]
	if !ok {
		return def, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("%w: %s: %w", ErrFormat, key, err)
	}
	return i, nil
}

// Keys returns the keys in the order they appeared.
func (c *Config) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Len returns the number of entries.
func (c *Config) Len() int {
	return len(c.keys)
}

// WriteTo writes the configuration in a form that New parses back into the
// same entries.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, k := range c.keys {
		m, err := fmt.Fprintf(w, "%s = %s\n", k, c.entries[k])
		n += int64(m)
		if err != nil {
			return n, fmt.Errorf("writing %q: %w", k, err)
		}
	}
	return n, nil
}
