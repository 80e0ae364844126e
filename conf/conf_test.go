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

package conf

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestConfig tests New.
func TestConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		expected map[string]string
		keys     []string
		err      error
	}{
		{
			name: "key value",
			data: `base-form-feature-offset = 6
read-form-feature-offset=7`,
			expected: map[string]string{
				"base-form-feature-offset": "6",
				"read-form-feature-offset": "7",
			},
			keys: []string{"base-form-feature-offset", "read-form-feature-offset"},
		},
		{
			name: "comments and blank lines",
			data: "; comment = ignored\n# another = ignored\n\n\r\nkey=value\r\n",
			expected: map[string]string{
				"key": "value",
			},
			keys: []string{"key"},
		},
		{
			name: "only comments",
			data: "; a\n#b\n",
			expected: map[string]string{},
			keys:     []string{},
		},
		{
			name: "whitespace is trimmed next to '=' only",
			data: "  key \t=\t value with space  ",
			expected: map[string]string{
				"  key": "value with space  ",
			},
			keys: []string{"  key"},
		},
		{
			name: "value with '='",
			data: "cost-factor = a=b",
			expected: map[string]string{
				"cost-factor": "a=b",
			},
			keys: []string{"cost-factor"},
		},
		{
			name: "later duplicate wins",
			data: "key = 1\nkey = 2",
			expected: map[string]string{
				"key": "2",
			},
			keys: []string{"key"},
		},
		{
			name: "missing '='",
			data: "key = value\nno delimiter\n",
			err:  ErrFormat,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(strings.NewReader(test.data))
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("New: want error %v, got: %v", test.err, err)
				}
				if c != nil {
					t.Fatalf("New: expected no config on error, got: %v", c)
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			got := map[string]string{}
			for _, k := range c.Keys() {
				got[k] = c.Value(k)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("entries (-want, +got):\n%s", diff)
			}
			keys := c.Keys()
			if diff := cmp.Diff(test.keys, keys); diff != "" {
				t.Fatalf("Keys (-want, +got):\n%s", diff)
			}
			if want, got := len(test.expected), c.Len(); want != got {
				t.Fatalf("Len; want: %d, got: %d", want, got)
			}
		})
	}
}

// TestConfig_WriteTo tests that a written configuration parses back to the
// same entries.
func TestConfig_WriteTo(t *testing.T) {
	t.Parallel()

	data := "; header\nbase-form-feature-offset = 6\n  user-noun-pos=N-USER\nconfig-charset =EUC-JP  \nempty =\n= no key\n"
	c, err := New(strings.NewReader(data))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	c2, err := New(&buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if diff := cmp.Diff(c.Keys(), c2.Keys()); diff != "" {
		t.Fatalf("Keys (-want, +got):\n%s", diff)
	}
	for _, k := range c.Keys() {
		if want, got := c.Value(k), c2.Value(k); want != got {
			t.Fatalf("Value(%q); want: %q, got: %q", k, want, got)
		}
	}
}

// TestConfig_Int tests Config.Int.
func TestConfig_Int(t *testing.T) {
	t.Parallel()

	c, err := New(strings.NewReader("offset = 8\nbad = x"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got, err := c.Int("offset", 6); err != nil || got != 8 {
		t.Fatalf("Int(offset); want: 8, got: %d, %v", got, err)
	}
	if got, err := c.Int("missing", 6); err != nil || got != 6 {
		t.Fatalf("Int(missing); want: 6, got: %d, %v", got, err)
	}
	if _, err := c.Int("bad", 6); !errors.Is(err, ErrFormat) {
		t.Fatalf("Int(bad); want ErrFormat, got: %v", err)
	}
}
