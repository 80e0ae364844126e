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
	"bytes"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing"

	"github.com/ianlewis/go-jma/internal/tracelog"
)

// SyncBuffer is a bytes.Buffer safe for concurrent use.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// CaptureTrace routes all tracing to the returned buffer until the test
// ends. Tracing is global so tests using it must not be parallel.
func CaptureTrace(t *testing.T) *SyncBuffer {
	t.Helper()

	var buf SyncBuffer
	tracelog.Install(&buf, tracing.LevelDebug)
	t.Cleanup(tracelog.Uninstall)
	return &buf
}
