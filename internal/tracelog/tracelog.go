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
// Package tracelog routes the tracing of every package to a Go logger.
package tracelog

import (
	"io"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// selector hands out the same tracer for every key.
type selector struct {
	trace tracing.Trace
}

func (s selector) Select(string) tracing.Trace {
	return s.trace
}

// Install routes all tracing at or above level to w.
func Install(w io.Writer, level tracing.TraceLevel) {
	t := gologadapter.New()
	t.SetOutput(w)
	t.SetTraceLevel(level)
	tracing.SetTraceSelector(selector{trace: t})
}

// Uninstall discards all tracing.
func Uninstall() {
	tracing.SetTraceSelector(nil)
}
