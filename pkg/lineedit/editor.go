// Copyright 2025 walteh LLC
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

// Package lineedit implements the line feed protocol shared by all editors:
// input text is split into lines, every line is handed to a Handler in
// document order, and the replacements the handler returns are joined back
// together with the configured line separator.
package lineedit

import (
	"bufio"
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultSeparator is used when no separator is configured.
const DefaultSeparator = "\n"

// maxLineSize bounds the scanner buffer for pathological inputs.
const maxLineSize = 4 * 1024 * 1024

// Handler receives lines from an Editor. EditLine is called once per input
// line with its 1-based number; returning ok=false drops the line from the
// output. Flush is called exactly once after the last line and may return a
// final replacement, appended without a trailing separator.
type Handler interface {
	EditLine(ctx context.Context, line string, number int) (string, bool, error)
	Flush(ctx context.Context) (string, bool, error)
}

// Options configures an Editor.
type Options struct {
	// Handler receives every line. Required.
	Handler Handler
	// Separator joins replacement lines. Defaults to DefaultSeparator.
	Separator string
	// Chain is an optional editor to run over this editor's output.
	Chain *Editor
}

// Editor drives a Handler over a text, line by line.
type Editor struct {
	handler    Handler
	separator  string
	chain      *Editor
	lineNumber int
}

// New creates a new Editor.
func New(opts Options) (*Editor, error) {
	if opts.Handler == nil {
		return nil, errors.Errorf("handler is required")
	}
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	return &Editor{
		handler:   opts.Handler,
		separator: sep,
		chain:     opts.Chain,
	}, nil
}

// Separator returns the line separator of the editor.
func (e *Editor) Separator() string {
	return e.separator
}

// LineNumber returns the 1-based number of the last line fed to the handler
// during the most recent Edit call.
func (e *Editor) LineNumber() int {
	return e.lineNumber
}

// Edit splits text into lines, feeds each to the handler in order and joins
// the replacements. The second return value reports whether any handler call
// produced output; callers get ("", false, nil) for a handler that swallowed
// the entire input. Line terminators are normalized to the configured
// separator.
func (e *Editor) Edit(ctx context.Context, text string) (string, bool, error) {
	zerolog.Ctx(ctx).Trace().Int("bytes", len(text)).Msg("editing text")

	e.lineNumber = 0

	var buf strings.Builder
	buf.Grow(len(text) + 16)
	appended := false

	if len(text) > 0 {
		scanner := bufio.NewScanner(strings.NewReader(text))
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
		for scanner.Scan() {
			e.lineNumber++
			replacement, ok, err := e.handler.EditLine(ctx, scanner.Text(), e.lineNumber)
			if err != nil {
				return "", false, err
			}
			if ok {
				buf.WriteString(replacement)
				buf.WriteString(e.separator)
				appended = true
			}
		}
		if err := scanner.Err(); err != nil {
			return "", false, errors.Errorf("splitting text into lines: %w", err)
		}
	} else {
		// An empty text is still one (empty) line.
		e.lineNumber++
		replacement, ok, err := e.handler.EditLine(ctx, "", e.lineNumber)
		if err != nil {
			return "", false, err
		}
		if ok {
			buf.WriteString(replacement)
			buf.WriteString(e.separator)
			appended = true
		}
	}

	replacement, ok, err := e.handler.Flush(ctx)
	if err != nil {
		return "", false, err
	}
	if ok {
		buf.WriteString(replacement)
		appended = true
	}

	if !appended {
		return "", false, nil
	}

	out := buf.String()
	if e.chain != nil {
		return e.chain.Edit(ctx, out)
	}
	return out, true, nil
}

// PassThrough returns every line unchanged.
type PassThrough struct{}

// EditLine implements Handler.
func (PassThrough) EditLine(ctx context.Context, line string, number int) (string, bool, error) {
	return line, true, nil
}

// Flush implements Handler.
func (PassThrough) Flush(ctx context.Context) (string, bool, error) {
	return "", false, nil
}
