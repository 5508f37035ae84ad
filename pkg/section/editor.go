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

// Package section parses text containing nestable section markers into a
// tree, lets a caller rewrite the content of each section, and re-serializes
// the tree while preserving everything around the markers byte for byte.
//
// A section starts with a line containing "SECTION-START[name]" and ends
// with a line containing "SECTION-END". Sections nest; free text between two
// sibling sections is kept at its original position.
package section

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/sected/pkg/lineedit"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// Default marker vocabulary.
const (
	DefaultStartMarker = "SECTION-START["
	DefaultEndMarker   = "SECTION-END"
)

// StartDetector reports whether a line opens a section and, if so, its
// name. It returns an error for a malformed marker.
type StartDetector func(line string) (name string, ok bool, err error)

// EndDetector reports whether a line closes a section.
type EndDetector func(line string) bool

// EditFunc is invoked once per section during the edit phase. It may
// rewrite the section's head and tail content but must not alter names,
// marker lines or children. Under a parallel traversal it is called
// concurrently for distinct sections.
type EditFunc func(ctx context.Context, s *Section) error

// Options configures an Editor.
type Options struct {
	// Separator joins rendered lines. Defaults to lineedit.DefaultSeparator.
	Separator string
	// OnSection is an optional edit callback, run for every section after a
	// successful parse.
	OnSection EditFunc
	// Workers sets the number of concurrent edit callbacks. Zero or one
	// runs the traversal sequentially.
	Workers int
	// DetectStart and DetectEnd override the marker vocabulary. Defaults
	// recognize DefaultStartMarker and DefaultEndMarker.
	DetectStart StartDetector
	DetectEnd   EndDetector
}

// Editor is a section-aware line editor. It implements lineedit.Handler:
// lines go in one at a time, nothing comes out until Flush, which runs the
// edit traversal and returns the re-rendered text.
//
// An Editor is reusable across independent edit cycles but must not be fed
// two texts concurrently.
type Editor struct {
	separator   string
	onSection   EditFunc
	workers     int
	detectStart StartDetector
	detectEnd   EndDetector

	stack    []*Section
	lastLine int
	presence sync.Map
}

// NewEditor creates a new section Editor.
func NewEditor(opts Options) *Editor {
	sep := opts.Separator
	if sep == "" {
		sep = lineedit.DefaultSeparator
	}
	e := &Editor{
		separator:   sep,
		onSection:   opts.OnSection,
		workers:     opts.Workers,
		detectStart: opts.DetectStart,
		detectEnd:   opts.DetectEnd,
	}
	if e.detectStart == nil {
		e.detectStart = DetectDefaultStart
	}
	if e.detectEnd == nil {
		e.detectEnd = DetectDefaultEnd
	}
	return e
}

// DetectDefaultStart recognizes the default start marker. The name is the
// text between "SECTION-START[" and the next "]" on the same line; a "["
// without a closing "]" is a malformed marker.
func DetectDefaultStart(line string) (string, bool, error) {
	return StartDetectorFor(DefaultStartMarker)(line)
}

// DetectDefaultEnd recognizes the default end marker.
func DetectDefaultEnd(line string) bool {
	return strings.Contains(line, DefaultEndMarker)
}

// StartDetectorFor returns a StartDetector for a custom start marker. The
// name is still delimited by a "]" following the marker.
func StartDetectorFor(marker string) StartDetector {
	return func(line string) (string, bool, error) {
		idx := strings.Index(line, marker)
		if idx < 0 {
			return "", false, nil
		}
		start := idx + len(marker)
		end := strings.Index(line[start:], "]")
		if end < 0 {
			return "", false, errors.Errorf("start marker is missing a closing %q", "]")
		}
		return line[start : start+end], true, nil
	}
}

// EndDetectorFor returns an EndDetector for a custom end marker.
func EndDetectorFor(marker string) EndDetector {
	return func(line string) bool {
		return strings.Contains(line, marker)
	}
}

// Edit runs a full parse/edit/render cycle over text using the line feed
// protocol. It is a convenience over wiring the editor into a
// lineedit.Editor by hand.
func (e *Editor) Edit(ctx context.Context, text string) (string, error) {
	driver, err := lineedit.New(lineedit.Options{Handler: e, Separator: e.separator})
	if err != nil {
		return "", err
	}
	out, _, err := driver.Edit(ctx, text)
	return out, err
}

// EditLine implements lineedit.Handler. It never produces output; the whole
// replacement text is returned by Flush.
func (e *Editor) EditLine(ctx context.Context, line string, number int) (string, bool, error) {
	if e.stack == nil {
		root := &Section{mode: modeHead, anonymous: true}
		e.stack = []*Section{root}
	}
	e.lastLine = number
	current := e.stack[len(e.stack)-1]

	name, ok, err := e.detectStart(line)
	if err != nil {
		e.stack = nil
		return "", false, errors.Errorf("malformed section marker %q at line %d: %w", line, number, err)
	}

	switch {
	case ok:
		child := &Section{
			Name:         name,
			StartingLine: line,
			mode:         modeHead,
		}

		// Free text after a previous sibling would lose its position if it
		// stayed in the current tail. Move it into an anonymous wrapper
		// that becomes the new sibling's parent.
		if current.mode == modeTail && current.tail.Len() > 0 {
			wrapper := &Section{mode: modeTail, anonymous: true}
			wrapper.head.WriteString(current.tail.String())
			current.tail.Reset()
			current.Children = append(current.Children, wrapper)
			e.stack = append(e.stack, wrapper)
			current = wrapper
		}

		current.Children = append(current.Children, child)
		current.mode = modeTail
		e.stack = append(e.stack, child)

	case e.detectEnd(line):
		closed := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		closed.EndingLine = line

		if len(e.stack) == 0 {
			e.stack = nil
			return "", false, errors.Errorf("unexpected end of section at line %d: no section is open", number)
		}

		// A wrapper exists for exactly one child; once that child closes,
		// so does the wrapper. The root is anonymous too and stays. A user
		// section with an empty name is not a wrapper and keeps waiting for
		// its own end marker.
		if e.stack[len(e.stack)-1].anonymous && len(e.stack) > 1 {
			e.stack = e.stack[:len(e.stack)-1]
		}

	default:
		switch current.mode {
		case modeHead:
			current.head.WriteString(line)
			current.head.WriteString(e.separator)
		case modeTail:
			current.tail.WriteString(line)
			current.tail.WriteString(e.separator)
		}
	}

	return "", false, nil
}

// Flush implements lineedit.Handler. It verifies that every section was
// closed, runs the edit traversal and renders the tree.
func (e *Editor) Flush(ctx context.Context) (string, bool, error) {
	if e.stack == nil {
		// No lines were fed at all.
		return "", false, nil
	}

	root := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]

	if len(e.stack) > 0 {
		name := root.Name
		if root.anonymous {
			name = "/"
		}
		e.stack = nil
		return "", false, errors.Errorf("unexpected end of input at line %d: section %q is still open", e.lastLine, name)
	}
	e.stack = nil

	out, err := e.output(ctx, root)
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}

// IsSectionPresent reports whether a section named name was encountered
// during the most recent completed edit cycle. The empty name matches a
// section opened by a start marker with nothing between its brackets, never
// the root or a wrapper.
func (e *Editor) IsSectionPresent(name string) bool {
	present, ok := e.presence.Load(name)
	return ok && present.(bool)
}

// output edits every section of the tree and renders the result.
func (e *Editor) output(ctx context.Context, root *Section) (string, error) {
	e.presence.Clear()

	sections := collect(root, nil)
	zerolog.Ctx(ctx).Trace().Int("sections", len(sections)).Msg("editing section tree")

	if err := e.editAll(ctx, sections); err != nil {
		return "", err
	}

	var buf strings.Builder
	buf.Grow(512)
	e.render(root, &buf)
	return buf.String(), nil
}

// collect flattens the tree pre-order.
func collect(s *Section, into []*Section) []*Section {
	into = append(into, s)
	for _, child := range s.Children {
		into = collect(child, into)
	}
	return into
}

// editAll runs the edit callback for every section, in parallel when the
// editor was configured with more than one worker. The join is a hard
// barrier; rendering never starts before every callback finished. The first
// callback error is returned as-is.
func (e *Editor) editAll(ctx context.Context, sections []*Section) error {
	if e.workers > 1 && len(sections) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.workers)
		for _, s := range sections {
			g.Go(func() error {
				return e.editSection(gctx, s)
			})
		}
		return g.Wait()
	}

	for _, s := range sections {
		if err := e.editSection(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// editSection records presence of user-delimited sections and invokes the
// caller's callback.
func (e *Editor) editSection(ctx context.Context, s *Section) error {
	if !s.anonymous {
		e.presence.Store(s.Name, true)
	}
	if e.onSection != nil {
		return e.onSection(ctx, s)
	}
	return nil
}
