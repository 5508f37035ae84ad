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

package section

import "strings"

// content routing modes used while a section is on the parse stack. A
// section collects lines into its head until its first child is opened,
// and into its tail afterwards. The mode is meaningless once parsing
// completes.
const (
	modeHead = iota
	modeTail
)

// Section is a node of the parse tree. The root and wrapper sections are
// anonymous; every user-delimited section carries the name found in its
// start marker, which may itself be empty. Head and tail buffers may be
// rewritten by edit callbacks; names, marker lines and children must not be.
type Section struct {
	// Name of the section, always empty for the root and for wrapper
	// sections. A start marker with nothing between its brackets opens a
	// user section whose Name is empty too; Anonymous tells the two apart.
	Name string

	// StartingLine and EndingLine hold the literal marker lines that opened
	// and closed the section. Both are empty for the root.
	StartingLine string
	EndingLine   string

	// Children in document order.
	Children []*Section

	head      strings.Builder
	tail      strings.Builder
	mode      int
	anonymous bool
}

// Anonymous reports whether the section is the root or a synthetic wrapper
// rather than a section delimited by markers in the input.
func (s *Section) Anonymous() bool {
	return s.anonymous
}

// HeadContent returns the content preceding the first child.
func (s *Section) HeadContent() string {
	return s.head.String()
}

// TailContent returns the content following the last child.
func (s *Section) TailContent() string {
	return s.tail.String()
}

// AppendHead appends text to the head content.
func (s *Section) AppendHead(text string) {
	s.head.WriteString(text)
}

// AppendTail appends text to the tail content.
func (s *Section) AppendTail(text string) {
	s.tail.WriteString(text)
}

// SetHead replaces the head content.
func (s *Section) SetHead(text string) {
	s.head.Reset()
	s.head.WriteString(text)
}

// SetTail replaces the tail content.
func (s *Section) SetTail(text string) {
	s.tail.Reset()
	s.tail.WriteString(text)
}

// Find returns the first section named name, searching this section first
// and then descending into children in document order. It returns nil if no
// such section exists.
func (s *Section) Find(name string) *Section {
	if !s.anonymous && s.Name == name {
		return s
	}
	for _, child := range s.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
