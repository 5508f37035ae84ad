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

// render serializes a section tree in document order: starting line, head
// content, children, tail content, ending line. The root has no marker
// lines, so only its content and children are emitted.
func (e *Editor) render(s *Section, buf *strings.Builder) {
	if s.StartingLine != "" {
		buf.WriteString(s.StartingLine)
		buf.WriteString(e.separator)
	}
	buf.WriteString(s.HeadContent())
	for _, child := range s.Children {
		e.render(child, buf)
	}
	buf.WriteString(s.TailContent())
	if s.EndingLine != "" {
		buf.WriteString(s.EndingLine)
		buf.WriteString(e.separator)
	}
}

// Render serializes a section tree using the editor's line separator. It is
// exposed for callers that build or inspect trees directly.
func (e *Editor) Render(s *Section) string {
	var buf strings.Builder
	buf.Grow(512)
	e.render(s, &buf)
	return buf.String()
}
