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

package lineedit

import (
	"context"
	"strings"
)

// Replacement is a literal string substitution.
type Replacement struct {
	Old string
	New string
}

// Replacer applies literal replacements to every line, in order. Matches
// never span lines.
type Replacer struct {
	replacements []Replacement
}

// NewReplacer creates a Replacer. Replacements with an empty Old string are
// ignored.
func NewReplacer(replacements []Replacement) *Replacer {
	kept := make([]Replacement, 0, len(replacements))
	for _, r := range replacements {
		if r.Old != "" {
			kept = append(kept, r)
		}
	}
	return &Replacer{replacements: kept}
}

// EditLine implements Handler.
func (r *Replacer) EditLine(ctx context.Context, line string, number int) (string, bool, error) {
	for _, repl := range r.replacements {
		line = strings.ReplaceAll(line, repl.Old, repl.New)
	}
	return line, true, nil
}

// Flush implements Handler.
func (r *Replacer) Flush(ctx context.Context) (string, bool, error) {
	return "", false, nil
}
