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
	"unicode"
)

// TrailingWhitespace removes trailing whitespace from every line. Interior
// whitespace is preserved exactly.
type TrailingWhitespace struct{}

// EditLine implements Handler.
func (TrailingWhitespace) EditLine(ctx context.Context, line string, number int) (string, bool, error) {
	return strings.TrimRightFunc(line, unicode.IsSpace), true, nil
}

// Flush implements Handler.
func (TrailingWhitespace) Flush(ctx context.Context) (string, bool, error) {
	return "", false, nil
}
