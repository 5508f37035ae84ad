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

// Package version compares free-form version strings. Versions are split
// into numeric and word tokens and compared field by field, so inputs like
// "1.0-alpha-2" and "4aug2000r7" order sensibly without conforming to any
// particular versioning scheme.
package version

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenWord
)

type token struct {
	kind  tokenKind
	value string
}

// separators split tokens but do not become tokens themselves.
func isSeparator(r rune) bool {
	return r == '.' || r == '-' || r == '_' || unicode.IsSpace(r)
}

func tokenize(s string) []token {
	var tokens []token
	var buf strings.Builder
	var kind tokenKind

	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, token{kind: kind, value: buf.String()})
			buf.Reset()
		}
	}

	for _, r := range s {
		switch {
		case isSeparator(r):
			flush()
		case unicode.IsDigit(r):
			if buf.Len() > 0 && kind != tokenNumber {
				flush()
			}
			kind = tokenNumber
			buf.WriteRune(r)
		default:
			if buf.Len() > 0 && kind != tokenWord {
				flush()
			}
			kind = tokenWord
			buf.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// compareNumbers compares two digit strings numerically without a size
// limit.
func compareNumbers(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func compareTokens(a, b token) int {
	if a.kind == tokenNumber && b.kind == tokenNumber {
		return compareNumbers(a.value, b.value)
	}
	return strings.Compare(strings.ToLower(a.value), strings.ToLower(b.value))
}

// Compare orders two version strings. It returns a negative value if a is
// older than b, zero if they are equivalent and a positive value if a is
// newer. When one version is a prefix of the other, an extra numeric token
// makes it newer ("1.0.1" > "1.0") while an extra word token makes it older
// ("4aug2000r7-dev" < "4aug2000r7").
func Compare(a, b string) int {
	ta := tokenize(a)
	tb := tokenize(b)

	for i := 0; i < len(ta) && i < len(tb); i++ {
		if c := compareTokens(ta[i], tb[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(ta) > len(tb):
		return extraTokenOrder(ta[len(tb)])
	case len(tb) > len(ta):
		return -extraTokenOrder(tb[len(ta)])
	default:
		return 0
	}
}

func extraTokenOrder(t token) int {
	if t.kind == tokenNumber {
		return 1
	}
	return -1
}
