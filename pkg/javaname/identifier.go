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

package javaname

import (
	"unicode"

	"gitlab.com/tozd/go/errors"
)

// NormalizationMode selects the identifier convention Normalize produces.
type NormalizationMode int

const (
	// CamelCase produces an upper camel case identifier ("TestTest").
	CamelCase NormalizationMode = iota
	// LowerCase produces lower case words separated by underscores
	// ("test_test").
	LowerCase
	// UpperCase produces upper case words separated by underscores
	// ("TEST_TEST").
	UpperCase
	// ConstantName produces an identifier following the Java constant name
	// convention. Equivalent to UpperCase.
	ConstantName
	// VariableName produces a lower camel case identifier ("testTest").
	VariableName
	// MethodName produces an identifier following the Java method name
	// convention. Equivalent to VariableName.
	MethodName
)

func (m NormalizationMode) String() string {
	switch m {
	case CamelCase:
		return "camel-case"
	case LowerCase:
		return "lower-case"
	case UpperCase:
		return "upper-case"
	case ConstantName:
		return "constant-name"
	case VariableName:
		return "variable-name"
	case MethodName:
		return "method-name"
	default:
		return "unknown"
	}
}

// Parse validates text as a Java identifier without transforming it.
func Parse(text string) (string, error) {
	return parseIdentifier(text, nil)
}

// Normalize produces a valid Java identifier from arbitrary text according
// to mode. Characters that cannot occur in an identifier separate words;
// camel case runs inside a single word are retained. A result colliding
// with a keyword or literal is prefixed with an underscore.
func Normalize(text string, mode NormalizationMode) (string, error) {
	return parseIdentifier(text, &mode)
}

// isWordSeparator reports whether a codepoint terminates the current word.
// With a normalization mode only letters and digits count as word
// characters; plain validation accepts everything legal in an identifier.
func isWordSeparator(r rune, mode *NormalizationMode, first bool) bool {
	legal := isIdentifierPart(r)
	if first {
		legal = isIdentifierStart(r)
	}
	if mode != nil {
		legal = legal && (unicode.IsLetter(r) || unicode.IsDigit(r))
	}
	return !legal
}

// isCamelCase reports a lower-upper-lower run, the shape retained inside
// words.
func isCamelCase(left, middle, right rune) bool {
	return unicode.IsLower(left) && unicode.IsUpper(middle) && unicode.IsLower(right)
}

func parseIdentifier(text string, mode *NormalizationMode) (string, error) {
	if len(text) == 0 {
		return "", errors.Errorf("empty string")
	}

	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	var retained []int
	startOfWord := true
	words := 0
	last := rune(-1)

	for i, r := range runes {
		next := rune(-1)
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		if isWordSeparator(r, mode, len(out) == 0) {
			if mode == nil {
				return "", errors.Errorf("invalid character %q at index %d in %q", r, i, text)
			}
			if !startOfWord {
				startOfWord = true
				words++
			}
			continue
		}

		if mode == nil {
			out = append(out, r)
		} else {
			switch *mode {
			case CamelCase:
				switch {
				case startOfWord:
					out = append(out, unicode.ToUpper(r))
				case last > -1 && next > -1 && isCamelCase(last, r, next):
					out = append(out, r)
					retained = append(retained, len(out)-1)
				default:
					out = append(out, unicode.ToLower(r))
				}
			case LowerCase:
				if startOfWord && last > -1 && last != '_' {
					out = append(out, '_')
				}
				out = append(out, unicode.ToLower(r))
			case UpperCase, ConstantName:
				if startOfWord && last > -1 && last != '_' {
					out = append(out, '_')
				}
				out = append(out, unicode.ToUpper(r))
			case VariableName, MethodName:
				switch {
				case startOfWord && words == 0:
					out = append(out, unicode.ToLower(r))
				case startOfWord:
					out = append(out, unicode.ToUpper(r))
				case last > -1 && next > -1 && isCamelCase(last, r, next):
					out = append(out, r)
					retained = append(retained, len(out)-1)
				default:
					out = append(out, unicode.ToLower(r))
				}
			}
		}

		last = out[len(out)-1]
		startOfWord = false
	}

	if words > 0 {
		// Camel case is only retained inside single-word input.
		for _, idx := range retained {
			out[idx] = unicode.ToLower(out[idx])
		}
	}

	identifier := string(out)
	if len(identifier) == 0 {
		return "", errors.Errorf("no valid identifier characters in %q", text)
	}

	if isReservedWord(identifier) {
		if mode == nil {
			return "", errors.Errorf("reserved word %q in %q", identifier, text)
		}
		identifier = "_" + identifier
	}

	return identifier, nil
}
