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
	"strings"
	"unicode"

	"gitlab.com/tozd/go/errors"
)

// classNameEncodings maps primitive type names to their JVM class name
// encoding, used for array class names.
var classNameEncodings = map[string]string{
	"boolean": "Z",
	"byte":    "B",
	"char":    "C",
	"double":  "D",
	"float":   "F",
	"int":     "I",
	"long":    "J",
	"short":   "S",
}

// primitiveBoxes maps primitive type names to their wrapper class names.
var primitiveBoxes = map[string]string{
	"boolean": "java.lang.Boolean",
	"byte":    "java.lang.Byte",
	"char":    "java.lang.Character",
	"double":  "java.lang.Double",
	"float":   "java.lang.Float",
	"int":     "java.lang.Integer",
	"long":    "java.lang.Long",
	"short":   "java.lang.Short",
}

// Argument is a type argument of a generic type name.
type Argument struct {
	// Wildcard is true for "?" arguments.
	Wildcard bool
	// WildcardBounds is "extends" or "super" for bounded wildcards, empty
	// otherwise.
	WildcardBounds string
	// TypeName is the argument's type, nil for an unbounded wildcard.
	TypeName *TypeName
}

func (a Argument) String() string {
	if a.Wildcard {
		if a.WildcardBounds != "" && a.TypeName != nil {
			return "? " + a.WildcardBounds + " " + a.TypeName.String()
		}
		return "?"
	}
	if a.TypeName != nil {
		return a.TypeName.String()
	}
	return ""
}

// TypeName is a parsed Java type name.
type TypeName struct {
	className     string
	qualifiedName string
	simpleName    string
	packageName   string
	dimension     int
	primitive     bool
	arguments     []Argument
}

// ClassName returns the name suitable for Class.forName style lookups,
// e.g. "[[I" or "[Ljava.lang.String;" for arrays.
func (t *TypeName) ClassName() string { return t.className }

// QualifiedName returns the qualified name including array brackets but
// without type arguments, e.g. "java.util.List[]".
func (t *TypeName) QualifiedName() string { return t.qualifiedName }

// SimpleName returns the unqualified name including array brackets.
func (t *TypeName) SimpleName() string { return t.simpleName }

// PackageName returns the package portion of the name, empty for
// unqualified and primitive types.
func (t *TypeName) PackageName() string { return t.packageName }

// IsPrimitive reports whether the type denotes a primitive type.
func (t *TypeName) IsPrimitive() bool { return t.primitive }

// IsArray reports whether the type denotes an array type.
func (t *TypeName) IsArray() bool { return t.dimension > 0 }

// Dimension returns the number of array dimensions.
func (t *TypeName) Dimension() int { return t.dimension }

// Arguments returns the type arguments in declaration order.
func (t *TypeName) Arguments() []Argument { return t.arguments }

// IsBoxable reports whether the type denotes a primitive that has a
// wrapper class.
func (t *TypeName) IsBoxable() bool {
	return t.primitive && t.dimension == 0 && t.className != "void"
}

// BoxedName returns the wrapper type of a boxable primitive type, or nil.
func (t *TypeName) BoxedName() *TypeName {
	if !t.IsBoxable() {
		return nil
	}
	return MustParse(primitiveBoxes[t.className])
}

// IsUnboxable reports whether the type denotes a wrapper class with a
// corresponding primitive type.
func (t *TypeName) IsUnboxable() bool {
	return t.UnboxedName() != nil
}

// UnboxedName returns the primitive type of a wrapper type, or nil.
func (t *TypeName) UnboxedName() *TypeName {
	if t.dimension > 0 || len(t.arguments) > 0 {
		return nil
	}
	for primitive, boxed := range primitiveBoxes {
		if t.qualifiedName == boxed {
			return MustParse(primitive)
		}
	}
	return nil
}

// String returns the canonical form of the type name: qualified name, type
// arguments, then array brackets.
func (t *TypeName) String() string {
	var buf strings.Builder
	buf.WriteString(t.qualifiedName[:len(t.qualifiedName)-t.dimension*2])
	if len(t.arguments) > 0 {
		buf.WriteString("<")
		for i, arg := range t.arguments {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(arg.String())
		}
		buf.WriteString(">")
	}
	buf.WriteString(strings.Repeat("[]", t.dimension))
	return buf.String()
}

// Equal reports whether two type names denote the same type in source
// form, type arguments included.
func (t *TypeName) Equal(o *TypeName) bool {
	return o != nil && t.String() == o.String()
}

// ParseTypeName parses a Java type name: a primitive or qualified class
// name, optional type arguments (including bounded wildcards) and optional
// array brackets.
func ParseTypeName(text string) (*TypeName, error) {
	tokens, err := tokenizeTypeName(text)
	if err != nil {
		return nil, err
	}
	t := &TypeName{}
	if err := parseType(&tokens, t); err != nil {
		return nil, err
	}
	return t, nil
}

// MustParse is like ParseTypeName but panics on invalid input. Use it for
// known-good constants only.
func MustParse(text string) *TypeName {
	t, err := ParseTypeName(text)
	if err != nil {
		panic(err)
	}
	return t
}

type typeTokenKind int

const (
	tkBasicType typeTokenKind = iota
	tkKeyword
	tkLiteral
	tkIdentifier
	tkLBracket
	tkRBracket
	tkLT
	tkGT
	tkComma
	tkDot
	tkQM
)

type typeToken struct {
	kind     typeTokenKind
	position int
	value    string
}

// tokenStream is a cursor over the token list with one-token backtracking.
type tokenStream struct {
	input  string
	tokens []typeToken
	cursor int
}

func (s *tokenStream) next() (typeToken, bool) {
	if s.cursor >= len(s.tokens) {
		return typeToken{}, false
	}
	tok := s.tokens[s.cursor]
	s.cursor++
	return tok, true
}

func (s *tokenStream) back() {
	s.cursor--
}

func (s *tokenStream) errInvalidToken(tok typeToken) error {
	return errors.Errorf("unexpected %q at position %d in %q", tok.value, tok.position, s.input)
}

func (s *tokenStream) errUnexpectedEnd() error {
	return errors.Errorf("unexpected end of input in %q", s.input)
}

func tokenizeTypeName(input string) (tokenStream, error) {
	stream := tokenStream{input: input}
	runes := []rune(input)
	i := 0

	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= len(runes) {
			break
		}

		pos := i
		switch runes[i] {
		case ',':
			stream.tokens = append(stream.tokens, typeToken{tkComma, pos, ","})
			i++
			continue
		case '.':
			stream.tokens = append(stream.tokens, typeToken{tkDot, pos, "."})
			i++
			continue
		case '<':
			stream.tokens = append(stream.tokens, typeToken{tkLT, pos, "<"})
			i++
			continue
		case '>':
			stream.tokens = append(stream.tokens, typeToken{tkGT, pos, ">"})
			i++
			continue
		case '[':
			stream.tokens = append(stream.tokens, typeToken{tkLBracket, pos, "["})
			i++
			continue
		case ']':
			stream.tokens = append(stream.tokens, typeToken{tkRBracket, pos, "]"})
			i++
			continue
		case '?':
			stream.tokens = append(stream.tokens, typeToken{tkQM, pos, "?"})
			i++
			continue
		}

		if !isIdentifierStart(runes[i]) {
			return stream, errors.Errorf("invalid character %q at position %d in %q", runes[i], pos, input)
		}
		for i < len(runes) && isIdentifierPart(runes[i]) {
			i++
		}
		word := string(runes[pos:i])

		kind := tkIdentifier
		switch {
		case classNameEncodings[word] != "" || word == "void":
			kind = tkBasicType
		case keywords[word]:
			kind = tkKeyword
		case literals[word]:
			kind = tkLiteral
		}
		stream.tokens = append(stream.tokens, typeToken{kind, pos, word})
	}

	return stream, nil
}

// parseType consumes a complete type: a primitive or reference type
// followed by any number of "[]" pairs.
func parseType(s *tokenStream, t *TypeName) error {
	typeSeen := false
	bracketOpen := false

	for {
		tok, ok := s.next()
		if !ok {
			break
		}

		switch tok.kind {
		case tkBasicType:
			// "void" is a basic type token but never a valid type name.
			if typeSeen || classNameEncodings[tok.value] == "" {
				return s.errInvalidToken(tok)
			}
			typeSeen = true
			t.className = tok.value
			t.qualifiedName = tok.value
			t.simpleName = tok.value
			t.packageName = ""
			t.primitive = true

		case tkIdentifier:
			if typeSeen {
				return s.errInvalidToken(tok)
			}
			typeSeen = true
			s.back()
			if err := parseReferenceType(s, t, false); err != nil {
				return err
			}

		case tkLBracket:
			if !typeSeen || bracketOpen {
				return s.errInvalidToken(tok)
			}
			bracketOpen = true

		case tkRBracket:
			if !typeSeen || !bracketOpen {
				return s.errInvalidToken(tok)
			}
			bracketOpen = false
			t.dimension++
			t.className = "[" + t.className
			t.qualifiedName += "[]"
			t.simpleName += "[]"

		default:
			return s.errInvalidToken(tok)
		}
	}

	if !typeSeen || bracketOpen {
		return s.errUnexpectedEnd()
	}

	if t.dimension > 0 {
		element := t.className[t.dimension:]
		if t.primitive {
			t.className = t.className[:t.dimension] + classNameEncodings[element]
		} else {
			t.className = t.className[:t.dimension] + "L" + element + ";"
		}
	}

	return nil
}

// parseReferenceType consumes a dotted name with optional type arguments.
// Inside type arguments it stops before "," or ">"; at top level it stops
// before "[".
func parseReferenceType(s *tokenStream, t *TypeName, inTypeArguments bool) error {
	var className, typeName strings.Builder
	identifierSeen := false
	argumentsSeen := false

	finish := func() {
		t.className = className.String()
		t.qualifiedName = typeName.String()
	}

	for {
		tok, ok := s.next()
		if !ok {
			break
		}

		switch tok.kind {
		case tkIdentifier:
			if identifierSeen || argumentsSeen {
				return s.errInvalidToken(tok)
			}
			identifierSeen = true
			t.simpleName = tok.value
			t.packageName = ""
			if typeName.Len() > 0 {
				t.packageName = strings.TrimSuffix(typeName.String(), ".")
			}
			className.WriteString(tok.value)
			typeName.WriteString(tok.value)

		case tkDot:
			if !identifierSeen && !argumentsSeen {
				return s.errInvalidToken(tok)
			}
			identifierSeen = false
			argumentsSeen = false
			className.WriteString(".")
			typeName.WriteString(".")

		case tkLT:
			if !identifierSeen {
				return s.errInvalidToken(tok)
			}
			identifierSeen = false
			argumentsSeen = true
			s.back()
			if err := parseTypeArguments(s, t); err != nil {
				return err
			}

		case tkLBracket:
			if (!identifierSeen && !argumentsSeen) || inTypeArguments {
				return s.errInvalidToken(tok)
			}
			s.back()
			finish()
			return nil

		case tkComma, tkGT:
			if (!identifierSeen && !argumentsSeen) || !inTypeArguments {
				return s.errInvalidToken(tok)
			}
			s.back()
			finish()
			return nil

		default:
			return s.errInvalidToken(tok)
		}
	}

	if !identifierSeen && !argumentsSeen {
		return s.errUnexpectedEnd()
	}

	finish()
	return nil
}

// parseTypeArguments consumes "<" argument ("," argument)* ">".
func parseTypeArguments(s *tokenStream, t *TypeName) error {
	ltSeen := false
	argumentSeen := false

	for {
		tok, ok := s.next()
		if !ok {
			return s.errUnexpectedEnd()
		}

		switch tok.kind {
		case tkLT:
			if ltSeen || argumentSeen {
				return s.errInvalidToken(tok)
			}
			ltSeen = true

		case tkGT:
			if !argumentSeen {
				return s.errInvalidToken(tok)
			}
			return nil

		case tkComma:
			if !argumentSeen {
				return s.errInvalidToken(tok)
			}
			argumentSeen = false

		case tkIdentifier, tkQM:
			if !ltSeen || argumentSeen {
				return s.errInvalidToken(tok)
			}
			argumentSeen = true
			s.back()
			if err := parseTypeArgument(s, t); err != nil {
				return err
			}

		default:
			return s.errInvalidToken(tok)
		}
	}
}

// parseTypeArgument consumes a single type argument: a reference type or a
// wildcard with optional bounds.
func parseTypeArgument(s *tokenStream, t *TypeName) error {
	t.arguments = append(t.arguments, Argument{})
	argument := &t.arguments[len(t.arguments)-1]
	qmSeen := false
	keywordSeen := false

	for {
		tok, ok := s.next()
		if !ok {
			return s.errUnexpectedEnd()
		}

		switch tok.kind {
		case tkIdentifier:
			if qmSeen && !keywordSeen {
				return s.errInvalidToken(tok)
			}
			s.back()
			argument.TypeName = &TypeName{}
			return parseReferenceType(s, argument.TypeName, true)

		case tkQM:
			if qmSeen {
				return s.errInvalidToken(tok)
			}
			qmSeen = true
			argument.Wildcard = true

		case tkKeyword:
			if !qmSeen || keywordSeen || (tok.value != "extends" && tok.value != "super") {
				return s.errInvalidToken(tok)
			}
			keywordSeen = true
			argument.WildcardBounds = tok.value

		case tkComma, tkGT:
			if !qmSeen || keywordSeen {
				return s.errInvalidToken(tok)
			}
			s.back()
			return nil

		default:
			return s.errInvalidToken(tok)
		}
	}
}
