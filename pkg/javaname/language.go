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

// Package javaname parses and normalizes names of the Java language:
// identifiers (with several case-convention normalization modes) and type
// names (qualified names, primitives, arrays, generics with wildcards).
package javaname

import "unicode"

// keywords of the Java language, including the primitive type names.
var keywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true,
	"extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true,
	"long": true, "native": true, "new": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "try": true, "void": true,
	"volatile": true, "while": true,
}

// basicTypes are the primitive type names, longest first so the tokenizer
// can match greedily.
var basicTypes = []string{
	"boolean", "double", "float", "short", "byte", "char", "long", "int",
}

// literals that cannot be used as identifiers.
var literals = map[string]bool{
	"true": true, "false": true, "null": true,
}

func isReservedWord(s string) bool {
	return keywords[s] || literals[s]
}

// isIdentifierStart mirrors Character.isJavaIdentifierStart.
func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || unicode.In(r, unicode.Nl, unicode.Sc, unicode.Pc)
}

// isIdentifierPart mirrors Character.isJavaIdentifierPart.
func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Cf)
}
