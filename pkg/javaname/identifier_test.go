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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "Test"},
		{name: "camel", input: "testTestTest"},
		{name: "underscores", input: "TEST_TEST_TEST"},
		{name: "leading_underscore", input: "_test"},
		{name: "dollar_sign", input: "test$inner"},
		{name: "digits", input: "test2"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace_only", input: "   ", wantErr: true},
		{name: "embedded_space", input: "test test", wantErr: true},
		{name: "leading_digit", input: "9test", wantErr: true},
		{name: "at_sign", input: "@", wantErr: true},
		{name: "keyword", input: "int", wantErr: true},
		{name: "literal", input: "null", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err, "parsing %q should fail", tt.input)
				return
			}
			require.NoError(t, err, "parsing %q should succeed", tt.input)
			assert.Equal(t, tt.input, got, "validation must not transform the input")
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mode    NormalizationMode
		want    string
		wantErr bool
	}{
		{name: "camel_words", input: "test test test  ", mode: CamelCase, want: "TestTestTest"},
		{name: "camel_underscores", input: "test_test_test", mode: CamelCase, want: "TestTestTest"},
		{name: "camel_padded", input: " test_test_test ", mode: CamelCase, want: "TestTestTest"},
		{name: "camel_mixed_case_words", input: "  Test  test  test  ", mode: CamelCase, want: "TestTestTest"},
		{name: "camel_upper_words", input: "tEST  tEST  tEST  ", mode: CamelCase, want: "TestTestTest"},
		{name: "camel_all_upper", input: "TEST", mode: CamelCase, want: "Test"},
		{name: "camel_already_camel", input: "TestTestTest", mode: CamelCase, want: "TestTestTest"},
		{name: "camel_lower_first", input: "testTestTest", mode: CamelCase, want: "TestTestTest"},
		{name: "camel_odd_case_words", input: "test TeSt Test", mode: CamelCase, want: "TestTestTest"},
		{name: "camel_retained_single_word", input: "tEsTtEsTtEsT", mode: CamelCase, want: "TesTtEsTtEst"},
		{name: "camel_retention_dropped_multi_word", input: "tEsTtEsTtEsT tEsTtEsTtEsT", mode: CamelCase, want: "TesttesttestTesttesttest"},
		{name: "camel_keyword", input: "   int   ", mode: CamelCase, want: "Int"},

		{name: "upper_words", input: "test test test  ", mode: UpperCase, want: "TEST_TEST_TEST"},
		{name: "upper_underscores", input: "test_test_test  ", mode: UpperCase, want: "TEST_TEST_TEST"},
		{name: "upper_leading_underscores", input: "_test _test _test_", mode: UpperCase, want: "TEST_TEST_TEST"},
		{name: "upper_already_upper", input: "TEST_TEST_TEST", mode: UpperCase, want: "TEST_TEST_TEST"},
		{name: "upper_keyword", input: "   int   ", mode: UpperCase, want: "INT"},

		{name: "constant_words", input: "test test test  ", mode: ConstantName, want: "TEST_TEST_TEST"},

		{name: "lower_words", input: "test test test  ", mode: LowerCase, want: "test_test_test"},
		{name: "lower_upper_input", input: " TEST_TEST_TEST  ", mode: LowerCase, want: "test_test_test"},
		{name: "lower_leading_underscores", input: "_TEST _TEST _TEST_", mode: LowerCase, want: "test_test_test"},
		{name: "lower_keyword", input: "   int   ", mode: LowerCase, want: "_int"},
		{name: "lower_literal", input: "   null   ", mode: LowerCase, want: "_null"},

		{name: "variable_words", input: "test test test  ", mode: VariableName, want: "testTestTest"},
		{name: "variable_underscores", input: "test_test_test", mode: VariableName, want: "testTestTest"},
		{name: "variable_all_upper", input: "TEST", mode: VariableName, want: "test"},
		{name: "variable_already_camel", input: "TestTestTest", mode: VariableName, want: "testTestTest"},
		{name: "variable_retained_single_word", input: "TeStTeStTeStX", mode: VariableName, want: "teStTeStTeStx"},
		{name: "variable_retention_dropped_multi_word", input: "TeStTeStTeSt TeStTeStTeSt", mode: VariableName, want: "testtesttestTesttesttest"},
		{name: "variable_keyword", input: "   int   ", mode: VariableName, want: "_int"},
		{name: "variable_literal", input: "   true   ", mode: VariableName, want: "_true"},

		{name: "method_words", input: "test test test  ", mode: MethodName, want: "testTestTest"},

		{name: "empty", input: "", mode: CamelCase, wantErr: true},
		{name: "at_sign", input: "@", mode: VariableName, wantErr: true},
		{name: "whitespace_only", input: "   ", mode: LowerCase, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, tt.mode)
			if tt.wantErr {
				require.Error(t, err, "normalizing %q should fail", tt.input)
				return
			}
			require.NoError(t, err, "normalizing %q should succeed", tt.input)
			assert.Equal(t, tt.want, got, "normalizing %q with %s", tt.input, tt.mode)
		})
	}
}

func TestNormalizationModeString(t *testing.T) {
	assert.Equal(t, "camel-case", CamelCase.String())
	assert.Equal(t, "constant-name", ConstantName.String())
	assert.Equal(t, "method-name", MethodName.String())
	assert.Equal(t, "unknown", NormalizationMode(99).String())
}
