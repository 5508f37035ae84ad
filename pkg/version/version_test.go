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

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "equal_simple", a: "1.0", b: "1.0", want: 0},
		{name: "alpha_ordering", a: "1.0-alpha-1", b: "1.0-alpha-2", want: -1},
		{name: "alpha_ordering_reversed", a: "1.0-alpha-2", b: "1.0-alpha-1", want: 1},
		{name: "alpha_before_beta", a: "1.0-alpha-2", b: "1.0-beta-1", want: -1},
		{name: "equal_mixed_tokens", a: "4aug2000r7", b: "4aug2000r7", want: 0},
		{name: "dev_suffix_is_older", a: "4aug2000r7-dev", b: "4aug2000r7", want: -1},
		{name: "extra_numeric_is_newer", a: "1.0.1", b: "1.0", want: 1},
		{name: "numeric_not_lexical", a: "1.10", b: "1.9", want: 1},
		{name: "leading_zeros_ignored", a: "1.007", b: "1.7", want: 0},
		{name: "case_insensitive_words", a: "1.0-ALPHA", b: "1.0-alpha", want: 0},
		{name: "separators_equivalent", a: "1_0-0", b: "1.0.0", want: 0},
		{name: "snapshot_is_older", a: "2.3-SNAPSHOT", b: "2.3", want: -1},
		{name: "empty_versions_equal", a: "", b: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.a, tt.b)
			switch {
			case tt.want < 0:
				assert.Negative(t, got, "%q should be older than %q", tt.a, tt.b)
				assert.Positive(t, Compare(tt.b, tt.a), "comparison should be antisymmetric")
			case tt.want > 0:
				assert.Positive(t, got, "%q should be newer than %q", tt.a, tt.b)
				assert.Negative(t, Compare(tt.b, tt.a), "comparison should be antisymmetric")
			default:
				assert.Zero(t, got, "%q should equal %q", tt.a, tt.b)
				assert.Zero(t, Compare(tt.b, tt.a), "comparison should be symmetric")
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("4aug2000r7-dev")
	values := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		values = append(values, tok.value)
	}
	assert.Equal(t, []string{"4", "aug", "2000", "r", "7", "dev"}, values,
		"digit and word runs should split into separate tokens")
	assert.Equal(t, tokenNumber, tokens[0].kind, "digit runs are numeric tokens")
	assert.Equal(t, tokenWord, tokens[1].kind, "letter runs are word tokens")
}
