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

package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/sected/pkg/config"
	"github.com/walteh/sected/pkg/log"
)

func testOptions(t *testing.T, cfg *config.Config) Options {
	t.Helper()
	return Options{
		Config: cfg,
		Logger: log.New(&bytes.Buffer{}, zerolog.InfoLevel),
	}
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMergeExecute(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt",
		"before\nSECTION-START[License]\nold license\nSECTION-END\nafter\n")
	writeTestFile(t, dir, "b.txt", "no sections here\n")

	cfg := &config.Config{
		Root: dir,
		Rules: []config.Rule{{
			Name:     "license",
			Files:    []string{"*.txt"},
			Sections: map[string]string{"License": "new license\nsecond line"},
		}},
	}

	op, err := NewMergeOperation(testOptions(t, cfg))
	require.NoError(t, err)

	result, err := op.Execute(context.Background())
	require.NoError(t, err, "merge should succeed")
	assert.Equal(t, 2, result.Scanned, "both files should be scanned")
	assert.Equal(t, 1, result.Modified, "only the file with the section changes")
	assert.Equal(t, 0, result.Failed)

	want := "before\nSECTION-START[License]\nnew license\nsecond line\nSECTION-END\nafter\n"
	assert.Equal(t, want, readTestFile(t, path), "section head should be replaced")

	// A second run finds nothing left to do.
	result, err = op.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Modified, "merge should be idempotent")
}

func TestMergeDryRun(t *testing.T) {
	dir := t.TempDir()
	original := "SECTION-START[X]\nold\nSECTION-END\n"
	path := writeTestFile(t, dir, "a.txt", original)

	cfg := &config.Config{
		Root: dir,
		Rules: []config.Rule{{
			Name:     "test",
			Files:    []string{"*.txt"},
			Sections: map[string]string{"X": "new"},
		}},
	}

	opts := testOptions(t, cfg)
	opts.DryRun = true
	op, err := NewMergeOperation(opts)
	require.NoError(t, err)

	result, err := op.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Modified, "the change should be counted")
	assert.Equal(t, original, readTestFile(t, path), "dry run must not write")
}

func TestMergeMissingRequiredSection(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", "no sections\n")

	cfg := &config.Config{
		Root: dir,
		Rules: []config.Rule{{
			Name:     "test",
			Files:    []string{"*.txt"},
			Required: []string{"License"},
		}},
	}

	op, err := NewMergeOperation(testOptions(t, cfg))
	require.NoError(t, err)

	_, err = op.Execute(context.Background())
	require.Error(t, err, "a missing required section is fatal for merge")
	assert.Contains(t, err.Error(), "required sections missing: License")
}

func TestMergeUnterminatedSection(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", "SECTION-START[X]\nnever closed\n")

	cfg := &config.Config{
		Root:  dir,
		Rules: []config.Rule{{Name: "test", Files: []string{"*.txt"}}},
	}

	op, err := NewMergeOperation(testOptions(t, cfg))
	require.NoError(t, err)

	_, err = op.Execute(context.Background())
	require.Error(t, err, "parse errors should abort the merge")
	assert.Contains(t, err.Error(), `section "X" is still open`)
}

func TestMergeCustomMarkers(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.cs",
		"#region[init]\nold\n#endregion\n")

	cfg := &config.Config{
		Root: dir,
		Rules: []config.Rule{{
			Name:     "regions",
			Files:    []string{"*.cs"},
			Markers:  &config.Markers{Start: "#region[", End: "#endregion"},
			Sections: map[string]string{"init": "new"},
		}},
	}

	op, err := NewMergeOperation(testOptions(t, cfg))
	require.NoError(t, err)

	result, err := op.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Modified)
	assert.Equal(t, "#region[init]\nnew\n#endregion\n", readTestFile(t, path))
}

func TestMergeTrimTrailingWhitespace(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt",
		"text   \nSECTION-START[X]\nold\nSECTION-END\n")

	cfg := &config.Config{
		Root: dir,
		Rules: []config.Rule{{
			Name:                   "test",
			Files:                  []string{"*.txt"},
			Sections:               map[string]string{"X": "new  "},
			TrimTrailingWhitespace: true,
		}},
	}

	op, err := NewMergeOperation(testOptions(t, cfg))
	require.NoError(t, err)

	_, err = op.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "text\nSECTION-START[X]\nnew\nSECTION-END\n", readTestFile(t, path),
		"trailing whitespace should be stripped everywhere")
}

func TestMergeReplacements(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt",
		"import oldmod\nSECTION-START[X]\nold\nSECTION-END\nuse oldmod\n")

	cfg := &config.Config{
		Root: dir,
		Rules: []config.Rule{{
			Name:     "test",
			Files:    []string{"*.txt"},
			Sections: map[string]string{"X": "uses newmod"},
			Replacements: []config.Replacement{
				{Old: "oldmod", New: "newmod"},
			},
		}},
	}

	op, err := NewMergeOperation(testOptions(t, cfg))
	require.NoError(t, err)

	_, err = op.Execute(context.Background())
	require.NoError(t, err)
	want := "import newmod\nSECTION-START[X]\nuses newmod\nSECTION-END\nuse newmod\n"
	assert.Equal(t, want, readTestFile(t, path),
		"replacements should run over the merged output")
}

func TestMergeParallelWorkers(t *testing.T) {
	dir := t.TempDir()
	input := "SECTION-START[a]\n1\nSECTION-END\nSECTION-START[b]\n2\nSECTION-END\nSECTION-START[c]\n3\nSECTION-END\n"
	path := writeTestFile(t, dir, "a.txt", input)

	cfg := &config.Config{
		Root: dir,
		Rules: []config.Rule{{
			Name:     "test",
			Files:    []string{"*.txt"},
			Workers:  4,
			Sections: map[string]string{"a": "A", "b": "B", "c": "C"},
		}},
	}

	op, err := NewMergeOperation(testOptions(t, cfg))
	require.NoError(t, err)

	result, err := op.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Modified)
	want := "SECTION-START[a]\nA\nSECTION-END\nSECTION-START[b]\nB\nSECTION-END\nSECTION-START[c]\nC\nSECTION-END\n"
	assert.Equal(t, want, readTestFile(t, path), "parallel edits should land deterministically")
}

func TestNewMergeOperationValidation(t *testing.T) {
	_, err := NewMergeOperation(Options{})
	require.Error(t, err, "config is required")

	_, err = NewMergeOperation(Options{Config: &config.Config{}})
	require.Error(t, err, "logger is required")
}

func TestFormatContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty", content: "", want: ""},
		{name: "single_line", content: "hello", want: "hello\n"},
		{name: "trailing_newline", content: "hello\n", want: "hello\n"},
		{name: "multi_line", content: "a\nb", want: "a\nb\n"},
		{name: "crlf", content: "a\r\nb\r\n", want: "a\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatContent(tt.content, "\n"))
		})
	}
}
