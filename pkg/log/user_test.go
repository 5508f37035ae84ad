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

package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func newTestUserLogger(t *testing.T) (*UserLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	zlog := zerolog.New(buf)
	ctx := zlog.WithContext(context.Background())
	return NewUserLogger(ctx), buf
}

func TestUserLoggerFileChange(t *testing.T) {
	tests := []struct {
		name     string
		change   FileChange
		contains []string
	}{
		{
			name:     "merged",
			change:   FileChange{Type: FileMerged, Path: "a.txt"},
			contains: []string{"Merged a.txt"},
		},
		{
			name:     "unchanged",
			change:   FileChange{Type: FileUnchanged, Path: "b.txt"},
			contains: []string{"Unchanged b.txt"},
		},
		{
			name:     "skipped_with_description",
			change:   FileChange{Type: FileSkipped, Path: "c.txt", Description: "not matched"},
			contains: []string{"Skipped c.txt (not matched)"},
		},
		{
			name:     "error",
			change:   FileChange{Type: FileError, Path: "d.txt", Error: errors.New("boom")},
			contains: []string{"Error d.txt", "boom"},
		},
		{
			name:     "unknown_change_type",
			change:   FileChange{Type: FileChangeType(99), Path: "e.txt"},
			contains: []string{"Processed e.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newTestUserLogger(t)
			logger.LogFileChange(tt.change)

			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want, "structured output should contain %q", want)
			}
		})
	}
}

func TestUserLoggerSummary(t *testing.T) {
	logger, buf := newTestUserLogger(t)

	logger.LogSummary(10, 3, 0)
	output := buf.String()
	require.Contains(t, output, "run complete")
	assert.Contains(t, output, `"scanned":10`)
	assert.Contains(t, output, `"modified":3`)
	assert.Contains(t, output, `"failed":0`)

	buf.Reset()
	logger.LogSummary(1, 0, 1)
	assert.Contains(t, buf.String(), `"failed":1`)
}
