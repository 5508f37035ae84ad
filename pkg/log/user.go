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
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// UserLogger provides user-friendly feedback about merge results.
type UserLogger struct {
	log zerolog.Logger
}

// FileChangeType represents the type of change made to a file.
type FileChangeType int

const (
	FileMerged FileChangeType = iota
	FileUnchanged
	FileSkipped
	FileError
)

// FileChange represents a change to a processed file.
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
	Error       error
}

// NewUserLogger creates a new user logger.
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// LogFileChange logs a file change with appropriate prefix and formatting.
func (u *UserLogger) LogFileChange(change FileChange) {
	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileMerged:
		prefix = "🔄"
		action = "Merged"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case FileUnchanged:
		prefix = "•"
		action = "Unchanged"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case FileSkipped:
		prefix = "⏭️"
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case FileError:
		prefix = "❌"
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	default:
		prefix = "•"
		action = "Processed"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, change.Path)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	printer.Println(msg)
	if change.Error != nil {
		pterm.Error.Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg)
	} else {
		u.log.Info().Msg(msg)
	}
}

// LogSummary logs an overall run summary.
func (u *UserLogger) LogSummary(scanned, modified, failed int) {
	msg := fmt.Sprintf("%d files scanned, %d modified, %d failed", scanned, modified, failed)
	if failed > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "📦"}).Println(msg)
	} else {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(msg)
	}
	u.log.Info().
		Int("scanned", scanned).
		Int("modified", modified).
		Int("failed", failed).
		Msg("run complete")
}
