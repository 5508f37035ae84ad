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
	"context"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/walteh/sected/pkg/config"
	"github.com/walteh/sected/pkg/lineedit"
	"github.com/walteh/sected/pkg/log"
	"github.com/walteh/sected/pkg/section"
	"gitlab.com/tozd/go/errors"
)

// MergeOperation rewrites configured sections in every file a rule
// matches, leaving everything outside the sections untouched.
type MergeOperation struct {
	opts Options
	// strict makes missing required sections fatal instead of counted.
	strict bool
}

// NewMergeOperation creates a new merge operation.
func NewMergeOperation(opts Options) (*MergeOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &MergeOperation{opts: opts, strict: true}, nil
}

// Name implements Operation.
func (m *MergeOperation) Name() string {
	return "merge"
}

// Execute implements Operation.
func (m *MergeOperation) Execute(ctx context.Context) (*Result, error) {
	result := &Result{}
	for _, rule := range m.opts.Config.Rules {
		if err := m.applyRule(ctx, rule, result); err != nil {
			return nil, err
		}
	}
	if m.opts.UserLogger != nil {
		m.opts.UserLogger.LogSummary(result.Scanned, result.Modified, result.Failed)
	}
	return result, nil
}

func (m *MergeOperation) applyRule(ctx context.Context, rule config.Rule, result *Result) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("rule", rule.Name).Msg("applying rule")

	files, err := matchFiles(m.opts.Config.Root, rule)
	if err != nil {
		return err
	}

	m.opts.Logger.StartRuleOperation(ctx, log.RuleOperation{
		Name:  rule.Name,
		Globs: len(rule.Files),
	})
	defer m.opts.Logger.EndRuleOperation(ctx)

	for _, path := range files {
		if err := m.mergeFile(ctx, rule, path, result); err != nil {
			return err
		}
	}
	return nil
}

// editCounters tracks per-file edit statistics. Counters are atomic
// because callbacks may run concurrently.
type editCounters struct {
	sections atomic.Int64
	edited   atomic.Int64
}

// newEditor builds the section editor for a rule. The edit callback
// replaces the head content of every section the rule configures.
func newEditor(rule config.Rule, counters *editCounters) *section.Editor {
	opts := section.Options{
		Workers: rule.Workers,
		OnSection: func(ctx context.Context, s *section.Section) error {
			if s.Anonymous() {
				return nil
			}
			counters.sections.Add(1)
			content, ok := rule.Sections[s.Name]
			if !ok {
				return nil
			}
			s.SetHead(formatContent(content, lineedit.DefaultSeparator))
			counters.edited.Add(1)
			return nil
		},
	}
	if rule.Markers != nil {
		opts.DetectStart = section.StartDetectorFor(rule.Markers.Start)
		opts.DetectEnd = section.EndDetectorFor(rule.Markers.End)
	}
	return section.NewEditor(opts)
}

// formatContent turns configured section content into line-terminated
// buffer content.
func formatContent(content, separator string) string {
	if content == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(strings.TrimSuffix(line, "\r"))
		buf.WriteString(separator)
	}
	return buf.String()
}

// missingSections returns the rule's required sections that the editor did
// not encounter.
func missingSections(editor *section.Editor, rule config.Rule) []string {
	var missing []string
	for _, name := range rule.Required {
		if !editor.IsSectionPresent(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func (m *MergeOperation) mergeFile(ctx context.Context, rule config.Rule, path string, result *Result) error {
	result.Scanned++
	display := relPath(m.opts.Config.Root, path)

	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("stating %s: %w", path, err)
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}

	var counters editCounters
	editor := newEditor(rule, &counters)

	driver, err := newDriver(editor, rule)
	if err != nil {
		return err
	}

	output, produced, err := driver.Edit(ctx, string(original))
	if err != nil {
		m.opts.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:   display,
			Status: "failed",
			Failed: true,
		})
		if m.opts.UserLogger != nil {
			m.opts.UserLogger.LogFileChange(log.FileChange{
				Type:  log.FileError,
				Path:  display,
				Error: err,
			})
		}
		return errors.Errorf("merging %s: %w", path, err)
	}
	if !produced {
		output = ""
	}

	if missing := missingSections(editor, rule); len(missing) > 0 {
		result.Failed++
		m.opts.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:     display,
			Status:   "missing-section",
			Sections: int(counters.sections.Load()),
			Edited:   int(counters.edited.Load()),
			Failed:   true,
		})
		if m.strict {
			return errors.Errorf("merging %s: required sections missing: %s", path, strings.Join(missing, ", "))
		}
		return nil
	}

	modified := output != string(original)
	status := "unchanged"
	if modified {
		status = "merged"
		result.Modified++
		if !m.opts.DryRun {
			if err := writeFile(path, output, info); err != nil {
				return err
			}
		}
	}

	m.opts.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:     display,
		Status:   status,
		Sections: int(counters.sections.Load()),
		Edited:   int(counters.edited.Load()),
		Modified: modified,
	})
	if m.opts.UserLogger != nil {
		changeType := log.FileUnchanged
		if modified {
			changeType = log.FileMerged
		}
		m.opts.UserLogger.LogFileChange(log.FileChange{
			Type: changeType,
			Path: display,
		})
	}
	return nil
}

// newDriver wires the section editor into the line feed protocol. The
// rule's replacements run over the merged output, a trailing-whitespace
// pass runs last.
func newDriver(editor *section.Editor, rule config.Rule) (*lineedit.Editor, error) {
	var chain *lineedit.Editor
	if rule.TrimTrailingWhitespace {
		var err error
		chain, err = lineedit.New(lineedit.Options{Handler: lineedit.TrailingWhitespace{}})
		if err != nil {
			return nil, err
		}
	}
	if len(rule.Replacements) > 0 {
		replacements := make([]lineedit.Replacement, len(rule.Replacements))
		for i, repl := range rule.Replacements {
			replacements[i] = lineedit.Replacement{Old: repl.Old, New: repl.New}
		}
		var err error
		chain, err = lineedit.New(lineedit.Options{
			Handler: lineedit.NewReplacer(replacements),
			Chain:   chain,
		})
		if err != nil {
			return nil, err
		}
	}
	return lineedit.New(lineedit.Options{Handler: editor, Chain: chain})
}
