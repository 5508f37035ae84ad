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

	"github.com/rs/zerolog"
	"github.com/walteh/sected/pkg/lineedit"
	"github.com/walteh/sected/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// FmtOperation strips trailing whitespace from every file the rules match,
// without touching sections.
type FmtOperation struct {
	opts Options
}

// NewFmtOperation creates a new fmt operation.
func NewFmtOperation(opts Options) (*FmtOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &FmtOperation{opts: opts}, nil
}

// Name implements Operation.
func (f *FmtOperation) Name() string {
	return "fmt"
}

// Execute implements Operation.
func (f *FmtOperation) Execute(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	result := &Result{}

	for _, rule := range f.opts.Config.Rules {
		logger.Debug().Str("rule", rule.Name).Msg("formatting files")

		files, err := matchFiles(f.opts.Config.Root, rule)
		if err != nil {
			return nil, err
		}

		f.opts.Logger.StartRuleOperation(ctx, log.RuleOperation{
			Name:  rule.Name,
			Globs: len(rule.Files),
		})

		for _, path := range files {
			if err := f.formatFile(ctx, path, result); err != nil {
				f.opts.Logger.EndRuleOperation(ctx)
				return nil, err
			}
		}
		f.opts.Logger.EndRuleOperation(ctx)
	}

	if f.opts.UserLogger != nil {
		f.opts.UserLogger.LogSummary(result.Scanned, result.Modified, result.Failed)
	}
	return result, nil
}

func (f *FmtOperation) formatFile(ctx context.Context, path string, result *Result) error {
	result.Scanned++
	display := relPath(f.opts.Config.Root, path)

	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("stating %s: %w", path, err)
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}

	editor, err := lineedit.New(lineedit.Options{Handler: lineedit.TrailingWhitespace{}})
	if err != nil {
		return err
	}
	output, produced, err := editor.Edit(ctx, string(original))
	if err != nil {
		return errors.Errorf("formatting %s: %w", path, err)
	}
	if !produced {
		output = ""
	}

	modified := output != string(original)
	status := "unchanged"
	if modified {
		status = "formatted"
		result.Modified++
		if !f.opts.DryRun {
			if err := writeFile(path, output, info); err != nil {
				return err
			}
		}
	}

	f.opts.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:     display,
		Status:   status,
		Modified: modified,
	})
	return nil
}
