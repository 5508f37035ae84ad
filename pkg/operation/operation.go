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

// Package operation implements the file-level operations of the sected
// tool: merging configured section content into files, checking whether a
// merge is needed, and whitespace formatting.
package operation

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/sected/pkg/config"
	"github.com/walteh/sected/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// Operation is a unit of work the runner can execute.
type Operation interface {
	// Name identifies the operation in logs.
	Name() string
	// Execute runs the operation.
	Execute(ctx context.Context) (*Result, error)
}

// Result summarizes an executed operation.
type Result struct {
	Scanned  int // files matched by globs
	Modified int // files whose content changed (or would change)
	Failed   int // files with missing required sections
}

// Options contains shared configuration for operations.
type Options struct {
	// Config is the tool configuration. Required.
	Config *config.Config
	// Logger renders per-file console output. Required.
	Logger *log.Logger
	// UserLogger provides end-user feedback. Optional.
	UserLogger *log.UserLogger
	// DryRun prevents any file from being written.
	DryRun bool
}

func (o Options) validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.Logger == nil {
		return errors.Errorf("logger is required")
	}
	return nil
}

// matchFiles resolves a rule's globs against the config root. Results are
// de-duplicated and sorted for deterministic processing order.
func matchFiles(root string, rule config.Rule) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, glob := range rule.Files {
		pattern := glob
		if root != "" {
			pattern = filepath.Join(root, glob)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("rule %q: resolving glob %q: %w", rule.Name, glob, err)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// relPath makes a path relative to root for display, falling back to the
// path itself.
func relPath(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// writeFile writes content preserving the file's permission bits.
func writeFile(path, content string, info fs.FileInfo) error {
	perm := fs.FileMode(0o644)
	if info != nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}
	return nil
}
