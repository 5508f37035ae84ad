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

// Package config loads and validates the sected tool configuration. A
// config is a set of rules; each rule selects files by glob and describes
// which sections to rewrite in them.
package config

import (
	"context"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Markers overrides the section marker vocabulary for a rule.
type Markers struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Replacement is a literal substitution applied to matched files after the
// section merge.
type Replacement struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// Rule selects files and describes the section edits to apply to them.
type Rule struct {
	// Name identifies the rule in logs and errors.
	Name string `json:"name" yaml:"name"`
	// Files are doublestar globs, relative to the config root.
	Files []string `json:"files" yaml:"files"`
	// Markers optionally replaces the default SECTION-START[/SECTION-END
	// vocabulary.
	Markers *Markers `json:"markers,omitempty" yaml:"markers,omitempty"`
	// Sections maps section names to the head content they receive during
	// a merge. Content is written verbatim; line separators are added per
	// line.
	Sections map[string]string `json:"sections,omitempty" yaml:"sections,omitempty"`
	// Required names sections that must be present in every matched file.
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`
	// Replacements are literal substitutions applied line by line after the
	// section merge.
	Replacements []Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty"`
	// Workers sets the parallelism of the edit traversal. Zero means
	// sequential.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`
	// TrimTrailingWhitespace chains a trailing-whitespace editor after the
	// section editor.
	TrimTrailingWhitespace bool `json:"trim_trailing_whitespace,omitempty" yaml:"trim_trailing_whitespace,omitempty"`
}

// Config is the complete tool configuration.
type Config struct {
	// Root is the directory globs are resolved against. Defaults to the
	// directory of the config file.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
	// Rules in evaluation order.
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Load reads and parses the configuration at path, dispatching on the file
// extension, and validates the result.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(ctx, path, data)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if len(c.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}
	for i, rule := range c.Rules {
		if rule.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if len(rule.Files) == 0 {
			return errors.Errorf("rule %q: at least one file glob is required", rule.Name)
		}
		for _, glob := range rule.Files {
			if !doublestar.ValidatePattern(glob) {
				return errors.Errorf("rule %q: invalid glob %q", rule.Name, glob)
			}
		}
		if rule.Markers != nil && (rule.Markers.Start == "" || rule.Markers.End == "") {
			return errors.Errorf("rule %q: markers require both start and end", rule.Name)
		}
		for name := range rule.Sections {
			if name == "" {
				return errors.Errorf("rule %q: section names must not be empty", rule.Name)
			}
		}
		for _, repl := range rule.Replacements {
			if repl.Old == "" {
				return errors.Errorf("rule %q: replacement old text must not be empty", rule.Name)
			}
		}
		if rule.Workers < 0 {
			return errors.Errorf("rule %q: workers must not be negative", rule.Name)
		}
	}
	return nil
}
