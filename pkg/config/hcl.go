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

package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// hclConfig is the HCL decoding schema; it is converted to the model after
// decoding.
type hclConfig struct {
	Root  string `hcl:"root,optional"`
	Rules []struct {
		Name    string   `hcl:",label"`
		Files   []string `hcl:"files"`
		Markers *struct {
			Start string `hcl:"start"`
			End   string `hcl:"end"`
		} `hcl:"markers,block"`
		Sections []struct {
			Name    string `hcl:",label"`
			Content string `hcl:"content"`
		} `hcl:"section,block"`
		Replacements []struct {
			Old string `hcl:"old"`
			New string `hcl:"new"`
		} `hcl:"replace,block"`
		Required               []string `hcl:"required,optional"`
		Workers                int      `hcl:"workers,optional"`
		TrimTrailingWhitespace bool     `hcl:"trim_trailing_whitespace,optional"`
	} `hcl:"rule,block"`
}

func parseHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{Root: hclCfg.Root}
	for _, rule := range hclCfg.Rules {
		converted := Rule{
			Name:                   rule.Name,
			Files:                  rule.Files,
			Required:               rule.Required,
			Workers:                rule.Workers,
			TrimTrailingWhitespace: rule.TrimTrailingWhitespace,
		}
		if rule.Markers != nil {
			converted.Markers = &Markers{
				Start: rule.Markers.Start,
				End:   rule.Markers.End,
			}
		}
		for _, repl := range rule.Replacements {
			converted.Replacements = append(converted.Replacements, Replacement{
				Old: repl.Old,
				New: repl.New,
			})
		}
		if len(rule.Sections) > 0 {
			converted.Sections = make(map[string]string, len(rule.Sections))
			for _, section := range rule.Sections {
				converted.Sections[section.Name] = section.Content
			}
		}
		cfg.Rules = append(cfg.Rules, converted)
	}

	return cfg, nil
}
