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

import "context"

// CheckOperation is a dry-run merge: it reports which files a merge would
// change or which required sections are missing, without writing anything.
type CheckOperation struct {
	merge *MergeOperation
}

// NewCheckOperation creates a new check operation.
func NewCheckOperation(opts Options) (*CheckOperation, error) {
	opts.DryRun = true
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &CheckOperation{
		merge: &MergeOperation{opts: opts, strict: false},
	}, nil
}

// Name implements Operation.
func (c *CheckOperation) Name() string {
	return "check"
}

// Execute implements Operation. A clean tree yields a result with zero
// Modified and zero Failed counts.
func (c *CheckOperation) Execute(ctx context.Context) (*Result, error) {
	return c.merge.Execute(ctx)
}

// NeedsMerge reports whether the checked tree is out of date.
func (r *Result) NeedsMerge() bool {
	return r.Modified > 0 || r.Failed > 0
}
