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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sected/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command.
func NewCheckCmd(newOpts OptsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report files a merge would change",
		Long: `Check runs a merge without writing anything and fails when any file is
out of date or a required section is missing. Intended for CI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

			rootOpts, err := newOpts(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewCheckOperation(operation.Options{
				Config:     rootOpts.Config,
				Logger:     rootOpts.Logger,
				UserLogger: rootOpts.UserLogger,
			})
			if err != nil {
				return err
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx), rootOpts.Async)
			result, err := runner.Run(ctx, op)
			if err != nil {
				return errors.Errorf("checking files: %w", err)
			}
			if result.NeedsMerge() {
				return errors.Errorf("%d file(s) out of date, %d file(s) missing required sections", result.Modified, result.Failed)
			}
			return nil
		},
	}
}
