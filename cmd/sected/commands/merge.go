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
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sected/cmd/sected/opts"
	"github.com/walteh/sected/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// OptsFunc builds the shared command dependencies once flags are parsed.
type OptsFunc func(ctx context.Context) (*opts.RootOpts, error)

// NewMergeCmd creates a new merge command.
func NewMergeCmd(newOpts OptsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Rewrite configured sections in matched files",
		Long: `Merge applies every rule of the configuration: for each matched file
it parses the section tree, replaces the content of configured sections
and writes the file back when anything changed. Content outside sections
is preserved byte for byte.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "merge").Logger().WithContext(ctx)

			rootOpts, err := newOpts(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewMergeOperation(operation.Options{
				Config:     rootOpts.Config,
				Logger:     rootOpts.Logger,
				UserLogger: rootOpts.UserLogger,
				DryRun:     rootOpts.DryRun,
			})
			if err != nil {
				return err
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx), rootOpts.Async)
			if _, err := runner.Run(ctx, op); err != nil {
				return errors.Errorf("merging files: %w", err)
			}
			return nil
		},
	}
}
