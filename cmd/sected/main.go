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

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sected/cmd/sected/commands"
	"github.com/walteh/sected/cmd/sected/opts"
	"github.com/walteh/sected/pkg/config"
	"github.com/walteh/sected/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	configFile string
	debug      bool
	dryRun     bool
	async      bool
)

// newRootOpts creates a RootOpts with initialized dependencies.
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if cfg.Root == "" {
		cfg.Root = rootDirOf(configFile)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &opts.RootOpts{
		Config:     cfg,
		Logger:     log.New(os.Stdout, level),
		UserLogger: log.NewUserLogger(ctx),
		DryRun:     dryRun,
		Async:      async,
	}, nil
}

// setupLogging configures zerolog based on flags.
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sected",
		Short: "Merge generated files with hand-edited sections",
		Long: `sected rewrites named sections in generated files while preserving
everything outside the section markers byte for byte. Re-running a
generator and sected together merges fresh generated content with
previously hand-edited regions without destroying either.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".sectedrc", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "do not write any files")
	cmd.PersistentFlags().BoolVar(&async, "async", false, "run operations asynchronously")

	cmd.AddCommand(commands.NewMergeCmd(newRootOpts))
	cmd.AddCommand(commands.NewCheckCmd(newRootOpts))
	cmd.AddCommand(commands.NewFmtCmd(newRootOpts))

	return cmd
}

func rootDirOf(path string) string {
	return filepath.Dir(path)
}

func main() {
	ctx := context.Background()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
