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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Runner executes operations.
type Runner struct {
	logger *zerolog.Logger
	async  bool
}

// NewRunner creates a new runner.
func NewRunner(logger *zerolog.Logger, async bool) *Runner {
	return &Runner{
		logger: logger,
		async:  async,
	}
}

// Run executes an operation.
func (r *Runner) Run(ctx context.Context, op Operation) (*Result, error) {
	r.logger.Debug().Str("operation", op.Name()).Bool("async", r.async).Msg("running operation")

	result, err := r.run(ctx, op)
	if err != nil {
		r.logger.Debug().Str("operation", op.Name()).Err(err).Msg("operation failed")
		return nil, err
	}
	r.logger.Debug().
		Str("operation", op.Name()).
		Int("scanned", result.Scanned).
		Int("modified", result.Modified).
		Int("failed", result.Failed).
		Msg("operation finished")
	return result, nil
}

func (r *Runner) run(ctx context.Context, op Operation) (*Result, error) {
	if r.async {
		return r.runAsync(ctx, op)
	}
	return op.Execute(ctx)
}

// runAsync runs an operation on its own goroutine so the caller's context
// can interrupt the wait.
func (r *Runner) runAsync(ctx context.Context, op Operation) (*Result, error) {
	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := op.Execute(ctx)
		if err != nil {
			err = errors.Errorf("executing %s: %w", op.Name(), err)
		}
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Errorf("operation %s cancelled: %w", op.Name(), ctx.Err())
	case out := <-done:
		return out.result, out.err
	}
}
