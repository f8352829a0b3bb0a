package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/runlog"
)

// recordPhase executes fn and records the invocation in the run ledger.
// A broken ledger never blocks the pipeline itself; ledger failures are
// logged and the phase result is returned as-is.
func recordPhase(ctx context.Context, phase, inputPath string, fn func(ctx context.Context) (runlog.Outcome, error)) error {
	store, err := runlog.Open(ctx, cfg.Store)
	if err != nil {
		zap.L().Warn("run ledger unavailable", zap.Error(err))
		store = nil
	}

	var run *runlog.Run
	if store != nil {
		defer store.Close() //nolint:errcheck
		if err := store.Migrate(ctx); err != nil {
			zap.L().Warn("run ledger migrate", zap.Error(err))
		} else if run, err = store.Begin(ctx, phase, inputPath); err != nil {
			zap.L().Warn("run ledger begin", zap.Error(err))
			run = nil
		}
	}

	outcome, phaseErr := fn(ctx)
	outcome.Err = phaseErr

	if store != nil && run != nil {
		if err := store.Complete(ctx, run.ID, outcome); err != nil {
			zap.L().Warn("run ledger complete", zap.Error(err))
		}
	}

	return phaseErr
}
