// Package runlog records every pipeline phase invocation so operators can
// audit what ran, over which files, and with what outcome.
package runlog

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/kasparro/market-intel-cli/internal/config"
)

// RunStatus is the lifecycle state of a recorded phase run.
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusSucceeded RunStatus = "succeeded"
	StatusFailed    RunStatus = "failed"
)

// Run is one recorded phase invocation.
type Run struct {
	ID         string     `json:"id"`
	Phase      string     `json:"phase"`
	InputPath  string     `json:"input_path"`
	OutputPath string     `json:"output_path,omitempty"`
	RowsIn     int        `json:"rows_in"`
	RowsOut    int        `json:"rows_out"`
	Status     RunStatus  `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Outcome describes how a phase run finished.
type Outcome struct {
	OutputPath string
	RowsIn     int
	RowsOut    int
	Err        error
}

// Store persists the run ledger.
type Store interface {
	Begin(ctx context.Context, phase, inputPath string) (*Run, error)
	Complete(ctx context.Context, runID string, outcome Outcome) error
	List(ctx context.Context, limit int) ([]Run, error)
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("runlog: unknown store driver %q", cfg.Driver)
	}
}
