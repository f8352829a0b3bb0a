package runlog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS phase_runs (
	id          TEXT PRIMARY KEY,
	phase       TEXT NOT NULL,
	input_path  TEXT NOT NULL,
	output_path TEXT,
	rows_in     INTEGER NOT NULL DEFAULT 0,
	rows_out    INTEGER NOT NULL DEFAULT 0,
	status      TEXT NOT NULL DEFAULT 'running',
	error       TEXT,
	started_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	finished_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_phase_runs_phase ON phase_runs(phase);
CREATE INDEX IF NOT EXISTS idx_phase_runs_status ON phase_runs(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Begin(ctx context.Context, phase, inputPath string) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Phase:     phase,
		InputPath: inputPath,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO phase_runs (id, phase, input_path, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Phase, run.InputPath, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

func (s *SQLiteStore) Complete(ctx context.Context, runID string, outcome Outcome) error {
	status := StatusSucceeded
	errMsg := ""
	if outcome.Err != nil {
		status = StatusFailed
		errMsg = outcome.Err.Error()
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE phase_runs
		 SET output_path = ?, rows_in = ?, rows_out = ?, status = ?, error = ?, finished_at = ?
		 WHERE id = ?`,
		outcome.OutputPath, outcome.RowsIn, outcome.RowsOut, string(status), errMsg, time.Now().UTC(), runID,
	)
	return eris.Wrap(err, "sqlite: complete run")
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, phase, input_path, COALESCE(output_path, ''), rows_in, rows_out, status, COALESCE(error, ''), started_at, finished_at
		 FROM phase_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var out []Run
	for rows.Next() {
		var r Run
		var status string
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.Phase, &r.InputPath, &r.OutputPath, &r.RowsIn, &r.RowsOut, &status, &r.Error, &r.StartedAt, &finished); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		r.Status = RunStatus(status)
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}
