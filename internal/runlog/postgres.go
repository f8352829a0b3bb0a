package runlog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 4
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS phase_runs (
	id          UUID PRIMARY KEY,
	phase       TEXT NOT NULL,
	input_path  TEXT NOT NULL,
	output_path TEXT,
	rows_in     INTEGER NOT NULL DEFAULT 0,
	rows_out    INTEGER NOT NULL DEFAULT 0,
	status      TEXT NOT NULL DEFAULT 'running',
	error       TEXT,
	started_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	finished_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_phase_runs_phase ON phase_runs(phase);
CREATE INDEX IF NOT EXISTS idx_phase_runs_status ON phase_runs(status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Begin(ctx context.Context, phase, inputPath string) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Phase:     phase,
		InputPath: inputPath,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO phase_runs (id, phase, input_path, status, started_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Phase, run.InputPath, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}
	return run, nil
}

func (s *PostgresStore) Complete(ctx context.Context, runID string, outcome Outcome) error {
	status := StatusSucceeded
	errMsg := ""
	if outcome.Err != nil {
		status = StatusFailed
		errMsg = outcome.Err.Error()
	}

	_, err := s.pool.Exec(ctx,
		`UPDATE phase_runs
		 SET output_path = $1, rows_in = $2, rows_out = $3, status = $4, error = $5, finished_at = $6
		 WHERE id = $7`,
		outcome.OutputPath, outcome.RowsIn, outcome.RowsOut, string(status), errMsg, time.Now().UTC(), runID,
	)
	return eris.Wrap(err, "postgres: complete run")
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, phase, input_path, COALESCE(output_path, ''), rows_in, rows_out, status, COALESCE(error, ''), started_at, finished_at
		 FROM phase_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var status string
		var finished *time.Time
		if err := rows.Scan(&r.ID, &r.Phase, &r.InputPath, &r.OutputPath, &r.RowsIn, &r.RowsOut, &status, &r.Error, &r.StartedAt, &finished); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		r.Status = RunStatus(status)
		r.FinishedAt = finished
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate runs")
}
