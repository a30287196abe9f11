package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/lk16/minithello/internal/othello"
	"github.com/lk16/minithello/internal/solver"
)

const schema = `
	CREATE TABLE IF NOT EXISTS solve_runs (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		discount REAL NOT NULL,
		tolerance REAL NOT NULL,
		sweeps INTEGER NOT NULL,
		max_delta REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS state_values (
		run_id UUID NOT NULL REFERENCES solve_runs (id) ON DELETE CASCADE,
		state_key BIGINT NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (run_id, state_key)
	);
`

// PostgresStore keeps every solve run. Load returns the most recent one.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the tables if they do not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

type runRow struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Discount  float32   `db:"discount"`
	Tolerance float32   `db:"tolerance"`
	Sweeps    int       `db:"sweeps"`
	MaxDelta  float32   `db:"max_delta"`
}

// Save inserts the run and bulk loads its values in a single transaction.
func (s *PostgresStore) Save(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO solve_runs (id, created_at, discount, tolerance, sweeps, max_delta)
		VALUES (:id, :created_at, :discount, :tolerance, :sweeps, :max_delta)
	`, runRow{
		ID:        run.ID,
		CreatedAt: run.CreatedAt,
		Discount:  run.Discount,
		Tolerance: run.Tolerance,
		Sweeps:    run.Sweeps,
		MaxDelta:  run.MaxDelta,
	})
	if err != nil {
		return fmt.Errorf("error inserting solve run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("state_values", "run_id", "state_key", "value"))
	if err != nil {
		return fmt.Errorf("error preparing copy: %w", err)
	}

	for _, key := range run.Values.Keys() {
		if _, err = stmt.ExecContext(ctx, run.ID, int64(key), run.Values[key]); err != nil {
			stmt.Close() //nolint: errcheck
			return fmt.Errorf("error copying state value: %w", err)
		}
	}

	// Flush buffered rows
	if _, err = stmt.ExecContext(ctx); err != nil {
		stmt.Close() //nolint: errcheck
		return fmt.Errorf("error flushing state values: %w", err)
	}

	if err = stmt.Close(); err != nil {
		return fmt.Errorf("error closing copy: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing solve run: %w", err)
	}

	return nil
}

// Load returns the most recent run with all its values.
func (s *PostgresStore) Load(ctx context.Context) (Run, error) {
	var row runRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, created_at, discount, tolerance, sweeps, max_delta
		FROM solve_runs
		ORDER BY created_at DESC
		LIMIT 1
	`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNoRun
		}
		return Run{}, fmt.Errorf("error loading solve run: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT state_key, value
		FROM state_values
		WHERE run_id = $1
	`, row.ID)
	if err != nil {
		return Run{}, fmt.Errorf("error loading state values: %w", err)
	}
	defer rows.Close()

	values := make(solver.ValueTable)
	for rows.Next() {
		var key int64
		var value float32
		if err = rows.Scan(&key, &value); err != nil {
			return Run{}, fmt.Errorf("error scanning state value: %w", err)
		}
		values[othello.Key(key)] = value
	}

	if err = rows.Err(); err != nil {
		return Run{}, fmt.Errorf("error iterating state values: %w", err)
	}

	return Run{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		Discount:  row.Discount,
		Tolerance: row.Tolerance,
		Sweeps:    row.Sweeps,
		MaxDelta:  row.MaxDelta,
		Values:    values,
	}, nil
}
