package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/fortuna/gamecast/internal/projection"
)

// BaselineStore loads baseline priors from Postgres. It is used only during
// startup: the loaded table is immutable afterwards, so the store can be
// closed as soon as the table is built.
type BaselineStore struct {
	conn *sql.DB
}

// NewBaselineStore opens a connection to the priors database.
func NewBaselineStore(dsn string) (*BaselineStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Startup-only workload; keep the pool small.
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &BaselineStore{conn: db}, nil
}

// Close closes the database connection.
func (s *BaselineStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Migrate creates the priors table if it does not exist.
func (s *BaselineStore) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS baseline_projections (
			player_name       TEXT PRIMARY KEY,
			points_per_minute DOUBLE PRECISION NOT NULL CHECK (points_per_minute > 0),
			expected_minutes  INT NOT NULL CHECK (expected_minutes >= 0),
			updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`

	if _, err := s.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create baseline_projections table: %w", err)
	}
	return nil
}

// Seed inserts the built-in priors for any player not already present.
// Existing rows win so operators can tune priors without redeploys.
func (s *BaselineStore) Seed(ctx context.Context) error {
	query := `
		INSERT INTO baseline_projections (player_name, points_per_minute, expected_minutes)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_name) DO NOTHING`

	for name, baseline := range projection.SeedBaselines() {
		if _, err := s.conn.ExecContext(ctx, query, name, baseline.PointsPerMinute, baseline.ExpectedMinutes); err != nil {
			return fmt.Errorf("failed to seed baseline for %s: %w", name, err)
		}
	}
	return nil
}

// LoadBaselines reads every prior into an immutable projection table.
func (s *BaselineStore) LoadBaselines(ctx context.Context) (projection.Table, error) {
	query := `SELECT player_name, points_per_minute, expected_minutes FROM baseline_projections`

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query baselines: %w", err)
	}
	defer rows.Close()

	table := projection.Table{}
	for rows.Next() {
		var name string
		var baseline projection.Baseline
		if err := rows.Scan(&name, &baseline.PointsPerMinute, &baseline.ExpectedMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan baseline row: %w", err)
		}
		table[name] = baseline
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate baselines: %w", err)
	}

	return table, nil
}
