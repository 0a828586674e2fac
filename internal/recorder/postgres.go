package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"MarketScout/internal/logger"
	"MarketScout/internal/model"
)

// PostgresRecorder persists observations to PostgreSQL.
type PostgresRecorder struct {
	db *sql.DB
}

// NewPostgresRecorder connects to dsn and runs migrations.
func NewPostgresRecorder(dsn string) (*PostgresRecorder, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	r, err := NewPostgresRecorderWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.L().Info().Msg("postgres recorder opened")
	return r, nil
}

// NewPostgresRecorderWithDB wraps an open connection and runs migrations.
func NewPostgresRecorderWithDB(db *sql.DB) (*PostgresRecorder, error) {
	r := &PostgresRecorder{db: db}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *PostgresRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_observations (
			id          BIGSERIAL PRIMARY KEY,
			run_id      TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			price       NUMERIC NOT NULL,
			observed_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_obs_symbol_observed ON price_observations(symbol, observed_at)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *PostgresRecorder) RecordObservation(ctx context.Context, runID string, rec model.SymbolRecord, observedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO price_observations
		(run_id, symbol, price, observed_at)
		VALUES ($1, $2, $3, $4)`,
		runID, rec.Symbol, rec.Price.String(), observedAt.UTC(),
	)
	return err
}

func (r *PostgresRecorder) PriceHistory(ctx context.Context, symbol string, limit int) ([]model.PriceObservation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT price, observed_at FROM (
			SELECT id, price, observed_at FROM price_observations
			WHERE symbol = $1
			ORDER BY observed_at DESC, id DESC
			LIMIT $2
		) recent ORDER BY observed_at ASC, id ASC`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []model.PriceObservation
	for rows.Next() {
		var obs model.PriceObservation
		if err := rows.Scan(&obs.Price, &obs.ObservedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, obs)
	}
	return out, rows.Err()
}

func (r *PostgresRecorder) Close() error {
	logger.L().Info().Msg("closing postgres recorder")
	return r.db.Close()
}
