package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/config"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories need, so the same
// repository runs either autocommit or inside a caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// Connect opens the PostgreSQL store with OpenTelemetry instrumentation.
func Connect(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	attrs := otelsql.WithAttributes(
		semconv.DBSystemPostgreSQL,
		semconv.DBName(cfg.DBName),
	)

	db, err := otelsql.Open("postgres", cfg.DSN(), attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := otelsql.RegisterDBStatsMetrics(db, attrs); err != nil {
		logger.Warn().Err(err).Msg("failed to register database stats metrics")
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	logger.Info().
		Str("host", cfg.DBHost).
		Str("database", cfg.DBName).
		Str("timezone", cfg.DBTimezone).
		Msg("connected to PostgreSQL")
	return db, nil
}
