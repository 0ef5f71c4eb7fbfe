package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"web-analytics-dashboard/internal/config"
)

var ErrConnection = errors.New("postgres connection failed")

// Connect opens the pool and pings it once.
func Connect(ctx context.Context, cfg config.Postgres, logger zerolog.Logger) (*sql.DB, error) {
	logger.Info().Msg("connecting to postgres")

	db, err := sql.Open("postgres", cfg.DSN.Expose())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	logger.Info().Msg("postgres connection established")

	return db, nil
}
