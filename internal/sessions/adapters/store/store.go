// Package store opens the session repository selected by configuration.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"web-analytics-dashboard/internal/config"
	chrepo "web-analytics-dashboard/internal/sessions/adapters/clickhouse"
	pgrepo "web-analytics-dashboard/internal/sessions/adapters/postgres"
	"web-analytics-dashboard/internal/sessions/core/ports"
)

type Store interface {
	ports.SessionReaderPort
	ports.SessionWriterPort
}

// Open connects to the configured store. The returned close function
// releases the underlying connection pool.
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (Store, func() error, error) {
	switch cfg.Store {
	case config.StoreClickHouse:
		conn, err := chrepo.Connect(ctx, cfg.ClickHouse, logger)
		if err != nil {
			return nil, nil, err
		}
		return chrepo.NewSessionRepository(chrepo.NewConn(conn), cfg.BlockSize), conn.Close, nil

	case config.StorePostgres:
		db, err := pgrepo.Connect(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		return pgrepo.NewSessionRepository(pgrepo.NewSQLDB(db), cfg.BlockSize), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
	}
}
