package clickhouse

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/rs/zerolog"

	"web-analytics-dashboard/internal/config"
)

var ErrConnection = errors.New("clickhouse connection failed")

// Connect opens a native connection and pings it. There is no retry: a
// failure here is fatal for the caller.
func Connect(ctx context.Context, cfg config.ClickHouse, logger zerolog.Logger) (driver.Conn, error) {
	var tlsConfig *tls.Config
	if cfg.TLS {
		tlsConfig = &tls.Config{}
	}

	options := &clickhouse.Options{
		Addr: []string{cfg.Addr()},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password.Expose(),
		},
		ClientInfo: clickhouse.ClientInfo{
			Products: []struct {
				Name    string
				Version string
			}{
				{Name: "web-analytics-dashboard"},
			},
		},
		TLS: tlsConfig,
		Debugf: func(format string, v ...any) {
			logger.Debug().Msgf(format, v...)
		},
	}

	logger.Info().
		Str("clickhouse_addr", cfg.Addr()).
		Str("database", cfg.Database).
		Str("username", cfg.Username).
		Msg("connecting to clickhouse")

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	logger.Info().Msg("clickhouse connection established")

	return conn, nil
}
