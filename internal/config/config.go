package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

const (
	StoreClickHouse = "clickhouse"
	StorePostgres   = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	HTTPAddr    string `env:"DASHBOARD_HTTP_ADDR" envDefault:":8080"`
	Store       string `env:"DASHBOARD_STORE" envDefault:"clickhouse"`
	SortDomains bool   `env:"DASHBOARD_SORT_DOMAINS" envDefault:"false"`
	BlockSize   int    `env:"DASHBOARD_BLOCK_SIZE" envDefault:"1000"`
	LogLevel    string `env:"DASHBOARD_LOG_LEVEL" envDefault:"info"`

	ClickHouse ClickHouse `envPrefix:"CLICKHOUSE_"`
	Postgres   Postgres   `envPrefix:"POSTGRES_"`
}

// ClickHouse defaults mirror the clickhouse-go client defaults.
type ClickHouse struct {
	Username string `env:"USERNAME" envDefault:"default"`
	Password Secret `env:"PASSWORD"`
	Database string `env:"DATABASE" envDefault:"default"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     uint16 `env:"PORT" envDefault:"9000"`
	TLS      bool   `env:"TLS" envDefault:"false"`
}

// Addr returns the host:port pair dialed by the native protocol.
func (c ClickHouse) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

type Postgres struct {
	DSN Secret `env:"DSN"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreClickHouse:
		if c.ClickHouse.Host == "" {
			return fmt.Errorf("%w: CLICKHOUSE_HOST is empty", ErrInvalidConfig)
		}
		if c.ClickHouse.Port == 0 {
			return fmt.Errorf("%w: CLICKHOUSE_PORT must be > 0", ErrInvalidConfig)
		}
	case StorePostgres:
		if c.Postgres.DSN.IsZero() {
			return fmt.Errorf("%w: POSTGRES_DSN is not set", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}

	if c.BlockSize < 1 {
		return fmt.Errorf("%w: DASHBOARD_BLOCK_SIZE must be >= 1", ErrInvalidConfig)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: DASHBOARD_LOG_LEVEL: %v", ErrInvalidConfig, err)
	}

	return nil
}
