package clickhouse

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"web-analytics-dashboard/internal/platform/rowstream"
)

type Row interface {
	Scan(dest ...any) error
	Err() error
}

type Batch interface {
	Append(v ...any) error
	Send() error
	Abort() error
}

// Conn is the part of driver.Conn the repositories need.
type Conn interface {
	Query(ctx context.Context, query string, args ...any) (rowstream.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Exec(ctx context.Context, query string, args ...any) error
	PrepareBatch(ctx context.Context, query string) (Batch, error)
	Ping(ctx context.Context) error
}

type chConn struct {
	conn driver.Conn
}

func NewConn(conn driver.Conn) Conn {
	return &chConn{conn: conn}
}

func (c *chConn) Query(ctx context.Context, query string, args ...any) (rowstream.Rows, error) {
	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *chConn) QueryRow(ctx context.Context, query string, args ...any) Row {
	return c.conn.QueryRow(ctx, query, args...)
}

func (c *chConn) Exec(ctx context.Context, query string, args ...any) error {
	return c.conn.Exec(ctx, query, args...)
}

func (c *chConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	batch, err := c.conn.PrepareBatch(ctx, query)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (c *chConn) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}
