package ports

import (
	"context"
)

// DomainBlockStream is a cursor over the distinct domains of the store,
// delivered in blocks. Callers must Close it on every path.
type DomainBlockStream interface {
	Next() bool
	Block() []string
	Err() error
	Close() error
}

// SessionReaderPort is the read side of the analytics store used by the dashboard.
type SessionReaderPort interface {
	StreamDomains(ctx context.Context) (DomainBlockStream, error)
	// CountSessions counts sessions whose domain is one of domains. Every
	// domain is bound as a query parameter.
	CountSessions(ctx context.Context, domains []string) (uint64, error)
	Ping(ctx context.Context) error
}
