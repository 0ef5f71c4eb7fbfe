package ports

import (
	"context"

	"web-analytics-dashboard/internal/sessions/core/domain"
)

// SessionWriterPort is the write side of the store, used by the seeding tool.
type SessionWriterPort interface {
	// EnsureSchema creates the sessions table when it does not exist.
	EnsureSchema(ctx context.Context) error
	// InsertSessions writes one batch and returns the number of rows written.
	InsertSessions(ctx context.Context, sessions []domain.Session) (int, error)
}
