package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is one row of the sessions table. The dashboard only ever reads
// Domain; the other columns exist for the seeding tool.
type Session struct {
	ID        uuid.UUID
	Domain    string
	EntryPath string
	StartedAt time.Time
	Pageviews uint16
}
