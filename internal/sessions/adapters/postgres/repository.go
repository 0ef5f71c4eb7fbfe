package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"

	"web-analytics-dashboard/internal/platform/rowstream"
	"web-analytics-dashboard/internal/sessions/core/domain"
	"web-analytics-dashboard/internal/sessions/core/ports"
)

const (
	selectDomainsSQL = `SELECT DISTINCT domain FROM sessions`

	// The whole selection travels as one text[] parameter.
	countSessionsSQL = `SELECT COUNT(*) FROM sessions WHERE domain = ANY($1)`

	createSessionsSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    session_uuid UUID PRIMARY KEY,
    domain TEXT NOT NULL,
    entry_path TEXT NOT NULL,
    started_at TIMESTAMPTZ NOT NULL,
    pageviews INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_domain_idx ON sessions (domain);
`

	insertSessionsSQL = `
INSERT INTO sessions (session_uuid, domain, entry_path, started_at, pageviews)
SELECT * FROM unnest($1::uuid[], $2::text[], $3::text[], $4::timestamptz[], $5::int[])
ON CONFLICT (session_uuid) DO NOTHING;
`
)

type SessionRepository struct {
	db        DB
	blockSize int
}

func NewSessionRepository(db DB, blockSize int) *SessionRepository {
	return &SessionRepository{db: db, blockSize: blockSize}
}

var (
	_ ports.SessionReaderPort = (*SessionRepository)(nil)
	_ ports.SessionWriterPort = (*SessionRepository)(nil)
)

func (r *SessionRepository) StreamDomains(ctx context.Context) (ports.DomainBlockStream, error) {
	rows, err := r.db.QueryContext(ctx, selectDomainsSQL)
	if err != nil {
		return nil, err
	}
	return rowstream.New(rows, r.blockSize), nil
}

func (r *SessionRepository) CountSessions(ctx context.Context, domains []string) (uint64, error) {
	if len(domains) == 0 {
		return 0, nil
	}

	rows, err := r.db.QueryContext(ctx, countSessionsSQL, pq.Array(domains))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, err
		}
	}

	if err := rows.Err(); err != nil {
		return 0, err
	}

	return uint64(count), nil
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SessionRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createSessionsSQL)
	return err
}

func (r *SessionRepository) InsertSessions(ctx context.Context, sessions []domain.Session) (int, error) {
	if len(sessions) == 0 {
		return 0, nil
	}

	ids := make([]string, len(sessions))
	domains := make([]string, len(sessions))
	paths := make([]string, len(sessions))
	startedAt := make([]string, len(sessions))
	pageviews := make([]int64, len(sessions))

	for i, s := range sessions {
		ids[i] = s.ID.String()
		domains[i] = s.Domain
		paths[i] = s.EntryPath
		startedAt[i] = s.StartedAt.UTC().Format(time.RFC3339)
		pageviews[i] = int64(s.Pageviews)
	}

	res, err := r.db.ExecContext(ctx, insertSessionsSQL,
		pq.Array(ids),
		pq.Array(domains),
		pq.Array(paths),
		pq.Array(startedAt),
		pq.Array(pageviews),
	)
	if err != nil {
		return 0, err
	}

	// rows < len(sessions) means some ids already existed (ON CONFLICT DO NOTHING)
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rowsAffected), nil
}
