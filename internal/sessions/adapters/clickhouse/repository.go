package clickhouse

import (
	"context"
	"strings"

	"web-analytics-dashboard/internal/platform/rowstream"
	"web-analytics-dashboard/internal/sessions/core/domain"
	"web-analytics-dashboard/internal/sessions/core/ports"
)

const (
	selectDomainsSQL = `SELECT DISTINCT domain FROM sessions`

	createSessionsSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    session_uuid UUID,
    domain String,
    entry_path String,
    started_at DateTime('UTC'),
    pageviews UInt16
)
ENGINE = MergeTree
ORDER BY (domain, started_at)`

	insertSessionsSQL = `INSERT INTO sessions (session_uuid, domain, entry_path, started_at, pageviews)`
)

type SessionRepository struct {
	conn      Conn
	blockSize int
}

func NewSessionRepository(conn Conn, blockSize int) *SessionRepository {
	return &SessionRepository{conn: conn, blockSize: blockSize}
}

var (
	_ ports.SessionReaderPort = (*SessionRepository)(nil)
	_ ports.SessionWriterPort = (*SessionRepository)(nil)
)

func (r *SessionRepository) StreamDomains(ctx context.Context) (ports.DomainBlockStream, error) {
	rows, err := r.conn.Query(ctx, selectDomainsSQL)
	if err != nil {
		return nil, err
	}
	return rowstream.New(rows, r.blockSize), nil
}

func (r *SessionRepository) CountSessions(ctx context.Context, domains []string) (uint64, error) {
	if len(domains) == 0 {
		return 0, nil
	}

	query, args := countSessionsQuery(domains)

	var count uint64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.conn.Ping(ctx)
}

func (r *SessionRepository) EnsureSchema(ctx context.Context) error {
	return r.conn.Exec(ctx, createSessionsSQL)
}

func (r *SessionRepository) InsertSessions(ctx context.Context, sessions []domain.Session) (int, error) {
	if len(sessions) == 0 {
		return 0, nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertSessionsSQL)
	if err != nil {
		return 0, err
	}

	for _, s := range sessions {
		if err := batch.Append(s.ID, s.Domain, s.EntryPath, s.StartedAt, s.Pageviews); err != nil {
			_ = batch.Abort()
			return 0, err
		}
	}

	if err := batch.Send(); err != nil {
		return 0, err
	}

	return len(sessions), nil
}

// countSessionsQuery binds one placeholder per domain, so a value holding
// quotes or commas stays a single literal.
func countSessionsQuery(domains []string) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(domains))

	b.WriteString("SELECT count() FROM sessions WHERE domain IN (")
	for i, d := range domains {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("?")
		args = append(args, d)
	}
	b.WriteString(")")

	return b.String(), args
}
