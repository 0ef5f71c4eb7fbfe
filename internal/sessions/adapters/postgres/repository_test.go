package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"web-analytics-dashboard/internal/sessions/core/domain"
)

// fakeRowScanner implements RowScanner for tests.
type fakeRowScanner struct {
	rows   []fakeRow
	i      int
	err    error
	closed bool
}

type fakeRow struct {
	values []any
}

func (f *fakeRowScanner) Next() bool {
	return f.i < len(f.rows)
}

func (f *fakeRowScanner) Scan(dest ...any) error {
	if f.i >= len(f.rows) {
		return errors.New("no more rows")
	}
	row := f.rows[f.i]
	if len(dest) != len(row.values) {
		return errors.New("dest length mismatch")
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *int64:
			v, ok := row.values[i].(int64)
			if !ok {
				return errors.New("type assertion to int64 failed")
			}
			*d = v
		case *string:
			v, ok := row.values[i].(string)
			if !ok {
				return errors.New("type assertion to string failed")
			}
			*d = v
		default:
			return errors.New("unsupported dest type")
		}
	}
	f.i++
	return nil
}

func (f *fakeRowScanner) Err() error {
	return f.err
}

func (f *fakeRowScanner) Close() error {
	f.closed = true
	return nil
}

type fakeResult struct {
	rows int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

// fakeDB implements DB interface.
type fakeDB struct {
	QueryFn   func(ctx context.Context, query string, args ...any) (RowScanner, error)
	ExecFn    func(ctx context.Context, query string, args ...any) (sql.Result, error)
	lastQuery string
	lastArgs  []any
	called    bool
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	f.called = true
	f.lastQuery = query
	f.lastArgs = args
	if f.QueryFn != nil {
		return f.QueryFn(ctx, query, args...)
	}
	return nil, nil
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.called = true
	f.lastQuery = query
	f.lastArgs = args
	if f.ExecFn != nil {
		return f.ExecFn(ctx, query, args...)
	}
	return fakeResult{}, nil
}

func (f *fakeDB) PingContext(ctx context.Context) error {
	return nil
}

func stringRows(values ...string) *fakeRowScanner {
	s := &fakeRowScanner{}
	for _, v := range values {
		s.rows = append(s.rows, fakeRow{values: []any{v}})
	}
	return s
}

// arrayValue returns what lib/pq sends for a pq.Array argument.
func arrayValue(t *testing.T, arg any) string {
	t.Helper()
	valuer, ok := arg.(driver.Valuer)
	if !ok {
		t.Fatalf("expected a driver.Valuer argument, got %T", arg)
	}
	v, err := valuer.Value()
	if err != nil {
		t.Fatalf("unexpected valuer error: %v", err)
	}
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string array literal, got %T", v)
	}
	return s
}

// ------------------------------------------------------------
// STREAM DOMAINS
// ------------------------------------------------------------

func TestSessionRepository_StreamDomains(t *testing.T) {
	rows := stringRows("a.com", "b.com", "c.com")
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return rows, nil
		},
	}

	repo := NewSessionRepository(db, 2)

	stream, err := repo.StreamDomains(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.lastQuery != selectDomainsSQL {
		t.Fatalf("unexpected query: %s", db.lastQuery)
	}

	var got []string
	blocks := 0
	for stream.Next() {
		blocks++
		got = append(got, stream.Block()...)
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	if blocks != 2 {
		t.Fatalf("expected 2 blocks, got %d", blocks)
	}
	if strings.Join(got, ",") != "a.com,b.com,c.com" {
		t.Fatalf("unexpected domains: %v", got)
	}
	if !rows.closed {
		t.Fatalf("expected rows to be closed")
	}
}

func TestSessionRepository_StreamDomainsError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return nil, errors.New("db failure")
		},
	}

	stream, err := NewSessionRepository(db, 10).StreamDomains(context.Background())
	if err == nil || err.Error() != "db failure" {
		t.Fatalf("expected db failure, got %v", err)
	}
	if stream != nil {
		t.Fatalf("expected nil stream on error")
	}
}

// ------------------------------------------------------------
// COUNT SESSIONS
// ------------------------------------------------------------

func TestSessionRepository_CountSessions(t *testing.T) {
	rows := &fakeRowScanner{rows: []fakeRow{{values: []any{int64(8)}}}}
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return rows, nil
		},
	}

	count, err := NewSessionRepository(db, 10).CountSessions(context.Background(), []string{"a.com", "b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 8 {
		t.Fatalf("expected 8, got %d", count)
	}
	if db.lastQuery != countSessionsSQL {
		t.Fatalf("unexpected query: %s", db.lastQuery)
	}
	if len(db.lastArgs) != 1 {
		t.Fatalf("expected one array argument, got %d", len(db.lastArgs))
	}
	if got := arrayValue(t, db.lastArgs[0]); got != `{"a.com","b.com"}` {
		t.Fatalf("unexpected array literal %s", got)
	}
	if !rows.closed {
		t.Fatalf("expected rows to be closed")
	}
}

func TestSessionRepository_CountSessionsQuotedDomain(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{rows: []fakeRow{{values: []any{int64(1)}}}}, nil
		},
	}

	_, err := NewSessionRepository(db, 10).CountSessions(context.Background(), []string{"x', 'y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(db.lastQuery, "x'") {
		t.Fatalf("domain leaked into the query text: %s", db.lastQuery)
	}

	var back pq.StringArray
	if err := back.Scan(arrayValue(t, db.lastArgs[0])); err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	if len(back) != 1 || back[0] != "x', 'y" {
		t.Fatalf("expected a single literal element, got %q", back)
	}
}

func TestSessionRepository_CountSessionsEmpty(t *testing.T) {
	db := &fakeDB{}

	count, err := NewSessionRepository(db, 10).CountSessions(context.Background(), []string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}
	if db.called {
		t.Fatalf("db should not be called for an empty selection")
	}
}

func TestSessionRepository_CountSessionsDBError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return nil, errors.New("db failure")
		},
	}

	_, err := NewSessionRepository(db, 10).CountSessions(context.Background(), []string{"a.com"})
	if err == nil || err.Error() != "db failure" {
		t.Fatalf("expected db failure, got %v", err)
	}
}

func TestSessionRepository_CountSessionsRowsError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{err: errors.New("connection reset")}, nil
		},
	}

	_, err := NewSessionRepository(db, 10).CountSessions(context.Background(), []string{"a.com"})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

// ------------------------------------------------------------
// WRITER
// ------------------------------------------------------------

func TestSessionRepository_InsertSessions(t *testing.T) {
	started := time.Date(2025, 12, 7, 10, 0, 0, 0, time.UTC)
	sessions := []domain.Session{
		{ID: uuid.New(), Domain: "a.com", EntryPath: "/", StartedAt: started, Pageviews: 2},
		{ID: uuid.New(), Domain: "b.com", EntryPath: "/docs", StartedAt: started, Pageviews: 5},
	}

	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "unnest(") {
				t.Fatalf("expected unnest insert, got: %s", query)
			}
			if len(args) != 5 {
				t.Fatalf("expected 5 array args, got %d", len(args))
			}
			return fakeResult{rows: 2}, nil
		},
	}

	n, err := NewSessionRepository(db, 10).InsertSessions(context.Background(), sessions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}
	if got := arrayValue(t, db.lastArgs[1]); got != `{"a.com","b.com"}` {
		t.Fatalf("unexpected domains literal %s", got)
	}
	if got := arrayValue(t, db.lastArgs[4]); got != `{2,5}` {
		t.Fatalf("unexpected pageviews literal %s", got)
	}
}

func TestSessionRepository_InsertSessionsDuplicate(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return fakeResult{rows: 0}, nil
		},
	}

	n, err := NewSessionRepository(db, 10).InsertSessions(context.Background(), []domain.Session{{ID: uuid.New(), Domain: "a.com"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows for an existing id, got %d", n)
	}
}

func TestSessionRepository_EnsureSchema(t *testing.T) {
	db := &fakeDB{}

	if err := NewSessionRepository(db, 10).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.lastQuery, "CREATE TABLE IF NOT EXISTS sessions") {
		t.Fatalf("unexpected query: %s", db.lastQuery)
	}
}
