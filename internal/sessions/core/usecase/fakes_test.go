package usecase_test

import (
	"context"

	"web-analytics-dashboard/internal/sessions/core/domain"
	"web-analytics-dashboard/internal/sessions/core/ports"
)

// fakeStream serves the given blocks and records Close calls.
type fakeStream struct {
	blocks   [][]string
	i        int
	err      error
	closeErr error
	closed   int
}

func (s *fakeStream) Next() bool {
	if s.i >= len(s.blocks) {
		return false
	}
	s.i++
	return true
}

func (s *fakeStream) Block() []string { return s.blocks[s.i-1] }
func (s *fakeStream) Err() error      { return s.err }
func (s *fakeStream) Close() error    { s.closed++; return s.closeErr }

// fakeReader implements ports.SessionReaderPort on top of an in-memory
// domain -> sessions table.
type fakeReader struct {
	StreamFn func(ctx context.Context) (ports.DomainBlockStream, error)
	CountFn  func(ctx context.Context, domains []string) (uint64, error)

	sessions    map[string]uint64
	order       []string
	lastDomains []string
	countCalls  int
	streams     []*fakeStream
}

func newTableReader(order []string, sessions map[string]uint64) *fakeReader {
	return &fakeReader{order: order, sessions: sessions}
}

func (f *fakeReader) StreamDomains(ctx context.Context) (ports.DomainBlockStream, error) {
	if f.StreamFn != nil {
		return f.StreamFn(ctx)
	}
	s := &fakeStream{}
	for _, d := range f.order {
		s.blocks = append(s.blocks, []string{d})
	}
	f.streams = append(f.streams, s)
	return s, nil
}

func (f *fakeReader) CountSessions(ctx context.Context, domains []string) (uint64, error) {
	f.countCalls++
	f.lastDomains = domains
	if f.CountFn != nil {
		return f.CountFn(ctx, domains)
	}
	var total uint64
	for _, d := range domains {
		total += f.sessions[d]
	}
	return total, nil
}

func (f *fakeReader) Ping(ctx context.Context) error { return nil }

func (f *fakeReader) total() uint64 {
	var total uint64
	for _, n := range f.sessions {
		total += n
	}
	return total
}

// fakeWriter implements ports.SessionWriterPort.
type fakeWriter struct {
	InsertFn func(ctx context.Context, sessions []domain.Session) (int, error)
	batches  [][]domain.Session
}

func (f *fakeWriter) EnsureSchema(ctx context.Context) error { return nil }

func (f *fakeWriter) InsertSessions(ctx context.Context, sessions []domain.Session) (int, error) {
	f.batches = append(f.batches, sessions)
	if f.InsertFn != nil {
		return f.InsertFn(ctx, sessions)
	}
	return len(sessions), nil
}
