// Package rowstream turns a single-column driver cursor into a stream of
// fixed-size blocks of strings.
package rowstream

// Rows is the subset of *sql.Rows and clickhouse driver.Rows used here.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// BlockStream reads one string column from rows, at most size values per
// block. It owns rows: Close releases them and is safe to call more than once.
type BlockStream struct {
	rows   Rows
	size   int
	block  []string
	err    error
	closed bool
}

func New(rows Rows, size int) *BlockStream {
	if size < 1 {
		size = 1
	}
	return &BlockStream{rows: rows, size: size}
}

// Next fills the next block. It returns false once the cursor is exhausted
// or an error occurred; check Err afterwards.
func (s *BlockStream) Next() bool {
	if s.closed || s.err != nil {
		return false
	}

	block := make([]string, 0, s.size)
	for len(block) < s.size && s.rows.Next() {
		var v string
		if err := s.rows.Scan(&v); err != nil {
			s.err = err
			return false
		}
		block = append(block, v)
	}

	if len(block) == 0 {
		s.err = s.rows.Err()
		s.block = nil
		return false
	}

	s.block = block
	return true
}

// Block returns the block filled by the last successful Next call.
func (s *BlockStream) Block() []string {
	return s.block
}

func (s *BlockStream) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.rows.Err()
}

func (s *BlockStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.rows.Close()
}
