package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"web-analytics-dashboard/internal/sessions/core/domain"
	"web-analytics-dashboard/internal/sessions/core/ports"
)

var ErrInvalidSeed = errors.New("invalid seed input")

var entryPaths = []string{"/", "/pricing", "/blog", "/docs", "/about", "/contact", "/signup"}

type SeedSessionsInput struct {
	Domains   []string
	Count     int
	BatchSize int
	Days      int
}

type SeedSessionsResult struct {
	Inserted int
	Batches  int
}

// SeedSessionsUseCase fills the sessions table with random sessions so the
// dashboard has something to show in development.
type SeedSessionsUseCase struct {
	writer ports.SessionWriterPort
	rand   *rand.Rand
	now    func() time.Time
}

func NewSeedSessionsUseCase(writer ports.SessionWriterPort, rnd *rand.Rand) *SeedSessionsUseCase {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &SeedSessionsUseCase{writer: writer, rand: rnd, now: time.Now}
}

func (uc *SeedSessionsUseCase) Execute(ctx context.Context, in SeedSessionsInput) (SeedSessionsResult, error) {
	var res SeedSessionsResult

	if err := validateSeedInput(in); err != nil {
		return res, err
	}

	to := uc.now().UTC().Truncate(time.Second)
	window := time.Duration(in.Days) * 24 * time.Hour

	batch := make([]domain.Session, 0, in.BatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := uc.writer.InsertSessions(ctx, batch)
		if err != nil {
			return fmt.Errorf("insert batch %d: %w", res.Batches+1, err)
		}
		res.Inserted += n
		res.Batches++
		batch = make([]domain.Session, 0, len(batch))
		return nil
	}

	for range in.Count {
		s, err := uc.randomSession(in.Domains, to, window)
		if err != nil {
			return res, err
		}
		batch = append(batch, s)

		if len(batch) == in.BatchSize {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}

	if err := flush(); err != nil {
		return res, err
	}

	return res, nil
}

func (uc *SeedSessionsUseCase) randomSession(domains []string, to time.Time, window time.Duration) (domain.Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.Session{}, fmt.Errorf("session id: %w", err)
	}

	offset := time.Duration(uc.rand.Int64N(int64(window/time.Second))) * time.Second

	return domain.Session{
		ID:        id,
		Domain:    domains[uc.rand.IntN(len(domains))],
		EntryPath: entryPaths[uc.rand.IntN(len(entryPaths))],
		StartedAt: to.Add(-offset),
		Pageviews: uint16(1 + uc.rand.IntN(20)),
	}, nil
}

func validateSeedInput(in SeedSessionsInput) error {
	if len(in.Domains) == 0 {
		return fmt.Errorf("%w: at least one domain is required", ErrInvalidSeed)
	}
	for _, d := range in.Domains {
		if d == "" {
			return fmt.Errorf("%w: empty domain", ErrInvalidSeed)
		}
	}
	if in.Count <= 0 {
		return fmt.Errorf("%w: count must be > 0", ErrInvalidSeed)
	}
	if in.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be > 0", ErrInvalidSeed)
	}
	if in.Days <= 0 {
		return fmt.Errorf("%w: days must be > 0", ErrInvalidSeed)
	}
	return nil
}
