package usecase

import (
	"context"
	"fmt"
	"slices"

	"web-analytics-dashboard/internal/sessions/core/domain"
	"web-analytics-dashboard/internal/sessions/core/ports"
)

type ListDomainsUseCase struct {
	reader ports.SessionReaderPort
	sorted bool
}

// NewListDomainsUseCase returns a lister keeping the store's arrival order,
// or sorting the domains lexicographically when sorted is true.
func NewListDomainsUseCase(reader ports.SessionReaderPort, sorted bool) *ListDomainsUseCase {
	return &ListDomainsUseCase{reader: reader, sorted: sorted}
}

// Execute streams the distinct domains block by block. The stream is closed
// whether iteration ends normally or fails.
func (uc *ListDomainsUseCase) Execute(ctx context.Context) (set domain.DomainSet, err error) {
	stream, err := uc.reader.StreamDomains(ctx)
	if err != nil {
		return nil, fmt.Errorf("stream domains: %w", err)
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			set, err = nil, fmt.Errorf("close domain stream: %w", cerr)
		}
	}()

	set = domain.DomainSet{}
	seen := domain.Lookup{}
	for stream.Next() {
		for _, d := range stream.Block() {
			if seen.Add(d) {
				set = append(set, d)
			}
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("stream domains: %w", err)
	}

	if uc.sorted {
		slices.Sort(set)
	}

	return set, nil
}
