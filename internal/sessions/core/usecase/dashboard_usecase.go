package usecase

import (
	"context"

	"web-analytics-dashboard/internal/sessions/core/domain"
)

type DomainLister interface {
	Execute(ctx context.Context) (domain.DomainSet, error)
}

type SessionCounter interface {
	Execute(ctx context.Context, sel domain.Selection) (uint64, error)
}

type DashboardInput struct {
	// Selection holds the domains submitted by the widget.
	Selection []string
	// Submitted is false on the first visit, when the widget has not been
	// touched yet and every domain is selected.
	Submitted bool
}

// DashboardUseCase runs one full render pass: list, select, count.
type DashboardUseCase struct {
	lister  DomainLister
	counter SessionCounter
}

func NewDashboardUseCase(lister DomainLister, counter SessionCounter) *DashboardUseCase {
	return &DashboardUseCase{lister: lister, counter: counter}
}

func (uc *DashboardUseCase) Execute(ctx context.Context, in DashboardInput) (*domain.Dashboard, error) {
	domains, err := uc.lister.Execute(ctx)
	if err != nil {
		return nil, err
	}

	var sel domain.Selection
	if in.Submitted {
		sel = domains.Restrict(in.Selection)
	} else {
		sel = domain.DefaultSelection(domains)
	}

	count, err := uc.Render(ctx, sel)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Domains:   domains,
		Selection: sel,
		Count:     count,
	}, nil
}

// Render maps a selection to its session count. It holds no state between
// calls.
func (uc *DashboardUseCase) Render(ctx context.Context, sel domain.Selection) (uint64, error) {
	return uc.counter.Execute(ctx, sel)
}
