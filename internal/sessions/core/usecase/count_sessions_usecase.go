package usecase

import (
	"context"
	"fmt"

	"web-analytics-dashboard/internal/sessions/core/domain"
	"web-analytics-dashboard/internal/sessions/core/ports"
)

type CountSessionsUseCase struct {
	reader ports.SessionReaderPort
}

func NewCountSessionsUseCase(reader ports.SessionReaderPort) *CountSessionsUseCase {
	return &CountSessionsUseCase{reader: reader}
}

// Execute counts the sessions of the selected domains. An empty selection
// counts 0 and never reaches the store.
func (uc *CountSessionsUseCase) Execute(ctx context.Context, sel domain.Selection) (uint64, error) {
	if len(sel) == 0 {
		return 0, nil
	}

	count, err := uc.reader.CountSessions(ctx, sel)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}

	return count, nil
}
