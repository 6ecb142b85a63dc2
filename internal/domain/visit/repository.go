package visit

import (
	"context"

	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
)

// RecalculationFilter selects stored visits for a recalculation run.
// Season 0 means every season; an empty UserID means every user.
type RecalculationFilter struct {
	States []State
	Season int
	UserID string
}

// Repository never returns soft-deleted visits.
type Repository interface {
	GetByID(ctx context.Context, id string) (Visit, bool, error)
	ListByUser(ctx context.Context, userID string, states []State) ([]Visit, error)
	ListForRecalculation(ctx context.Context, filter RecalculationFilter) ([]Visit, error)
	UpdateScore(ctx context.Context, id string, points float64, breakdown scoring.Breakdown) error
}
