package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/domain/visit"
)

type ScoringService struct {
	themes *ThemeService
	now    func() time.Time
}

func NewScoringService(themes *ThemeService) *ScoringService {
	return &ScoringService{
		themes: themes,
		now:    time.Now,
	}
}

// CalculatePoints scores a route against cfg. The theme bonus is resolved for the
// visit's month; everything else is the pure calculation.
func (s *ScoringService) CalculatePoints(
	ctx context.Context,
	route visit.RouteData,
	places []place.Place,
	cfg scoring.Config,
) (scoring.Breakdown, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.CalculatePoints")
	defer span.End()

	if err := cfg.Validate(); err != nil {
		return scoring.Breakdown{}, err
	}

	bonus := scoring.ThemeBonus{MatchedKeywords: []string{}}
	if s.themes != nil {
		matched, err := s.themes.CalculateThemeBonus(ctx, route.VisitDate, places, route.RouteDescription)
		if err != nil {
			return scoring.Breakdown{}, fmt.Errorf("resolve theme bonus: %w", err)
		}
		bonus = scoring.ThemeBonus{Points: matched.Points, MatchedKeywords: matched.MatchedKeywords}
	}

	return scoring.Calculate(scoring.Input{
		TotalDistanceKm: route.TotalDistanceKm,
		Track:           route.Track,
		Places:          places,
	}, cfg, bonus, s.now())
}
