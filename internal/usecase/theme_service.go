package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/theme"
)

type ThemeService struct {
	repo theme.Repository
}

func NewThemeService(repo theme.Repository) *ThemeService {
	return &ThemeService{repo: repo}
}

// CalculateThemeBonus awards the flat monthly bonus when any keyword of the theme
// active in the visit's month appears in the places or route description.
func (s *ThemeService) CalculateThemeBonus(
	ctx context.Context,
	visitDate time.Time,
	places []place.Place,
	routeDescription string,
) (theme.Bonus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ThemeService.CalculateThemeBonus")
	defer span.End()

	none := theme.Bonus{MatchedKeywords: []string{}}
	if visitDate.IsZero() || s.repo == nil {
		return none, nil
	}

	date := visitDate.UTC()
	active, exists, err := s.repo.FindActive(ctx, date.Year(), int(date.Month()))
	if err != nil {
		return theme.Bonus{}, fmt.Errorf("find theme for %s: %w", date.Format("2006-01"), err)
	}
	if !exists {
		return none, nil
	}
	return theme.Match(active, places, routeDescription), nil
}
