package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hiking-league/internal/domain/theme"
)

type ThemeRepository struct {
	mu      sync.RWMutex
	byMonth map[int]theme.Theme
}

func NewThemeRepository(items []theme.Theme) *ThemeRepository {
	byMonth := make(map[int]theme.Theme, len(items))
	for _, item := range items {
		byMonth[monthIndex(item.Year, item.Month)] = item
	}
	return &ThemeRepository{byMonth: byMonth}
}

func (r *ThemeRepository) FindActive(_ context.Context, year, month int) (theme.Theme, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byMonth[monthIndex(year, month)]
	if !ok {
		return theme.Theme{}, false, nil
	}
	item.Keywords = append([]string(nil), item.Keywords...)
	return item, true, nil
}

func (r *ThemeRepository) Upsert(_ context.Context, item theme.Theme) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.Keywords = append([]string(nil), item.Keywords...)
	r.byMonth[monthIndex(item.Year, item.Month)] = item
	return nil
}

func monthIndex(year, month int) int {
	return year*100 + month
}
