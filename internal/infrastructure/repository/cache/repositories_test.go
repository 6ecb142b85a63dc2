package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/domain/theme"
)

type countingScoringRepo struct {
	calls int
	cfg   scoring.Config
	err   error
}

func (r *countingScoringRepo) GetActiveConfig(context.Context) (scoring.Config, bool, error) {
	r.calls++
	if r.err != nil {
		return scoring.Config{}, false, r.err
	}
	return r.cfg, true, nil
}

type countingThemeRepo struct {
	calls int
}

func (r *countingThemeRepo) FindActive(_ context.Context, year, month int) (theme.Theme, bool, error) {
	r.calls++
	if month != 5 {
		return theme.Theme{}, false, nil
	}
	return theme.Theme{ID: "t", Year: year, Month: month, Keywords: []string{"voda"}}, true, nil
}

func TestScoringRepository_CachesActiveConfig(t *testing.T) {
	t.Parallel()

	next := &countingScoringRepo{cfg: scoring.DefaultConfig()}
	repo := NewScoringRepository(next, time.Minute)

	for i := 0; i < 3; i++ {
		cfg, ok, err := repo.GetActiveConfig(context.Background())
		if err != nil || !ok {
			t.Fatalf("expected config, ok=%v err=%v", ok, err)
		}
		cfg.PlaceTypePoints["PEAK"] = 100
	}
	if next.calls != 1 {
		t.Fatalf("unexpected loader calls: got=%d want=1", next.calls)
	}

	cfg, _, _ := repo.GetActiveConfig(context.Background())
	if cfg.PlaceTypePoints["PEAK"] != 2 {
		t.Fatalf("cached config was mutated: got=%v want=2", cfg.PlaceTypePoints["PEAK"])
	}

	repo.Invalidate()
	_, _, _ = repo.GetActiveConfig(context.Background())
	if next.calls != 2 {
		t.Fatalf("unexpected loader calls after invalidate: got=%d want=2", next.calls)
	}
}

func TestScoringRepository_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	next := &countingScoringRepo{err: errors.New("db down")}
	repo := NewScoringRepository(next, time.Minute)

	for i := 0; i < 2; i++ {
		if _, _, err := repo.GetActiveConfig(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
	}
	if next.calls != 2 {
		t.Fatalf("unexpected loader calls: got=%d want=2", next.calls)
	}
}

func TestThemeRepository_CachesMissesPerMonth(t *testing.T) {
	t.Parallel()

	next := &countingThemeRepo{}
	repo := NewThemeRepository(next, time.Minute)
	ctx := context.Background()

	if _, ok, _ := repo.FindActive(ctx, 2025, 5); !ok {
		t.Fatalf("expected theme for 2025-05")
	}
	if _, ok, _ := repo.FindActive(ctx, 2025, 6); ok {
		t.Fatalf("expected no theme for 2025-06")
	}
	_, _, _ = repo.FindActive(ctx, 2025, 5)
	_, _, _ = repo.FindActive(ctx, 2025, 6)

	if next.calls != 2 {
		t.Fatalf("unexpected loader calls: got=%d want=2", next.calls)
	}
}
