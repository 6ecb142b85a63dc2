package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/domain/theme"
	basecache "github.com/riskibarqy/hiking-league/internal/platform/cache"
)

const scoringActiveKey = "scoring:active"

type cachedConfig struct {
	value  scoring.Config
	exists bool
}

// ScoringRepository caches the active scoring config. A recalculation run reads
// it once, so the TTL only bounds how stale a single-visit rescore can be.
type ScoringRepository struct {
	next  scoring.Repository
	cache *basecache.Store[cachedConfig]
}

func NewScoringRepository(next scoring.Repository, ttl time.Duration) *ScoringRepository {
	return &ScoringRepository{next: next, cache: basecache.NewStore[cachedConfig](ttl)}
}

func (r *ScoringRepository) GetActiveConfig(ctx context.Context) (scoring.Config, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, scoringActiveKey, func(ctx context.Context) (cachedConfig, error) {
		cfg, exists, err := r.next.GetActiveConfig(ctx)
		if err != nil {
			return cachedConfig{}, err
		}
		return cachedConfig{value: cfg, exists: exists}, nil
	})
	if err != nil {
		return scoring.Config{}, false, err
	}
	return cloneConfig(cached.value), cached.exists, nil
}

func (r *ScoringRepository) Invalidate() {
	r.cache.Invalidate(scoringActiveKey)
}

type cachedTheme struct {
	value  theme.Theme
	exists bool
}

type ThemeRepository struct {
	next  theme.Repository
	cache *basecache.Store[cachedTheme]
}

func NewThemeRepository(next theme.Repository, ttl time.Duration) *ThemeRepository {
	return &ThemeRepository{next: next, cache: basecache.NewStore[cachedTheme](ttl)}
}

func (r *ThemeRepository) FindActive(ctx context.Context, year, month int) (theme.Theme, bool, error) {
	key := fmt.Sprintf("theme:%04d-%02d", year, month)
	cached, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedTheme, error) {
		item, exists, err := r.next.FindActive(ctx, year, month)
		if err != nil {
			return cachedTheme{}, err
		}
		return cachedTheme{value: item, exists: exists}, nil
	})
	if err != nil {
		return theme.Theme{}, false, err
	}

	item := cached.value
	item.Keywords = append([]string(nil), item.Keywords...)
	return item, cached.exists, nil
}

func (r *ThemeRepository) Invalidate() {
	r.cache.InvalidatePrefix("theme:")
}

func cloneConfig(cfg scoring.Config) scoring.Config {
	out := cfg
	if cfg.PlaceTypePoints != nil {
		out.PlaceTypePoints = make(map[place.Type]float64, len(cfg.PlaceTypePoints))
		for k, v := range cfg.PlaceTypePoints {
			out.PlaceTypePoints[k] = v
		}
	}
	return out
}
