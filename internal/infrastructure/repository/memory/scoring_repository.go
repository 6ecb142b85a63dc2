package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
)

type ScoringRepository struct {
	mu     sync.RWMutex
	config *scoring.Config
}

// NewScoringRepository starts with cfg active; nil starts empty.
func NewScoringRepository(cfg *scoring.Config) *ScoringRepository {
	r := &ScoringRepository{}
	if cfg != nil {
		stored := cloneConfig(*cfg)
		r.config = &stored
	}
	return r
}

func (r *ScoringRepository) GetActiveConfig(_ context.Context) (scoring.Config, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.config == nil {
		return scoring.Config{}, false, nil
	}
	return cloneConfig(*r.config), true, nil
}

func (r *ScoringRepository) ActivateConfig(_ context.Context, cfg scoring.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneConfig(cfg)
	stored.Active = true
	r.config = &stored
	return nil
}

func cloneConfig(cfg scoring.Config) scoring.Config {
	out := cfg
	out.PlaceTypePoints = make(map[place.Type]float64, len(cfg.PlaceTypePoints))
	for k, v := range cfg.PlaceTypePoints {
		out.PlaceTypePoints[k] = v
	}
	return out
}
