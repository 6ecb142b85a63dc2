package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed installs the default scoring config and demo data into an empty
// database. It is a no-op once any scoring config exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM scoring_configs WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count scoring configs for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := NewScoringRepository(db).ActivateConfig(ctx, scoring.DefaultConfig()); err != nil {
		return fmt.Errorf("seed scoring config: %w", err)
	}

	themes := NewThemeRepository(db)
	for _, item := range memory.SeedThemes() {
		if err := themes.Upsert(ctx, item); err != nil {
			return fmt.Errorf("seed theme %s: %w", item.ID, err)
		}
	}

	visits := NewVisitRepository(db)
	for _, item := range memory.SeedVisits() {
		if err := visits.Insert(ctx, item); err != nil {
			return fmt.Errorf("seed visit %s: %w", item.ID, err)
		}
	}
	return nil
}
