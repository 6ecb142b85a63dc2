package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	qb "github.com/riskibarqy/hiking-league/internal/platform/querybuilder"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) GetActiveConfig(ctx context.Context) (scoring.Config, bool, error) {
	query, args, err := qb.Select("*").From("scoring_configs").
		Where(
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("updated_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return scoring.Config{}, false, crerr.Wrap(err, "build get active scoring config query")
	}

	var row scoringConfigTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Config{}, false, nil
		}
		return scoring.Config{}, false, crerr.Wrap(err, "get active scoring config")
	}

	points := make(map[place.Type]float64)
	if err := decodeJSON(row.PlaceTypePoints, &points); err != nil {
		return scoring.Config{}, false, crerr.Wrapf(err, "scoring config %s place type points", row.PublicID)
	}

	return scoring.Config{
		ID:                     row.PublicID,
		Version:                row.Version,
		PointsPerKm:            row.PointsPerKm,
		MinDistanceKm:          row.MinDistanceKm,
		RequireAtLeastOnePlace: row.RequireAtLeastOnePlace,
		PlaceTypePoints:        points,
		Active:                 row.IsActive,
		UpdatedAt:              row.UpdatedAt.UTC(),
	}, true, nil
}

// ActivateConfig stores cfg and makes it the only active config.
func (r *ScoringRepository) ActivateConfig(ctx context.Context, cfg scoring.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	points, err := encodeJSON(cfg.PlaceTypePoints)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin activate scoring config")
	}
	defer func() { _ = tx.Rollback() }()

	deactivate, args, err := qb.Update("scoring_configs").
		Set("is_active", false).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("is_active", true)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build deactivate scoring configs query")
	}
	if _, err := tx.ExecContext(ctx, deactivate, args...); err != nil {
		return crerr.Wrap(err, "deactivate scoring configs")
	}

	insert, args, err := qb.InsertModel("scoring_configs", scoringConfigInsertModel{
		PublicID:               cfg.ID,
		Version:                cfg.Version,
		PointsPerKm:            cfg.PointsPerKm,
		MinDistanceKm:          cfg.MinDistanceKm,
		RequireAtLeastOnePlace: cfg.RequireAtLeastOnePlace,
		PlaceTypePoints:        points,
		IsActive:               true,
	}, "ON CONFLICT (public_id) DO UPDATE SET is_active = TRUE, updated_at = NOW()")
	if err != nil {
		return crerr.Wrap(err, "build insert scoring config query")
	}
	if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
		return crerr.Wrapf(err, "insert scoring config %s", cfg.ID)
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit activate scoring config")
	}
	return nil
}
