package postgres

import (
	"context"
	"database/sql"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/domain/visit"
	qb "github.com/riskibarqy/hiking-league/internal/platform/querybuilder"
)

type VisitRepository struct {
	db *sqlx.DB
}

func NewVisitRepository(db *sqlx.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) GetByID(ctx context.Context, id string) (visit.Visit, bool, error) {
	query, args, err := qb.Select(visitColumns...).From("visits").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return visit.Visit{}, false, crerr.Wrap(err, "build get visit by id query")
	}

	var row visitTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return visit.Visit{}, false, nil
		}
		return visit.Visit{}, false, crerr.Wrapf(err, "get visit %s", id)
	}

	item, err := visitFromRow(row)
	if err != nil {
		return visit.Visit{}, false, err
	}
	return item, true, nil
}

func (r *VisitRepository) ListByUser(ctx context.Context, userID string, states []visit.State) ([]visit.Visit, error) {
	query, args, err := qb.Select(visitColumns...).From("visits").
		Where(
			qb.Eq("user_id", userID),
			qb.In("state", statesToStrings(states)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("visit_date", "id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list visits by user query")
	}
	return r.selectVisits(ctx, query, args)
}

func (r *VisitRepository) ListForRecalculation(ctx context.Context, filter visit.RecalculationFilter) ([]visit.Visit, error) {
	conditions := []qb.Condition{
		qb.In("state", statesToStrings(filter.States)),
		qb.IsNull("deleted_at"),
	}
	if filter.Season > 0 {
		conditions = append(conditions, qb.Eq("season", filter.Season))
	}
	if filter.UserID != "" {
		conditions = append(conditions, qb.Eq("user_id", filter.UserID))
	}

	query, args, err := qb.Select(visitColumns...).From("visits").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list visits for recalculation query")
	}
	return r.selectVisits(ctx, query, args)
}

func (r *VisitRepository) UpdateScore(ctx context.Context, id string, points float64, breakdown scoring.Breakdown) error {
	encoded, err := encodeJSON(breakdown)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("visits").
		Set("points", points).
		SetExpr("score_breakdown", "?::jsonb", encoded).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build update visit score query")
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrapf(err, "update score of visit %s", id)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return crerr.Wrap(err, "read affected rows")
	}
	if affected == 0 {
		return crerr.Wrapf(sql.ErrNoRows, "visit %s not found", id)
	}
	return nil
}

// Insert stores a new visit. The scoring core only reads visits; this is used
// by seeding and integration tests.
func (r *VisitRepository) Insert(ctx context.Context, item visit.Visit) error {
	model, err := visitToInsertModel(item)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("visits", model, "")
	if err != nil {
		return crerr.Wrap(err, "build insert visit query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "insert visit %s", item.ID)
	}
	return nil
}

func (r *VisitRepository) selectVisits(ctx context.Context, query string, args []any) ([]visit.Visit, error) {
	var rows []visitTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select visits")
	}

	out := make([]visit.Visit, 0, len(rows))
	for _, row := range rows {
		item, err := visitFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func visitFromRow(row visitTableModel) (visit.Visit, error) {
	item := visit.Visit{
		ID:               row.PublicID,
		UserID:           row.UserID,
		State:            visit.State(row.State),
		VisitDate:        row.VisitDate.UTC(),
		UploadedAt:       row.UploadedAt.UTC(),
		Season:           row.Season,
		RawTrack:         row.Route,
		TotalDistanceKm:  nullFloat64Ptr(row.TotalDistanceKm),
		DurationMinutes:  nullInt32ToIntPtr(row.DurationMinutes),
		Source:           row.Source,
		ActivityType:     row.ActivityType,
		CategoryID:       row.CategoryID.String,
		IsFreeCategory:   row.IsFreeCategory,
		RouteDescription: row.RouteDescription,
		Description:      row.Description,
		Points:           row.Points,
	}

	if err := decodeJSON(row.Places, &item.Places); err != nil {
		return visit.Visit{}, crerr.Wrapf(err, "visit %s places", row.PublicID)
	}
	item.Places = place.NormalizeTypes(item.Places)
	if err := decodeJSON(row.ExtraPoints, &item.ExtraPoints); err != nil {
		return visit.Visit{}, crerr.Wrapf(err, "visit %s extra points", row.PublicID)
	}
	if len(row.ScoreBreakdown) > 0 {
		var breakdown scoring.Breakdown
		if err := decodeJSON(row.ScoreBreakdown, &breakdown); err != nil {
			return visit.Visit{}, crerr.Wrapf(err, "visit %s score breakdown", row.PublicID)
		}
		item.Breakdown = &breakdown
	}
	return item, nil
}

func visitToInsertModel(item visit.Visit) (visitInsertModel, error) {
	places, err := encodeJSON(item.Places)
	if err != nil {
		return visitInsertModel{}, err
	}
	extra := "{}"
	if len(item.ExtraPoints) > 0 {
		if extra, err = encodeJSON(item.ExtraPoints); err != nil {
			return visitInsertModel{}, err
		}
	}

	model := visitInsertModel{
		PublicID:         item.ID,
		UserID:           item.UserID,
		State:            string(item.State),
		VisitDate:        item.VisitDate,
		UploadedAt:       item.UploadedAt,
		Season:           item.Season,
		TotalDistanceKm:  floatPtrToNull(item.TotalDistanceKm),
		DurationMinutes:  intPtrToNull(item.DurationMinutes),
		Source:           item.Source,
		ActivityType:     item.ActivityType,
		CategoryID:       stringToNull(item.CategoryID),
		IsFreeCategory:   item.IsFreeCategory,
		Places:           places,
		RouteDescription: item.RouteDescription,
		Description:      item.Description,
		Points:           item.Points,
		ExtraPoints:      extra,
	}
	if len(item.RawTrack) > 0 {
		model.Route = sql.NullString{String: string(item.RawTrack), Valid: true}
	}
	if item.Breakdown != nil {
		encoded, err := encodeJSON(item.Breakdown)
		if err != nil {
			return visitInsertModel{}, err
		}
		model.ScoreBreakdown = sql.NullString{String: encoded, Valid: true}
	}
	if model.UploadedAt.IsZero() {
		model.UploadedAt = model.VisitDate
	}
	return model, nil
}

func statesToStrings(states []visit.State) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, string(s))
	}
	return out
}
