package postgres

import (
	"database/sql"
	"time"
)

type visitTableModel struct {
	ID               int64           `db:"id"`
	PublicID         string          `db:"public_id"`
	UserID           string          `db:"user_id"`
	State            string          `db:"state"`
	VisitDate        time.Time       `db:"visit_date"`
	UploadedAt       time.Time       `db:"uploaded_at"`
	Season           int             `db:"season"`
	Route            []byte          `db:"route"`
	TotalDistanceKm  sql.NullFloat64 `db:"total_distance_km"`
	DurationMinutes  sql.NullInt32   `db:"duration_minutes"`
	Source           string          `db:"source"`
	ActivityType     string          `db:"activity_type"`
	CategoryID       sql.NullString  `db:"category_id"`
	IsFreeCategory   bool            `db:"is_free_category"`
	Places           []byte          `db:"places"`
	RouteDescription string          `db:"route_description"`
	Description      string          `db:"description"`
	Points           float64         `db:"points"`
	ScoreBreakdown   []byte          `db:"score_breakdown"`
	ExtraPoints      []byte          `db:"extra_points"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
	DeletedAt        *time.Time      `db:"deleted_at"`
}

// visitInsertModel is used by seeding and integration tests.
type visitInsertModel struct {
	PublicID         string          `db:"public_id"`
	UserID           string          `db:"user_id"`
	State            string          `db:"state"`
	VisitDate        time.Time       `db:"visit_date"`
	UploadedAt       time.Time       `db:"uploaded_at"`
	Season           int             `db:"season"`
	Route            sql.NullString  `db:"route"`
	TotalDistanceKm  sql.NullFloat64 `db:"total_distance_km"`
	DurationMinutes  sql.NullInt32   `db:"duration_minutes"`
	Source           string          `db:"source"`
	ActivityType     string          `db:"activity_type"`
	CategoryID       sql.NullString  `db:"category_id"`
	IsFreeCategory   bool            `db:"is_free_category"`
	Places           string          `db:"places"`
	RouteDescription string          `db:"route_description"`
	Description      string          `db:"description"`
	Points           float64         `db:"points"`
	ScoreBreakdown   sql.NullString  `db:"score_breakdown"`
	ExtraPoints      string          `db:"extra_points"`
}

var visitColumns = []string{
	"id", "public_id", "user_id", "state", "visit_date", "uploaded_at", "season",
	"route", "total_distance_km", "duration_minutes", "source", "activity_type",
	"category_id", "is_free_category", "places", "route_description", "description",
	"points", "score_breakdown", "extra_points", "created_at", "updated_at", "deleted_at",
}
