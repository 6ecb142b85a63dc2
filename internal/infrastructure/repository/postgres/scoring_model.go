package postgres

import "time"

type scoringConfigTableModel struct {
	ID                     int64      `db:"id"`
	PublicID               string     `db:"public_id"`
	Version                int        `db:"version"`
	PointsPerKm            float64    `db:"points_per_km"`
	MinDistanceKm          float64    `db:"min_distance_km"`
	RequireAtLeastOnePlace bool       `db:"require_at_least_one_place"`
	PlaceTypePoints        []byte     `db:"place_type_points"`
	IsActive               bool       `db:"is_active"`
	CreatedAt              time.Time  `db:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at"`
	DeletedAt              *time.Time `db:"deleted_at"`
}

type scoringConfigInsertModel struct {
	PublicID               string  `db:"public_id"`
	Version                int     `db:"version"`
	PointsPerKm            float64 `db:"points_per_km"`
	MinDistanceKm          float64 `db:"min_distance_km"`
	RequireAtLeastOnePlace bool    `db:"require_at_least_one_place"`
	PlaceTypePoints        string  `db:"place_type_points"`
	IsActive               bool    `db:"is_active"`
}
