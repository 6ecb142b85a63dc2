package scoring

import (
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/track"
)

// Config is the scoring ruleset. At most one config is active at a time and a
// scoring call treats it as an immutable snapshot.
type Config struct {
	ID                     string
	Version                int
	PointsPerKm            float64
	MinDistanceKm          float64
	RequireAtLeastOnePlace bool
	PlaceTypePoints        map[place.Type]float64
	Active                 bool
	UpdatedAt              time.Time
}

func DefaultConfig() Config {
	return Config{
		ID:                     "default",
		Version:                1,
		PointsPerKm:            1,
		MinDistanceKm:          3,
		RequireAtLeastOnePlace: true,
		PlaceTypePoints: map[place.Type]float64{
			place.TypePeak:        2,
			place.TypeTower:       2,
			place.TypeTree:        1,
			place.TypeRuins:       2,
			place.TypeCave:        2,
			place.TypeUnusualName: 1,
			place.TypeOther:       0,
		},
		Active: true,
	}
}

// Input is the route data a score is derived from. TotalDistanceKm, when set,
// wins over the distance measured along Track.
type Input struct {
	TotalDistanceKm *float64
	Track           track.Track
	Places          []place.Place
}

type ThemeBonus struct {
	Points          float64
	MatchedKeywords []string
}

// Breakdown is the full explanation of a score. It is attached to a visit by the caller.
type Breakdown struct {
	TotalPoints          float64                `json:"total_points"`
	DistanceKm           float64                `json:"distance_km"`
	DistancePoints       float64                `json:"distance_points"`
	MeetsMinDistance     bool                   `json:"meets_min_distance"`
	PlacePoints          float64                `json:"place_points"`
	PlaceCounts          map[place.Type]int     `json:"place_counts"`
	PlaceTypePoints      map[place.Type]float64 `json:"place_type_points"`
	ThemeBonus           float64                `json:"theme_bonus"`
	MatchedKeywords      []string               `json:"matched_keywords"`
	MissingRequiredPlace bool                   `json:"missing_required_place"`
	ConfigVersion        int                    `json:"config_version"`
	RecalculatedAt       time.Time              `json:"recalculated_at"`
}
