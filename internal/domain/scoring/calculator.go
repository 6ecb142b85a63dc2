package scoring

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/place"
)

var ErrInvalidConfig = errors.New("invalid scoring config")

// minDistanceToleranceKm absorbs float noise of computed track lengths when
// comparing against the minimum distance.
const minDistanceToleranceKm = 1e-9

func (c Config) Validate() error {
	if !isNonNegative(c.PointsPerKm) {
		return fmt.Errorf("%w: points per km must be >= 0, got %v", ErrInvalidConfig, c.PointsPerKm)
	}
	if !isNonNegative(c.MinDistanceKm) {
		return fmt.Errorf("%w: min distance must be >= 0, got %v", ErrInvalidConfig, c.MinDistanceKm)
	}
	for placeType, points := range c.PlaceTypePoints {
		if !isNonNegative(points) {
			return fmt.Errorf("%w: points for %s must be >= 0, got %v", ErrInvalidConfig, placeType, points)
		}
	}
	return nil
}

func isNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Calculate derives the score of a route. It is pure: identical arguments give an
// identical Breakdown.
func Calculate(input Input, cfg Config, bonus ThemeBonus, now time.Time) (Breakdown, error) {
	if err := cfg.Validate(); err != nil {
		return Breakdown{}, err
	}

	distanceKm := ResolveDistanceKm(input)
	meetsMin := distanceKm > 0 && distanceKm+minDistanceToleranceKm >= cfg.MinDistanceKm

	distancePoints := 0.0
	if meetsMin {
		distancePoints = distanceKm * cfg.PointsPerKm
	}

	placeCounts := make(map[place.Type]int, len(input.Places))
	placeTypePoints := make(map[place.Type]float64, len(input.Places))
	placePoints := 0.0
	for _, p := range input.Places {
		points := cfg.PlaceTypePoints[p.Type]
		placeCounts[p.Type]++
		placeTypePoints[p.Type] += points
		placePoints += points
	}

	themePoints := bonus.Points
	if !isNonNegative(themePoints) {
		themePoints = 0
	}
	keywords := append([]string{}, bonus.MatchedKeywords...)

	total := distancePoints + placePoints + themePoints
	if total < 0 {
		total = 0
	}

	return Breakdown{
		TotalPoints:          total,
		DistanceKm:           distanceKm,
		DistancePoints:       distancePoints,
		MeetsMinDistance:     meetsMin,
		PlacePoints:          placePoints,
		PlaceCounts:          placeCounts,
		PlaceTypePoints:      placeTypePoints,
		ThemeBonus:           themePoints,
		MatchedKeywords:      keywords,
		MissingRequiredPlace: cfg.RequireAtLeastOnePlace && len(input.Places) == 0,
		ConfigVersion:        cfg.Version,
		RecalculatedAt:       now.UTC(),
	}, nil
}

// ResolveDistanceKm prefers the recorded total distance and falls back to the
// track length.
func ResolveDistanceKm(input Input) float64 {
	if input.TotalDistanceKm != nil && isNonNegative(*input.TotalDistanceKm) {
		return *input.TotalDistanceKm
	}
	return input.Track.DistanceKm()
}
