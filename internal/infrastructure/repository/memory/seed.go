package memory

import (
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/theme"
	"github.com/riskibarqy/hiking-league/internal/domain/visit"
)

const (
	SeedUserAnna  = "user-anna"
	SeedUserBoris = "user-boris"
)

func SeedThemes() []theme.Theme {
	return []theme.Theme{
		{ID: "theme-2025-05", Year: 2025, Month: 5, Name: "Water", Keywords: []string{"voda", "pramen", "studánka"}},
		{ID: "theme-2025-06", Year: 2025, Month: 6, Name: "Castles", Keywords: []string{"hrad", "zřícenina"}},
	}
}

func SeedVisits() []visit.Visit {
	distance := func(km float64) *float64 { return &km }
	lat, lng := 49.1951, 16.6068

	return []visit.Visit{
		{
			ID:               "visit-0001",
			UserID:           SeedUserAnna,
			State:            visit.StateApproved,
			VisitDate:        time.Date(2025, time.May, 4, 9, 0, 0, 0, time.UTC),
			UploadedAt:       time.Date(2025, time.May, 5, 18, 0, 0, 0, time.UTC),
			Season:           2025,
			RawTrack:         []byte(`[{"latitude":49.1951,"longitude":16.6068,"timestamp":1746349200000},{"latitude":49.2051,"longitude":16.6168,"timestamp":1746351000000},{"latitude":49.2151,"longitude":16.6268,"timestamp":1746352800000}]`),
			ActivityType:     "walking",
			Places:           []place.Place{{Type: place.TypePeak, Name: "Babí lom", Latitude: &lat, Longitude: &lng}},
			RouteDescription: "kolem pramene Svitavy",
		},
		{
			ID:               "visit-0002",
			UserID:           SeedUserAnna,
			State:            visit.StatePendingReview,
			VisitDate:        time.Date(2025, time.June, 1, 8, 30, 0, 0, time.UTC),
			UploadedAt:       time.Date(2025, time.June, 2, 7, 0, 0, 0, time.UTC),
			Season:           2025,
			TotalDistanceKm:  distance(12.4),
			ActivityType:     "walking",
			Places:           []place.Place{{Type: place.TypeRuins, Name: "Zřícenina hradu Rokštejn"}},
			RouteDescription: "okruh kolem hradu",
		},
		{
			ID:           "visit-0003",
			UserID:       SeedUserBoris,
			State:        visit.StateApproved,
			VisitDate:    time.Date(2025, time.June, 8, 10, 0, 0, 0, time.UTC),
			UploadedAt:   time.Date(2025, time.June, 8, 20, 0, 0, 0, time.UTC),
			Season:       2025,
			Points:       10,
			ExtraPoints:  map[string]any{visit.ExtraTypeKey: visit.ExtraRouteCreatorType},
			ActivityType: "walking",
		},
	}
}
