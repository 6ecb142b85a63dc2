package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/track"
)

var fixedNow = time.Date(2025, time.June, 12, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

// lineTrack walks north from (lat, lng) in steps of stepDeg latitude.
func lineTrack(t *testing.T, lat, lng float64, count int, stepDeg float64) track.Track {
	t.Helper()

	start := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)
	points := make([]track.Point, 0, count)
	for i := 0; i < count; i++ {
		points = append(points, track.Point{
			Latitude:  lat + float64(i)*stepDeg,
			Longitude: lng,
			Time:      start.Add(time.Duration(i) * time.Minute),
		})
	}
	tr, err := track.New(points)
	if err != nil {
		t.Fatalf("build track: %v", err)
	}
	return tr
}

func encodeTrack(t *testing.T, tr track.Track) []byte {
	t.Helper()

	raw, err := track.Encode(tr)
	if err != nil {
		t.Fatalf("encode track: %v", err)
	}
	return raw
}

func floatPtr(v float64) *float64 {
	return &v
}
