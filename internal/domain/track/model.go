package track

import (
	"math"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hiking-league/internal/platform/geo"
)

var (
	ErrInvalidPoint     = crerr.New("invalid track point")
	ErrNonMonotonicTime = crerr.New("track timestamps must be non-decreasing")
	ErrMalformedTrack   = crerr.New("malformed stored track")
)

// Point is one GPS sample. Zero Time means the device did not report one.
type Point struct {
	Latitude  float64
	Longitude float64
	Altitude  *float64
	Speed     *float64
	Heading   *float64
	Time      time.Time
}

// Track is an ordered, validated GPS sample sequence. The zero value is an empty track.
type Track struct {
	points []Point
}

// New validates points and returns an immutable Track.
func New(points []Point) (Track, error) {
	var lastTime time.Time
	for idx, p := range points {
		if err := validatePoint(p); err != nil {
			return Track{}, crerr.Wrapf(err, "point %d", idx)
		}
		if p.Time.IsZero() {
			continue
		}
		if !lastTime.IsZero() && p.Time.Before(lastTime) {
			return Track{}, crerr.Wrapf(ErrNonMonotonicTime, "point %d at %s is before %s",
				idx, p.Time.Format(time.RFC3339), lastTime.Format(time.RFC3339))
		}
		lastTime = p.Time
	}

	return Track{points: append([]Point(nil), points...)}, nil
}

func validatePoint(p Point) error {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return crerr.Wrap(ErrInvalidPoint, "coordinate is NaN")
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return crerr.Wrapf(ErrInvalidPoint, "latitude %v out of range", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return crerr.Wrapf(ErrInvalidPoint, "longitude %v out of range", p.Longitude)
	}
	return nil
}

func (t Track) Len() int {
	return len(t.points)
}

func (t Track) IsEmpty() bool {
	return len(t.points) == 0
}

// Points returns a copy of the samples.
func (t Track) Points() []Point {
	return append([]Point(nil), t.points...)
}

// Path returns the track as plain coordinates.
func (t Track) Path() []geo.Point {
	out := make([]geo.Point, 0, len(t.points))
	for _, p := range t.points {
		out = append(out, geo.Point{Latitude: p.Latitude, Longitude: p.Longitude})
	}
	return out
}

// DistanceKm sums haversine distances between consecutive samples.
func (t Track) DistanceKm() float64 {
	return geo.PathLengthKm(t.Path())
}

// Duration is the time between the first and the last timestamped sample.
func (t Track) Duration() time.Duration {
	var first, last time.Time
	for _, p := range t.points {
		if p.Time.IsZero() {
			continue
		}
		if first.IsZero() {
			first = p.Time
		}
		last = p.Time
	}
	if first.IsZero() {
		return 0
	}
	return last.Sub(first)
}

// Downsample keeps every n-th sample so that at most max samples remain.
func (t Track) Downsample(max int) []geo.Point {
	path := t.Path()
	if max <= 0 || len(path) <= max {
		return path
	}

	step := (len(path) + max - 1) / max
	out := make([]geo.Point, 0, max)
	for i := 0; i < len(path); i += step {
		out = append(out, path[i])
	}
	return out
}
