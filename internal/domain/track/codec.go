package track

import (
	"bytes"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// wirePoint is the stored JSON shape of one sample. Timestamp is unix milliseconds.
type wirePoint struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`
	Heading   *float64 `json:"heading,omitempty"`
	Timestamp *int64   `json:"timestamp,omitempty"`
}

// Parse decodes a stored track. Empty input and JSON null decode to an empty track.
func Parse(raw []byte) (Track, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Track{}, nil
	}

	var items []wirePoint
	if err := sonic.Unmarshal(trimmed, &items); err != nil {
		return Track{}, crerr.Mark(crerr.Wrap(err, "decode track"), ErrMalformedTrack)
	}

	points := make([]Point, 0, len(items))
	for idx, item := range items {
		if item.Latitude == nil || item.Longitude == nil {
			return Track{}, crerr.Wrapf(ErrMalformedTrack, "point %d has no coordinates", idx)
		}
		p := Point{
			Latitude:  *item.Latitude,
			Longitude: *item.Longitude,
			Altitude:  item.Altitude,
			Speed:     item.Speed,
			Heading:   item.Heading,
		}
		if item.Timestamp != nil {
			p.Time = time.UnixMilli(*item.Timestamp).UTC()
		}
		points = append(points, p)
	}

	t, err := New(points)
	if err != nil {
		return Track{}, crerr.Mark(err, ErrMalformedTrack)
	}
	return t, nil
}

// Encode renders the track in the stored JSON shape.
func Encode(t Track) ([]byte, error) {
	items := make([]wirePoint, 0, len(t.points))
	for _, p := range t.points {
		lat, lon := p.Latitude, p.Longitude
		item := wirePoint{
			Latitude:  &lat,
			Longitude: &lon,
			Altitude:  p.Altitude,
			Speed:     p.Speed,
			Heading:   p.Heading,
		}
		if !p.Time.IsZero() {
			ms := p.Time.UnixMilli()
			item.Timestamp = &ms
		}
		items = append(items, item)
	}

	out, err := sonic.Marshal(items)
	if err != nil {
		return nil, crerr.Wrap(err, "encode track")
	}
	return out, nil
}
