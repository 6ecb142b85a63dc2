package geo

import "math"

// EarthRadiusKm is the mean sphere radius used for every distance in the competition.
const EarthRadiusKm = 6371.0

const (
	earthRadiusM = EarthRadiusKm * 1000
	degToRad     = math.Pi / 180
)

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HaversineKm returns the great-circle distance between two coordinates in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lon2 - lon1) * degToRad

	sinDPhi := math.Sin(dPhi / 2)
	sinDLambda := math.Sin(dLambda / 2)

	a := sinDPhi*sinDPhi + math.Cos(phi1)*math.Cos(phi2)*sinDLambda*sinDLambda
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistanceMeters is HaversineKm between two points, in meters.
func DistanceMeters(a, b Point) float64 {
	return HaversineKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude) * 1000
}

// PathLengthKm sums the haversine distance between consecutive points.
// Paths shorter than two points have zero length.
func PathLengthKm(path []Point) float64 {
	if len(path) < 2 {
		return 0
	}

	total := 0.0
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		total += HaversineKm(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
	}
	return total
}

// PointToPathDistanceMeters returns the distance from p to the nearest segment of path.
// ok is false when the path has fewer than two points and cannot be used for validation.
func PointToPathDistanceMeters(p Point, path []Point) (float64, bool) {
	if len(path) < 2 {
		return 0, false
	}

	best := math.Inf(1)
	for i := 1; i < len(path); i++ {
		d := pointToSegmentMeters(p, path[i-1], path[i])
		if d < best {
			best = d
		}
	}
	return best, true
}

// pointToSegmentMeters projects the segment into a local equirectangular plane centred on p,
// finds the foot of the perpendicular there and measures the haversine distance to it.
func pointToSegmentMeters(p, a, b Point) float64 {
	cosLat := math.Cos(p.Latitude * degToRad)
	toPlane := func(q Point) (float64, float64) {
		x := (q.Longitude - p.Longitude) * degToRad * cosLat * earthRadiusM
		y := (q.Latitude - p.Latitude) * degToRad * earthRadiusM
		return x, y
	}

	ax, ay := toPlane(a)
	bx, by := toPlane(b)
	dx, dy := bx-ax, by-ay

	t := 0.0
	if lenSq := dx*dx + dy*dy; lenSq > 0 {
		t = -(ax*dx + ay*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}

	fx := ax + t*dx
	fy := ay + t*dy

	foot := Point{
		Latitude:  p.Latitude + fy/(earthRadiusM*degToRad),
		Longitude: p.Longitude,
	}
	if cosLat != 0 {
		foot.Longitude = p.Longitude + fx/(earthRadiusM*degToRad*cosLat)
	}
	return DistanceMeters(p, foot)
}
