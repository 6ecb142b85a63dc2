package place

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/hiking-league/internal/platform/geo"
)

// Type is the scoring category of a place. Values outside the known set are
// custom types: kept as given and scored by lookup like every other type.
type Type string

const (
	TypePeak        Type = "PEAK"
	TypeTower       Type = "TOWER"
	TypeTree        Type = "TREE"
	TypeRuins       Type = "RUINS"
	TypeCave        Type = "CAVE"
	TypeUnusualName Type = "UNUSUAL_NAME"
	TypeOther       Type = "OTHER"
)

var KnownTypes = map[Type]struct{}{
	TypePeak:        {},
	TypeTower:       {},
	TypeTree:        {},
	TypeRuins:       {},
	TypeCave:        {},
	TypeUnusualName: {},
	TypeOther:       {},
}

// ParseType normalizes known types to their canonical upper-case form.
// Unknown non-empty values are returned trimmed as custom types.
func ParseType(value string) (Type, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("place type is required")
	}
	upper := Type(strings.ToUpper(value))
	if _, ok := KnownTypes[upper]; ok {
		return upper, nil
	}
	return Type(value), nil
}

func (t Type) IsKnown() bool {
	_, ok := KnownTypes[t]
	return ok
}

// Place is one point of interest claimed in a visit. Places are scored per occurrence.
type Place struct {
	Type        Type     `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Latitude    *float64 `json:"lat,omitempty"`
	Longitude   *float64 `json:"lng,omitempty"`
}

// Coordinates returns the place location when both coordinates are present.
func (p Place) Coordinates() (geo.Point, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *p.Latitude, Longitude: *p.Longitude}, true
}

func (p Place) Validate() error {
	if strings.TrimSpace(string(p.Type)) == "" {
		return fmt.Errorf("place type is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("place name is required")
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return fmt.Errorf("place %q must have both lat and lng or neither", p.Name)
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		return fmt.Errorf("place %q latitude out of range", p.Name)
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		return fmt.Errorf("place %q longitude out of range", p.Name)
	}
	return nil
}

// Normalize returns p with its type in canonical form after checking its shape.
func Normalize(p Place) (Place, error) {
	placeType, err := ParseType(string(p.Type))
	if err != nil {
		return Place{}, err
	}
	p.Type = placeType
	if err := p.Validate(); err != nil {
		return Place{}, err
	}
	return p, nil
}

// NormalizeTypes rewrites known types of stored places to canonical form.
// Types that fail to parse are kept as stored.
func NormalizeTypes(places []Place) []Place {
	for i := range places {
		if placeType, err := ParseType(string(places[i].Type)); err == nil {
			places[i].Type = placeType
		}
	}
	return places
}

// SearchText is the lower-cased text used for keyword matching.
func (p Place) SearchText() string {
	return strings.ToLower(p.Name + " " + p.Description)
}
