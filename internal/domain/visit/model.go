package visit

import (
	"strings"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/domain/track"
)

// State is the review state of a visit.
type State string

const (
	StateDraft         State = "DRAFT"
	StatePendingReview State = "PENDING_REVIEW"
	StateApproved      State = "APPROVED"
	StateRejected      State = "REJECTED"
)

var AllStates = map[State]struct{}{
	StateDraft:         {},
	StatePendingReview: {},
	StateApproved:      {},
	StateRejected:      {},
}

const (
	ExtraTypeKey          = "type"
	ExtraRouteCreatorType = "route_creator_bonus"
)

// Visit is one submitted hiking session.
type Visit struct {
	ID               string
	UserID           string
	State            State
	VisitDate        time.Time
	UploadedAt       time.Time
	RawTrack         []byte
	TotalDistanceKm  *float64
	DurationMinutes  *int
	Source           string
	ActivityType     string
	CategoryID       string
	IsFreeCategory   bool
	Places           []place.Place
	RouteDescription string
	Description      string
	Points           float64
	Breakdown        *scoring.Breakdown
	ExtraPoints      map[string]any
	Season           int
}

// RouteData is what the scoring engine needs from a stored or submitted visit.
type RouteData struct {
	Track            track.Track
	TotalDistanceKm  *float64
	DurationMinutes  *int
	Source           string
	VisitDate        time.Time
	RouteDescription string
}

// IsRouteCreatorBonus reports whether extra marks a synthetic bonus award.
func IsRouteCreatorBonus(extra map[string]any) bool {
	value, ok := extra[ExtraTypeKey].(string)
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(value), ExtraRouteCreatorType)
}

func (v Visit) IsRouteCreatorBonus() bool {
	return IsRouteCreatorBonus(v.ExtraPoints)
}

// RouteText is the description used for theme matching.
func (v Visit) RouteText() string {
	if strings.TrimSpace(v.RouteDescription) != "" {
		return v.RouteDescription
	}
	return v.Description
}

// Route parses the stored track and returns the scoring input of the visit.
func (v Visit) Route() (RouteData, error) {
	tr, err := track.Parse(v.RawTrack)
	if err != nil {
		return RouteData{}, err
	}
	return RouteData{
		Track:            tr,
		TotalDistanceKm:  v.TotalDistanceKm,
		DurationMinutes:  v.DurationMinutes,
		Source:           v.Source,
		VisitDate:        v.VisitDate,
		RouteDescription: v.RouteText(),
	}, nil
}

// Label identifies a visit in user-facing messages.
func (v Visit) Label() string {
	date := "unknown date"
	if !v.VisitDate.IsZero() {
		date = v.VisitDate.Format("2006-01-02")
	}
	name := strings.TrimSpace(v.RouteDescription)
	if name == "" {
		name = v.ID
	}
	return date + " (" + name + ")"
}
