package visit

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/platform/geo"
)

const (
	DefaultProximityMaxMeters = 100.0
	DefaultPhotoMaxDaysOld    = 14
)

var DefaultAllowedActivityTypes = []string{"walking"}

// Rule names a competition rule a submission can violate.
type Rule string

const (
	RuleTrailProximity      Rule = "trail_proximity"
	RulePhotoAge            Rule = "photo_age"
	RuleActivityType        Rule = "activity_type"
	RuleDuplicateRoute      Rule = "duplicate_route"
	RuleCategoryUnavailable Rule = "category_unavailable"
	RuleFreeCategoryWeekly  Rule = "free_category_weekly"
	RulePlaceRequired       Rule = "place_required"
	RuleInvalidTrack        Rule = "invalid_track"
)

// Violation is an expected, user-facing rejection reason. It is never an error.
type Violation struct {
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// Result is the verdict of a single rule check. Message is set only when Valid is false.
type Result struct {
	Valid   bool
	Message string
}

type ProximityResult struct {
	Valid          bool
	DistanceMeters float64
	Message        string
}

// ValidateProximityToPath checks that point lies within maxMeters of path.
// Paths shorter than two points cannot be validated and pass.
func ValidateProximityToPath(point geo.Point, path []geo.Point, maxMeters float64) ProximityResult {
	if maxMeters <= 0 {
		maxMeters = DefaultProximityMaxMeters
	}

	distance, ok := geo.PointToPathDistanceMeters(point, path)
	if !ok {
		return ProximityResult{Valid: true}
	}
	distance = math.Round(distance*1000) / 1000

	if distance <= maxMeters {
		return ProximityResult{Valid: true, DistanceMeters: distance}
	}
	return ProximityResult{
		Valid:          false,
		DistanceMeters: distance,
		Message:        fmt.Sprintf("point is %s from the trail, limit is %.0fm", formatMeters(distance, maxMeters), maxMeters),
	}
}

// formatMeters prints whole meters, or more digits when the distance is within
// a meter of the limit so the text never reads as the limit itself.
func formatMeters(distance, limit float64) string {
	if math.Abs(distance-limit) >= 1 {
		return fmt.Sprintf("%.0fm", distance)
	}
	text := fmt.Sprintf("%.1f", distance)
	if text == fmt.Sprintf("%.1f", limit) {
		text = fmt.Sprintf("%.3f", distance)
	}
	return text + "m"
}

type PlaceProximity struct {
	Index int
	Place place.Place
	ProximityResult
}

// ValidatePlacesOnTrail checks every place that has coordinates. Free-category
// submissions are exempt and return nil.
func ValidatePlacesOnTrail(places []place.Place, path []geo.Point, maxMeters float64, isFreeCategory bool) []PlaceProximity {
	if isFreeCategory {
		return nil
	}

	out := make([]PlaceProximity, 0, len(places))
	for idx, p := range places {
		point, ok := p.Coordinates()
		if !ok {
			continue
		}
		res := ValidateProximityToPath(point, path, maxMeters)
		if !res.Valid {
			limit := effectiveMax(maxMeters)
			res.Message = fmt.Sprintf("place %q is %s from the trail, limit is %.0fm",
				p.Name, formatMeters(res.DistanceMeters, limit), limit)
		}
		out = append(out, PlaceProximity{Index: idx, Place: p, ProximityResult: res})
	}
	return out
}

func effectiveMax(maxMeters float64) float64 {
	if maxMeters <= 0 {
		return DefaultProximityMaxMeters
	}
	return maxMeters
}

// IsPhotoWithinTimeLimit reports whether uploadDate is at most maxDaysOld days after visitDate.
// Uploads dated before the visit are accepted.
func IsPhotoWithinTimeLimit(visitDate, uploadDate time.Time, maxDaysOld int) bool {
	if maxDaysOld <= 0 {
		maxDaysOld = DefaultPhotoMaxDaysOld
	}
	days := uploadDate.Sub(visitDate).Hours() / 24
	return days <= float64(maxDaysOld)
}

// SubmissionDates holds the raw visit date as submitted. A nil UploadDate means now.
type SubmissionDates struct {
	VisitDate  string
	UploadDate *time.Time
}

var visitDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02.01.2006",
}

// ParseVisitDate accepts the date formats clients send. Dates without a zone are UTC.
func ParseVisitDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range visitDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ValidateVisitSubmission applies the photo age rule. An unparseable visit date passes.
func ValidateVisitSubmission(dates SubmissionDates, now time.Time, maxDaysOld int) Result {
	visitDate, ok := ParseVisitDate(dates.VisitDate)
	if !ok {
		return Result{Valid: true}
	}
	if maxDaysOld <= 0 {
		maxDaysOld = DefaultPhotoMaxDaysOld
	}

	upload := now
	if dates.UploadDate != nil {
		upload = *dates.UploadDate
	}
	if IsPhotoWithinTimeLimit(visitDate, upload, maxDaysOld) {
		return Result{Valid: true}
	}

	days := int(math.Floor(upload.Sub(visitDate).Hours() / 24))
	return Result{
		Valid: false,
		Message: fmt.Sprintf("visit date %s is %d days before upload, limit is %d days",
			visitDate.Format("2006-01-02"), days, maxDaysOld),
	}
}

// ValidateActivityType checks activityType against the season allow-list.
// An empty activity type predates the field and passes.
func ValidateActivityType(activityType string, allowed []string) Result {
	activityType = strings.TrimSpace(activityType)
	if activityType == "" {
		return Result{Valid: true}
	}
	if len(allowed) == 0 {
		allowed = DefaultAllowedActivityTypes
	}

	for _, item := range allowed {
		if strings.EqualFold(strings.TrimSpace(item), activityType) {
			return Result{Valid: true}
		}
	}
	return Result{
		Valid: false,
		Message: fmt.Sprintf("activity type %q is not allowed this season (allowed: %s)",
			strings.ToLower(activityType), strings.Join(allowed, ", ")),
	}
}
