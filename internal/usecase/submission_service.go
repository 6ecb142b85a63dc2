package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/hiking-league/internal/domain/category"
	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/domain/track"
	"github.com/riskibarqy/hiking-league/internal/domain/visit"
	"github.com/riskibarqy/hiking-league/internal/platform/logging"
)

// SubmissionRules are the season rules a submission is checked against.
type SubmissionRules struct {
	AllowedActivityTypes []string
	ProximityMaxMeters   float64
	PhotoMaxDaysOld      int
}

type SubmissionInput struct {
	VisitID          string
	UserID           string `validate:"required"`
	VisitDate        string `validate:"required"`
	UploadDate       *time.Time
	Track            track.Track
	// RawTrack is the stored JSON form of the track, read when Track is empty.
	RawTrack         []byte
	TotalDistanceKm  *float64 `validate:"omitempty,gte=0"`
	DurationMinutes  *int     `validate:"omitempty,gte=0"`
	Source           string
	ActivityType     string `validate:"omitempty,max=64"`
	CategoryID       string `validate:"omitempty,max=128"`
	IsFreeCategory   bool
	Places           []place.Place
	RouteDescription string
}

// Evaluation is the verdict on a submission. Rule violations are collected
// rather than returned as errors so the reviewer sees all of them at once.
type Evaluation struct {
	Valid          bool                      `json:"valid"`
	Violations     []visit.Violation         `json:"violations"`
	Breakdown      scoring.Breakdown         `json:"breakdown"`
	Similarity     SimilarityResult          `json:"similarity"`
	Category       *CategoryAvailability     `json:"category,omitempty"`
	FreeCategory   *FreeCategoryAvailability `json:"free_category,omitempty"`
	PlaceProximity []visit.PlaceProximity    `json:"-"`
}

type SubmissionService struct {
	configs    scoring.Repository
	scoring    *ScoringService
	similarity *SimilarityService
	categories *CategoryService
	rules      SubmissionRules
	validate   *validator.Validate
	logger     *logging.Logger
	now        func() time.Time
}

func NewSubmissionService(
	configs scoring.Repository,
	scoringService *ScoringService,
	similarity *SimilarityService,
	categories *CategoryService,
	rules SubmissionRules,
	logger *logging.Logger,
) *SubmissionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SubmissionService{
		configs:    configs,
		scoring:    scoringService,
		similarity: similarity,
		categories: categories,
		rules:      rules,
		validate:   validator.New(),
		logger:     logger,
		now:        time.Now,
	}
}

// Evaluate runs every competition rule against a submission and scores it with
// the active config. Malformed places are rejected with ErrInvalidInput. It
// reads but never writes.
func (s *SubmissionService) Evaluate(ctx context.Context, input SubmissionInput) (Evaluation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Evaluate")
	defer span.End()

	if err := s.validate.StructCtx(ctx, input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Evaluation{}, fmt.Errorf("%w: %s failed on %s", ErrInvalidInput, strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return Evaluation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	places := make([]place.Place, 0, len(input.Places))
	for idx, p := range input.Places {
		normalized, err := place.Normalize(p)
		if err != nil {
			return Evaluation{}, fmt.Errorf("%w: place %d: %v", ErrInvalidInput, idx, err)
		}
		places = append(places, normalized)
	}

	cfg, exists, err := s.configs.GetActiveConfig(ctx)
	if err != nil {
		return Evaluation{}, fmt.Errorf("get active scoring config: %w", err)
	}
	if !exists {
		return Evaluation{}, fmt.Errorf("%w: no active scoring config", ErrNotFound)
	}

	now := s.now().UTC()
	violations := make([]visit.Violation, 0)
	addViolation := func(rule visit.Rule, message string) {
		violations = append(violations, visit.Violation{Rule: rule, Message: message})
	}

	submitted := input.Track
	if submitted.IsEmpty() && len(input.RawTrack) > 0 {
		decoded, err := track.Parse(input.RawTrack)
		if err != nil {
			addViolation(visit.RuleInvalidTrack, fmt.Sprintf("track could not be read: %v", err))
		} else {
			submitted = decoded
		}
	}

	if res := visit.ValidateVisitSubmission(visit.SubmissionDates{
		VisitDate:  input.VisitDate,
		UploadDate: input.UploadDate,
	}, now, s.rules.PhotoMaxDaysOld); !res.Valid {
		addViolation(visit.RulePhotoAge, res.Message)
	}

	if res := visit.ValidateActivityType(input.ActivityType, s.rules.AllowedActivityTypes); !res.Valid {
		addViolation(visit.RuleActivityType, res.Message)
	}

	path := submitted.Path()
	proximity := visit.ValidatePlacesOnTrail(places, path, s.rules.ProximityMaxMeters, input.IsFreeCategory)
	for _, item := range proximity {
		if !item.Valid {
			addViolation(visit.RuleTrailProximity, item.Message)
		}
	}

	similarity, err := s.similarity.CheckRouteSimilarity(ctx, input.UserID, submitted, input.VisitID)
	if err != nil {
		return Evaluation{}, err
	}
	if similarity.IsDuplicate {
		addViolation(visit.RuleDuplicateRoute, fmt.Sprintf("route matches your earlier visit %s", similarity.SimilarRouteLabel))
	}

	visitDate, parsed := visit.ParseVisitDate(input.VisitDate)
	if !parsed {
		s.logger.WarnContext(ctx, "unparseable visit date, theme bonus skipped",
			"user_id", input.UserID, "visit_date", input.VisitDate)
	}

	evaluation := Evaluation{Similarity: similarity, PlaceProximity: proximity}
	categoryID := strings.TrimSpace(input.CategoryID)
	switch {
	case input.IsFreeCategory:
		at := now
		if parsed {
			at = visitDate
		}
		free, err := s.categories.CheckFreeCategoryWeekly(ctx, input.UserID, at)
		if err != nil {
			return Evaluation{}, err
		}
		evaluation.FreeCategory = &free
		if !free.Available {
			addViolation(visit.RuleFreeCategoryWeekly,
				fmt.Sprintf("free category already used in the week of %s", free.WeekStart.Format("2006-01-02")))
		}
	case categoryID != "":
		month := category.MonthKey(now)
		if parsed {
			month = category.MonthKey(visitDate)
		}
		availability, err := s.categories.CheckCategoryAvailability(ctx, input.UserID, categoryID, month)
		if err != nil {
			return Evaluation{}, err
		}
		evaluation.Category = &availability
		if !availability.Available {
			addViolation(visit.RuleCategoryUnavailable,
				fmt.Sprintf("category %s already claimed in %s", categoryID, month))
		}
	}

	route := visit.RouteData{
		Track:            submitted,
		TotalDistanceKm:  input.TotalDistanceKm,
		DurationMinutes:  input.DurationMinutes,
		Source:           input.Source,
		RouteDescription: input.RouteDescription,
	}
	if parsed {
		route.VisitDate = visitDate
	}
	breakdown, err := s.scoring.CalculatePoints(ctx, route, places, cfg)
	if err != nil {
		return Evaluation{}, err
	}
	if breakdown.MissingRequiredPlace {
		addViolation(visit.RulePlaceRequired, "at least one place is required")
	}

	evaluation.Breakdown = breakdown
	evaluation.Violations = violations
	evaluation.Valid = len(violations) == 0
	return evaluation, nil
}
