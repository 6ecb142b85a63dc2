package usecase

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/category"
	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/domain/theme"
	"github.com/riskibarqy/hiking-league/internal/domain/track"
	"github.com/riskibarqy/hiking-league/internal/domain/visit"
	"github.com/riskibarqy/hiking-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hiking-league/internal/platform/logging"
)

type submissionFixture struct {
	svc   *SubmissionService
	track track.Track
}

func newSubmissionFixture(t *testing.T, cfg *scoring.Config) submissionFixture {
	t.Helper()

	tr := lineTrack(t, 49.0, 16.0, 50, 0.002)
	visits := memory.NewVisitRepository([]visit.Visit{
		{
			ID:        "v-prior",
			UserID:    "u1",
			State:     visit.StateApproved,
			VisitDate: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
			RawTrack:  encodeTrack(t, tr),
		},
	})
	categories := memory.NewCategoryRepository([]category.Usage{
		{UserID: "u1", CategoryID: "cat-claimed", Month: "2025-06", CreatedAt: time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)},
		{UserID: "u1", CategoryID: "free-1", Month: "2025-06", IsFreeCategory: true, CreatedAt: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)},
	})
	themes := memory.NewThemeRepository([]theme.Theme{
		{ID: "t-06", Year: 2025, Month: 6, Keywords: []string{"hrad"}},
	})

	scoringService := NewScoringService(NewThemeService(themes))
	scoringService.now = fixedClock

	svc := NewSubmissionService(
		memory.NewScoringRepository(cfg),
		scoringService,
		NewSimilarityService(visits, logging.NewNop()),
		NewCategoryService(categories),
		SubmissionRules{AllowedActivityTypes: []string{"walking"}},
		logging.NewNop(),
	)
	svc.now = fixedClock
	return submissionFixture{svc: svc, track: tr}
}

func onTrailPeak() place.Place {
	lat, lng := 49.01, 16.0
	return place.Place{Type: place.TypePeak, Name: "Hrad Pernštejn", Latitude: &lat, Longitude: &lng}
}

func violationRules(violations []visit.Violation) []visit.Rule {
	out := make([]visit.Rule, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Rule)
	}
	return out
}

func TestSubmissionService_Evaluate_Valid(t *testing.T) {
	t.Parallel()

	cfg := scoring.DefaultConfig()
	fx := newSubmissionFixture(t, &cfg)
	upload := fixedNow

	got, err := fx.svc.Evaluate(context.Background(), SubmissionInput{
		UserID:          "u3",
		VisitDate:       "2025-06-10",
		UploadDate:      &upload,
		Track:           fx.track,
		TotalDistanceKm: floatPtr(8),
		ActivityType:    " Walking ",
		CategoryID:      "cat-claimed",
		Places:          []place.Place{onTrailPeak()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Valid {
		t.Fatalf("expected valid submission, violations=%+v", got.Violations)
	}
	if math.Abs(got.Breakdown.TotalPoints-15) > 1e-9 {
		t.Fatalf("unexpected total: got=%v want=15", got.Breakdown.TotalPoints)
	}
	if got.Category == nil || !got.Category.Available || got.Category.IsFirstThisMonth {
		t.Fatalf("unexpected category availability: %+v", got.Category)
	}
	if len(got.PlaceProximity) != 1 || !got.PlaceProximity[0].Valid {
		t.Fatalf("unexpected place proximity: %+v", got.PlaceProximity)
	}
}

func TestSubmissionService_Evaluate_CollectsEveryViolation(t *testing.T) {
	t.Parallel()

	cfg := scoring.DefaultConfig()
	fx := newSubmissionFixture(t, &cfg)
	lat, lng := 49.01, 16.02

	got, err := fx.svc.Evaluate(context.Background(), SubmissionInput{
		UserID:       "u3",
		VisitDate:    "2025-05-24",
		Track:        fx.track,
		ActivityType: "cycling",
		Places:       []place.Place{{Type: place.TypeTower, Name: "Rozhledna", Latitude: &lat, Longitude: &lng}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Valid {
		t.Fatalf("expected invalid submission")
	}

	want := []visit.Rule{visit.RulePhotoAge, visit.RuleActivityType, visit.RuleTrailProximity}
	if rules := violationRules(got.Violations); !reflect.DeepEqual(rules, want) {
		t.Fatalf("unexpected rules: got=%v want=%v", rules, want)
	}
	if msg := got.Violations[0].Message; msg != "visit date 2025-05-24 is 19 days before upload, limit is 14 days" {
		t.Fatalf("unexpected photo age message: %q", msg)
	}
	if msg := got.Violations[1].Message; msg != `activity type "cycling" is not allowed this season (allowed: walking)` {
		t.Fatalf("unexpected activity message: %q", msg)
	}
}

func TestSubmissionService_Evaluate_DuplicateRoute(t *testing.T) {
	t.Parallel()

	cfg := scoring.DefaultConfig()
	fx := newSubmissionFixture(t, &cfg)
	input := SubmissionInput{
		UserID:    "u1",
		VisitDate: "2025-06-10",
		Track:     fx.track,
		Places:    []place.Place{onTrailPeak()},
	}

	got, err := fx.svc.Evaluate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules := violationRules(got.Violations); !reflect.DeepEqual(rules, []visit.Rule{visit.RuleDuplicateRoute}) {
		t.Fatalf("unexpected rules: %v", rules)
	}
	if got.Similarity.SimilarVisitID != "v-prior" {
		t.Fatalf("unexpected similar visit: %+v", got.Similarity)
	}

	input.VisitID = "v-prior"
	got, err = fx.svc.Evaluate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Valid {
		t.Fatalf("resubmitting the same visit must not match itself: %+v", got.Violations)
	}
}

func TestSubmissionService_Evaluate_CategoryRules(t *testing.T) {
	t.Parallel()

	cfg := scoring.DefaultConfig()
	fx := newSubmissionFixture(t, &cfg)
	lat, lng := 49.5, 17.5
	farPlace := place.Place{Type: place.TypeCave, Name: "Jeskyně", Latitude: &lat, Longitude: &lng}

	tests := []struct {
		name   string
		input  SubmissionInput
		want   []visit.Rule
		isFree bool
	}{
		{
			name:  "category claimed by user this month",
			input: SubmissionInput{UserID: "u1", VisitID: "v-prior", VisitDate: "2025-06-10", CategoryID: "cat-claimed", Places: []place.Place{onTrailPeak()}},
			want:  []visit.Rule{visit.RuleCategoryUnavailable},
		},
		{
			name:   "free category used this week skips trail check",
			input:  SubmissionInput{UserID: "u1", VisitID: "v-prior", VisitDate: "2025-06-12", CategoryID: "free-2", IsFreeCategory: true, Places: []place.Place{farPlace}},
			want:   []visit.Rule{visit.RuleFreeCategoryWeekly},
			isFree: true,
		},
		{
			name:   "free category without category id still checks the week",
			input:  SubmissionInput{UserID: "u1", VisitID: "v-prior", VisitDate: "2025-06-12", IsFreeCategory: true, Places: []place.Place{farPlace}},
			want:   []visit.Rule{visit.RuleFreeCategoryWeekly},
			isFree: true,
		},
		{
			name:  "missing place",
			input: SubmissionInput{UserID: "u3", VisitDate: "2025-06-10"},
			want:  []visit.Rule{visit.RulePlaceRequired},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tc.input.Track = fx.track
			got, err := fx.svc.Evaluate(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rules := violationRules(got.Violations); !reflect.DeepEqual(rules, tc.want) {
				t.Fatalf("unexpected rules: got=%v want=%v", rules, tc.want)
			}
			if tc.isFree && got.FreeCategory == nil {
				t.Fatalf("expected free category availability in evaluation")
			}
		})
	}
}

func TestSubmissionService_Evaluate_InvalidInput(t *testing.T) {
	t.Parallel()

	cfg := scoring.DefaultConfig()
	fx := newSubmissionFixture(t, &cfg)

	tests := []SubmissionInput{
		{VisitDate: "2025-06-10"},
		{UserID: "u1"},
		{UserID: "u1", VisitDate: "2025-06-10", TotalDistanceKm: floatPtr(-1)},
		{UserID: "u1", VisitDate: "2025-06-10", Places: []place.Place{{Type: "peak", Name: "half", Latitude: floatPtr(49.01)}}},
		{UserID: "u1", VisitDate: "2025-06-10", Places: []place.Place{{Type: " ", Name: "blank"}}},
	}
	for _, input := range tests {
		if _, err := fx.svc.Evaluate(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestSubmissionService_Evaluate_NormalizesPlaceType(t *testing.T) {
	t.Parallel()

	cfg := scoring.DefaultConfig()
	fx := newSubmissionFixture(t, &cfg)
	peak := onTrailPeak()
	peak.Type = "peak"

	got, err := fx.svc.Evaluate(context.Background(), SubmissionInput{
		UserID:    "u3",
		VisitDate: "2025-06-10",
		Track:     fx.track,
		Places:    []place.Place{peak},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Breakdown.PlaceCounts[place.TypePeak] != 1 || len(got.Breakdown.PlaceCounts) != 1 {
		t.Fatalf("unexpected place counts: %+v", got.Breakdown.PlaceCounts)
	}
	if want := cfg.PlaceTypePoints[place.TypePeak]; got.Breakdown.PlacePoints != want {
		t.Fatalf("unexpected place points: got=%v want=%v", got.Breakdown.PlacePoints, want)
	}
}

func TestSubmissionService_Evaluate_RawTrack(t *testing.T) {
	t.Parallel()

	cfg := scoring.DefaultConfig()
	fx := newSubmissionFixture(t, &cfg)

	got, err := fx.svc.Evaluate(context.Background(), SubmissionInput{
		UserID:    "u3",
		VisitDate: "2025-06-10",
		RawTrack:  []byte(`[{"latitude":49.0}]`),
		Places:    []place.Place{{Type: place.TypeCave, Name: "Macocha"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules := violationRules(got.Violations); !reflect.DeepEqual(rules, []visit.Rule{visit.RuleInvalidTrack}) {
		t.Fatalf("unexpected rules: %v", rules)
	}

	got, err = fx.svc.Evaluate(context.Background(), SubmissionInput{
		UserID:    "u3",
		VisitDate: "2025-06-10",
		RawTrack:  encodeTrack(t, fx.track),
		Places:    []place.Place{onTrailPeak()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Valid {
		t.Fatalf("expected valid submission, violations=%+v", got.Violations)
	}
	if len(got.PlaceProximity) != 1 || !got.PlaceProximity[0].Valid {
		t.Fatalf("stored track must be used for the trail check: %+v", got.PlaceProximity)
	}
}

func TestSubmissionService_Evaluate_NoActiveConfig(t *testing.T) {
	t.Parallel()

	fx := newSubmissionFixture(t, nil)
	_, err := fx.svc.Evaluate(context.Background(), SubmissionInput{UserID: "u3", VisitDate: "2025-06-10"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
