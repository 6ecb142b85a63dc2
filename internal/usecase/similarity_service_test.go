package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/track"
	"github.com/riskibarqy/hiking-league/internal/domain/visit"
	"github.com/riskibarqy/hiking-league/internal/infrastructure/repository/memory"
	visitmock "github.com/riskibarqy/hiking-league/internal/mocks/domain/visit"
	"github.com/riskibarqy/hiking-league/internal/platform/geo"
	"github.com/riskibarqy/hiking-league/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func priorVisit(id, userID string, state visit.State, raw []byte) visit.Visit {
	return visit.Visit{
		ID:               id,
		UserID:           userID,
		State:            state,
		VisitDate:        time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC),
		RawTrack:         raw,
		RouteDescription: "Macocha loop",
	}
}

func TestSimilarityService_ShortTrackSkipsRepository(t *testing.T) {
	t.Parallel()

	repo := visitmock.NewRepository(t)
	svc := NewSimilarityService(repo, logging.NewNop())

	got, err := svc.CheckRouteSimilarity(context.Background(), "u1", lineTrack(t, 49.0, 16.0, 4, 0.002), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsDuplicate {
		t.Fatalf("short track must never be a duplicate")
	}
}

func TestSimilarityService_FlagsNinetyPercentOverlap(t *testing.T) {
	t.Parallel()

	prior := lineTrack(t, 49.0, 16.0, 50, 0.002)

	points := lineTrack(t, 49.0003, 16.0002, 45, 0.002).Points()
	for i := 0; i < 5; i++ {
		points = append(points, track.Point{
			Latitude:  49.2 + float64(i)*0.002,
			Longitude: 17.0,
			Time:      points[len(points)-1].Time.Add(time.Minute),
		})
	}
	newTrack, err := track.New(points)
	if err != nil {
		t.Fatalf("build track: %v", err)
	}

	repo := memory.NewVisitRepository([]visit.Visit{
		priorVisit("v-prior", "u1", visit.StateApproved, encodeTrack(t, prior)),
	})
	svc := NewSimilarityService(repo, logging.NewNop())

	got, err := svc.CheckRouteSimilarity(context.Background(), "u1", newTrack, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsDuplicate {
		t.Fatalf("expected duplicate, similarity=%v", got.Similarity)
	}
	if math.Abs(got.Similarity-0.9) > 1e-9 {
		t.Fatalf("unexpected similarity: got=%v want=0.9", got.Similarity)
	}
	if got.SimilarVisitID != "v-prior" || got.SimilarRouteLabel != "2025-05-03 (Macocha loop)" {
		t.Fatalf("unexpected match: %+v", got)
	}
}

func TestSimilarityService_IgnoresExcludedRejectedAndOtherUsers(t *testing.T) {
	t.Parallel()

	tr := lineTrack(t, 49.0, 16.0, 30, 0.002)
	raw := encodeTrack(t, tr)
	repo := memory.NewVisitRepository([]visit.Visit{
		priorVisit("v-self", "u1", visit.StateApproved, raw),
		priorVisit("v-rejected", "u1", visit.StateRejected, raw),
		priorVisit("v-other", "u2", visit.StateApproved, raw),
	})
	svc := NewSimilarityService(repo, logging.NewNop())

	got, err := svc.CheckRouteSimilarity(context.Background(), "u1", tr, "v-self")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsDuplicate || got.Similarity != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSimilarityService_SkipsMalformedCandidates(t *testing.T) {
	t.Parallel()

	tr := lineTrack(t, 49.0, 16.0, 30, 0.002)
	repo := memory.NewVisitRepository([]visit.Visit{
		priorVisit("v-broken", "u1", visit.StateApproved, []byte(`{"not":"a track"`)),
		priorVisit("v-short", "u1", visit.StatePendingReview, encodeTrack(t, lineTrack(t, 49.0, 16.0, 3, 0.002))),
		priorVisit("v-good", "u1", visit.StatePendingReview, encodeTrack(t, tr)),
	})
	svc := NewSimilarityService(repo, logging.NewNop())

	got, err := svc.CheckRouteSimilarity(context.Background(), "u1", tr, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsDuplicate || got.SimilarVisitID != "v-good" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSimilarityService_ReportsStrongestCandidate(t *testing.T) {
	t.Parallel()

	tr := lineTrack(t, 49.0, 16.0, 40, 0.002)
	partial := lineTrack(t, 49.0, 16.0, 37, 0.002)
	repo := memory.NewVisitRepository([]visit.Visit{
		priorVisit("v-partial", "u1", visit.StateApproved, encodeTrack(t, partial)),
		priorVisit("v-full", "u1", visit.StateApproved, encodeTrack(t, tr)),
	})
	svc := NewSimilarityService(repo, logging.NewNop())

	got, err := svc.CheckRouteSimilarity(context.Background(), "u1", tr, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SimilarVisitID != "v-full" || got.Similarity != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSimilarityService_RepositoryError(t *testing.T) {
	t.Parallel()

	repo := visitmock.NewRepository(t)
	repo.On("ListByUser", mock.Anything, "u1", []visit.State{visit.StatePendingReview, visit.StateApproved}).
		Return(nil, errors.New("db down")).
		Once()
	svc := NewSimilarityService(repo, logging.NewNop())

	_, err := svc.CheckRouteSimilarity(context.Background(), "u1", lineTrack(t, 49.0, 16.0, 10, 0.002), "")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestTrackSimilarity(t *testing.T) {
	t.Parallel()

	a := []geo.Point{{Latitude: 1, Longitude: 1}, {Latitude: 2, Longitude: 2}}
	tests := []struct {
		name string
		b    []geo.Point
		want float64
	}{
		{name: "identical", b: a, want: 1},
		{name: "within tolerance", b: []geo.Point{{Latitude: 1.0009, Longitude: 0.9991}}, want: 0.5},
		{name: "latitude outside", b: []geo.Point{{Latitude: 1.0011, Longitude: 1}}, want: 0},
		{name: "empty", b: nil, want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := TrackSimilarity(a, tc.b); got != tc.want {
				t.Fatalf("unexpected similarity: got=%v want=%v", got, tc.want)
			}
		})
	}
}
