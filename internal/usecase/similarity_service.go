package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/riskibarqy/hiking-league/internal/domain/track"
	"github.com/riskibarqy/hiking-league/internal/domain/visit"
	"github.com/riskibarqy/hiking-league/internal/platform/geo"
	"github.com/riskibarqy/hiking-league/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

const (
	MinSimilarityPoints  = 5
	SimilaritySampleSize = 100
	// SimilarityCoordinateTolerance is roughly 100m at moderate latitudes.
	SimilarityCoordinateTolerance = 0.001
	DuplicateSimilarityThreshold  = 0.85
)

var similarityCandidateStates = []visit.State{visit.StatePendingReview, visit.StateApproved}

type SimilarityResult struct {
	IsDuplicate       bool    `json:"is_duplicate"`
	SimilarVisitID    string  `json:"similar_visit_id,omitempty"`
	SimilarRouteLabel string  `json:"similar_route_label,omitempty"`
	Similarity        float64 `json:"similarity"`
}

type SimilarityService struct {
	visits visit.Repository
	logger *logging.Logger
}

func NewSimilarityService(visits visit.Repository, logger *logging.Logger) *SimilarityService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SimilarityService{visits: visits, logger: logger}
}

type similarityCandidate struct {
	visit      visit.Visit
	similarity float64
	ok         bool
}

// CheckRouteSimilarity compares newTrack against the user's pending and approved
// visits and flags it when any of them covers more than the threshold share of
// its samples. Candidates with unreadable tracks are skipped.
func (s *SimilarityService) CheckRouteSimilarity(
	ctx context.Context,
	userID string,
	newTrack track.Track,
	excludeVisitID string,
) (SimilarityResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimilarityService.CheckRouteSimilarity")
	defer span.End()

	if newTrack.Len() < MinSimilarityPoints {
		return SimilarityResult{}, nil
	}

	prior, err := s.visits.ListByUser(ctx, userID, similarityCandidateStates)
	if err != nil {
		return SimilarityResult{}, fmt.Errorf("list visits of user %s: %w", userID, err)
	}

	candidates := make([]visit.Visit, 0, len(prior))
	for _, item := range prior {
		if excludeVisitID != "" && item.ID == excludeVisitID {
			continue
		}
		candidates = append(candidates, item)
	}
	if len(candidates) == 0 {
		return SimilarityResult{}, nil
	}

	sampled := newTrack.Downsample(SimilaritySampleSize)
	scored := iter.Map(candidates, func(item *visit.Visit) similarityCandidate {
		candidateTrack, err := track.Parse(item.RawTrack)
		if err != nil {
			s.logger.WarnContext(ctx, "skip similarity candidate with unreadable track",
				"visit_id", item.ID, "user_id", userID, "error", err)
			return similarityCandidate{}
		}
		if candidateTrack.Len() < MinSimilarityPoints {
			return similarityCandidate{}
		}
		return similarityCandidate{
			visit:      *item,
			similarity: TrackSimilarity(sampled, candidateTrack.Downsample(SimilaritySampleSize)),
			ok:         true,
		}
	})

	var best *similarityCandidate
	for i := range scored {
		if !scored[i].ok {
			continue
		}
		if best == nil || scored[i].similarity > best.similarity {
			best = &scored[i]
		}
	}
	if best == nil {
		return SimilarityResult{}, nil
	}

	result := SimilarityResult{Similarity: best.similarity}
	if best.similarity > DuplicateSimilarityThreshold {
		result.IsDuplicate = true
		result.SimilarVisitID = best.visit.ID
		result.SimilarRouteLabel = best.visit.Label()
	}
	return result, nil
}

// TrackSimilarity is the share of samples in a that have a sample of b within
// SimilarityCoordinateTolerance degrees on both axes.
func TrackSimilarity(a, b []geo.Point) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	matches := 0
	for _, p := range a {
		for _, q := range b {
			if math.Abs(p.Latitude-q.Latitude) <= SimilarityCoordinateTolerance &&
				math.Abs(p.Longitude-q.Longitude) <= SimilarityCoordinateTolerance {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(a))
}
