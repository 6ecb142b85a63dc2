package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/domain/visit"
	"github.com/riskibarqy/hiking-league/internal/platform/id"
	"github.com/riskibarqy/hiking-league/internal/platform/lock"
	"github.com/riskibarqy/hiking-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultRecalculationWorkers = 4
	maxRecalculationWorkers     = 16
	recalculationLockTTL        = 2 * time.Minute

	RecalculationStatusUpdated   = "updated"
	RecalculationStatusUnchanged = "unchanged"
	RecalculationStatusSkipped   = "skipped"
	RecalculationStatusFailed    = "failed"
	RecalculationStatusCanceled  = "canceled"
)

type RecalculationInput struct {
	// VisitID limits the run to one visit; Season and UserID are ignored then.
	VisitID string
	// Season 0 means the current season unless AllSeasons is set.
	Season     int
	AllSeasons bool
	UserID     string
	MaxWorkers int
	// DryRun computes scores without persisting or publishing them.
	DryRun bool
}

// RecalculationResult summarizes a run. UpdatedCount covers only visits whose
// score changed. Visits whose stored breakdown already matches the active
// config are counted in UnchangedCount and keep their previous breakdown and
// recalculation timestamp.
type RecalculationResult struct {
	RunID          string              `json:"run_id"`
	ConfigVersion  int                 `json:"config_version"`
	DryRun         bool                `json:"dry_run"`
	Season         int                 `json:"season"`
	VisitCount     int                 `json:"visit_count"`
	UpdatedCount   int                 `json:"updated_count"`
	UnchangedCount int                 `json:"unchanged_count"`
	SkippedCount   int                 `json:"skipped_count"`
	FailedCount    int                 `json:"failed_count"`
	CanceledCount  int                 `json:"canceled_count"`
	WorkerCount    int                 `json:"worker_count"`
	DurationMs     int64               `json:"duration_ms"`
	Items          []RecalculationItem `json:"items"`
}

type RecalculationItem struct {
	VisitID        string  `json:"visit_id"`
	UserID         string  `json:"user_id"`
	Status         string  `json:"status"`
	PreviousPoints float64 `json:"previous_points"`
	TotalPoints    float64 `json:"total_points"`
	DurationMs     int64   `json:"duration_ms"`
	Message        string  `json:"message,omitempty"`
}

type RecalculationService struct {
	visits    visit.Repository
	configs   scoring.Repository
	scoring   *ScoringService
	locker    lock.Locker
	publisher scoring.Publisher
	ids       id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewRecalculationService(
	visits visit.Repository,
	configs scoring.Repository,
	scoringService *ScoringService,
	locker lock.Locker,
	publisher scoring.Publisher,
	ids id.Generator,
	logger *logging.Logger,
) *RecalculationService {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RecalculationService{
		visits:    visits,
		configs:   configs,
		scoring:   scoringService,
		locker:    locker,
		publisher: publisher,
		ids:       ids,
		logger:    logger,
		now:       time.Now,
	}
}

// Recalculate rescores approved visits with the active config. One visit failing
// does not stop the run; its item carries the failure. Visits not yet started
// when ctx is canceled are reported as canceled and ctx.Err() is returned with
// the partial result.
func (s *RecalculationService) Recalculate(ctx context.Context, input RecalculationInput) (RecalculationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationService.Recalculate",
		attribute.String("recalculation.visit_id", input.VisitID),
		attribute.Int("recalculation.season", input.Season),
		attribute.Bool("recalculation.dry_run", input.DryRun),
	)
	defer span.End()

	started := time.Now()
	defer func() {
		recalculationRunDuration.Observe(time.Since(started).Seconds())
	}()

	cfg, exists, err := s.configs.GetActiveConfig(ctx)
	if err != nil {
		return RecalculationResult{}, fmt.Errorf("get active scoring config: %w", err)
	}
	if !exists {
		return RecalculationResult{}, fmt.Errorf("%w: no active scoring config", ErrNotFound)
	}
	if err := cfg.Validate(); err != nil {
		return RecalculationResult{}, err
	}

	season, err := s.resolveSeason(input)
	if err != nil {
		return RecalculationResult{}, err
	}
	span.SetAttributes(attribute.Int("recalculation.resolved_season", season))

	items, err := s.loadVisits(ctx, input, season)
	if err != nil {
		return RecalculationResult{}, err
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return RecalculationResult{}, fmt.Errorf("generate run id: %w", err)
	}

	workerCount := normalizeRecalculationWorkerCount(input.MaxWorkers, len(items))
	result := RecalculationResult{
		RunID:         runID,
		ConfigVersion: cfg.Version,
		DryRun:        input.DryRun,
		Season:        season,
		VisitCount:    len(items),
		WorkerCount:   workerCount,
		Items:         make([]RecalculationItem, 0, len(items)),
	}
	if len(items) == 0 {
		return result, nil
	}

	results := make(chan RecalculationItem, len(items))

	var updatedCount atomic.Int32
	var unchangedCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32
	var canceledCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalculationResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, item := range items {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.recalculateVisit(ctx, runID, item, cfg, input.DryRun)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case RecalculationStatusUpdated:
				updatedCount.Add(1)
			case RecalculationStatusUnchanged:
				unchangedCount.Add(1)
			case RecalculationStatusSkipped:
				skippedCount.Add(1)
			case RecalculationStatusCanceled:
				canceledCount.Add(1)
			default:
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "recalculate visit failed",
					"run_id", runID, "visit_id", row.VisitID, "error", row.Message)
			}
			recalculationItemsCounter.WithLabelValues(row.Status).Inc()

			results <- row
		}); err != nil {
			workers.Done()
			return RecalculationResult{}, fmt.Errorf("submit visit to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Items = append(result.Items, row)
	}
	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].VisitID < result.Items[j].VisitID
	})

	result.UpdatedCount = int(updatedCount.Load())
	result.UnchangedCount = int(unchangedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.CanceledCount = int(canceledCount.Load())
	result.DurationMs = time.Since(started).Milliseconds()

	s.logger.InfoContext(ctx, "recalculation run finished",
		"run_id", runID,
		"config_version", cfg.Version,
		"dry_run", input.DryRun,
		"season", season,
		"visits", result.VisitCount,
		"updated", result.UpdatedCount,
		"unchanged", result.UnchangedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
		"canceled", result.CanceledCount,
	)

	if err := ctx.Err(); err != nil && result.CanceledCount > 0 {
		return result, fmt.Errorf("recalculation run %s interrupted: %w", runID, err)
	}
	return result, nil
}

// resolveSeason returns the season filter of a run: the requested season, the
// current year by default, or 0 for every season.
func (s *RecalculationService) resolveSeason(input RecalculationInput) (int, error) {
	switch {
	case input.Season < 0:
		return 0, fmt.Errorf("%w: season must be >= 0", ErrInvalidInput)
	case strings.TrimSpace(input.VisitID) != "":
		return 0, nil
	case input.Season > 0 && input.AllSeasons:
		return 0, fmt.Errorf("%w: season and all seasons are exclusive", ErrInvalidInput)
	case input.Season > 0:
		return input.Season, nil
	case input.AllSeasons:
		return 0, nil
	default:
		return s.now().UTC().Year(), nil
	}
}

func (s *RecalculationService) loadVisits(ctx context.Context, input RecalculationInput, season int) ([]visit.Visit, error) {
	if visitID := strings.TrimSpace(input.VisitID); visitID != "" {
		item, exists, err := s.visits.GetByID(ctx, visitID)
		if err != nil {
			return nil, fmt.Errorf("get visit %s: %w", visitID, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: visit %s", ErrNotFound, visitID)
		}
		return []visit.Visit{item}, nil
	}

	items, err := s.visits.ListForRecalculation(ctx, visit.RecalculationFilter{
		States: []visit.State{visit.StateApproved},
		Season: season,
		UserID: strings.TrimSpace(input.UserID),
	})
	if err != nil {
		return nil, fmt.Errorf("list visits for recalculation: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]visit.Visit, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}

func (s *RecalculationService) recalculateVisit(
	ctx context.Context,
	runID string,
	item visit.Visit,
	cfg scoring.Config,
	dryRun bool,
) RecalculationItem {
	row := RecalculationItem{
		VisitID:        item.ID,
		UserID:         item.UserID,
		PreviousPoints: item.Points,
		TotalPoints:    item.Points,
	}

	if err := ctx.Err(); err != nil {
		row.Status = RecalculationStatusCanceled
		row.Message = err.Error()
		return row
	}
	if item.IsRouteCreatorBonus() {
		row.Status = RecalculationStatusSkipped
		row.Message = "route creator bonus is not recalculated"
		return row
	}

	release, err := s.locker.TryAcquire(ctx, "visit:"+item.ID, recalculationLockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			row.Status = RecalculationStatusSkipped
			row.Message = "recalculation already in progress"
			return row
		}
		row.Status = RecalculationStatusFailed
		row.Message = fmt.Sprintf("acquire visit lock: %v", err)
		return row
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "release visit lock failed", "visit_id", item.ID, "error", err)
		}
	}()

	route, err := item.Route()
	if err != nil {
		row.Status = RecalculationStatusFailed
		row.Message = fmt.Sprintf("read stored track: %v", err)
		return row
	}

	breakdown, err := s.scoring.CalculatePoints(ctx, route, item.Places, cfg)
	if err != nil {
		row.Status = RecalculationStatusFailed
		row.Message = err.Error()
		return row
	}
	row.TotalPoints = breakdown.TotalPoints

	if sameScore(item, breakdown) {
		row.Status = RecalculationStatusUnchanged
		return row
	}
	row.Status = RecalculationStatusUpdated
	if dryRun {
		return row
	}

	if err := s.visits.UpdateScore(ctx, item.ID, breakdown.TotalPoints, breakdown); err != nil {
		row.Status = RecalculationStatusFailed
		row.Message = fmt.Sprintf("update score: %v", err)
		return row
	}

	s.publish(ctx, scoring.RecalculatedEvent{
		Type:           scoring.EventScoreRecalculated,
		RunID:          runID,
		VisitID:        item.ID,
		UserID:         item.UserID,
		PreviousPoints: item.Points,
		TotalPoints:    breakdown.TotalPoints,
		ConfigVersion:  breakdown.ConfigVersion,
		RecalculatedAt: breakdown.RecalculatedAt,
	})
	return row
}

func (s *RecalculationService) publish(ctx context.Context, event scoring.RecalculatedEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRecalculated(ctx, event); err != nil {
		recalculationPublishFailures.Inc()
		s.logger.WarnContext(ctx, "publish score recalculated event failed",
			"run_id", event.RunID, "visit_id", event.VisitID, "error", err)
	}
}

// sameScore is true when the stored score already reflects cfg.
func sameScore(item visit.Visit, breakdown scoring.Breakdown) bool {
	if item.Breakdown == nil || item.Breakdown.ConfigVersion != breakdown.ConfigVersion {
		return false
	}
	return math.Abs(item.Points-breakdown.TotalPoints) < 1e-9
}

func normalizeRecalculationWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = defaultRecalculationWorkers
	}
	if value > maxRecalculationWorkers {
		value = maxRecalculationWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
