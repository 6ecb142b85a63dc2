package memory

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hiking-league/internal/domain/place"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/domain/visit"
)

type VisitRepository struct {
	mu     sync.RWMutex
	visits map[string]visit.Visit
	order  []string
}

func NewVisitRepository(items []visit.Visit) *VisitRepository {
	r := &VisitRepository{visits: make(map[string]visit.Visit, len(items))}
	for _, item := range items {
		r.put(item)
	}
	return r
}

func (r *VisitRepository) GetByID(_ context.Context, id string) (visit.Visit, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.visits[id]
	if !ok {
		return visit.Visit{}, false, nil
	}
	return cloneVisit(item), true, nil
}

func (r *VisitRepository) ListByUser(_ context.Context, userID string, states []visit.State) ([]visit.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	allowed := stateSet(states)
	out := make([]visit.Visit, 0)
	for _, id := range r.order {
		item := r.visits[id]
		if item.UserID != userID {
			continue
		}
		if _, ok := allowed[item.State]; !ok {
			continue
		}
		out = append(out, cloneVisit(item))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VisitDate.Before(out[j].VisitDate)
	})
	return out, nil
}

func (r *VisitRepository) ListForRecalculation(_ context.Context, filter visit.RecalculationFilter) ([]visit.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	allowed := stateSet(filter.States)
	out := make([]visit.Visit, 0)
	for _, id := range r.order {
		item := r.visits[id]
		if _, ok := allowed[item.State]; !ok {
			continue
		}
		if filter.Season > 0 && item.Season != filter.Season {
			continue
		}
		if filter.UserID != "" && item.UserID != filter.UserID {
			continue
		}
		out = append(out, cloneVisit(item))
	}
	return out, nil
}

func (r *VisitRepository) UpdateScore(_ context.Context, id string, points float64, breakdown scoring.Breakdown) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.visits[id]
	if !ok {
		return crerr.Wrapf(sql.ErrNoRows, "visit %s not found", id)
	}
	item.Points = points
	stored := breakdown
	item.Breakdown = &stored
	r.visits[id] = item
	return nil
}

func (r *VisitRepository) Insert(_ context.Context, item visit.Visit) error {
	if strings.TrimSpace(item.ID) == "" {
		return crerr.New("visit id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.visits[item.ID]; exists {
		return crerr.Newf("visit %s already exists", item.ID)
	}
	r.put(item)
	return nil
}

func (r *VisitRepository) put(item visit.Visit) {
	if _, exists := r.visits[item.ID]; !exists {
		r.order = append(r.order, item.ID)
	}
	stored := cloneVisit(item)
	stored.Places = place.NormalizeTypes(stored.Places)
	r.visits[item.ID] = stored
}

func stateSet(states []visit.State) map[visit.State]struct{} {
	out := make(map[visit.State]struct{}, len(states))
	for _, s := range states {
		out[s] = struct{}{}
	}
	return out
}

func cloneVisit(item visit.Visit) visit.Visit {
	out := item
	out.RawTrack = append([]byte(nil), item.RawTrack...)
	out.Places = append(out.Places[:0:0], item.Places...)
	if item.Breakdown != nil {
		breakdown := *item.Breakdown
		out.Breakdown = &breakdown
	}
	if item.ExtraPoints != nil {
		out.ExtraPoints = make(map[string]any, len(item.ExtraPoints))
		for k, v := range item.ExtraPoints {
			out.ExtraPoints[k] = v
		}
	}
	return out
}
