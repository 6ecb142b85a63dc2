package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/category"
)

type CategoryRepository struct {
	mu     sync.RWMutex
	usages []category.Usage
}

func NewCategoryRepository(items []category.Usage) *CategoryRepository {
	usages := append([]category.Usage(nil), items...)
	sort.SliceStable(usages, func(i, j int) bool {
		return usages[i].CreatedAt.Before(usages[j].CreatedAt)
	})
	return &CategoryRepository{usages: usages}
}

func (r *CategoryRepository) FindUsage(_ context.Context, userID, categoryID, month string) (category.Usage, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.usages {
		if item.UserID == userID && item.CategoryID == categoryID && item.Month == month {
			return item, true, nil
		}
	}
	return category.Usage{}, false, nil
}

func (r *CategoryRepository) FindAnyUsage(_ context.Context, categoryID, month string) (category.Usage, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.usages {
		if item.CategoryID == categoryID && item.Month == month {
			return item, true, nil
		}
	}
	return category.Usage{}, false, nil
}

func (r *CategoryRepository) CountFreeUsageSince(_ context.Context, userID string, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.usages {
		if item.UserID == userID && item.IsFreeCategory && !item.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *CategoryRepository) Record(_ context.Context, usage category.Usage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.usages {
		if item.UserID == usage.UserID && item.CategoryID == usage.CategoryID && item.Month == usage.Month {
			return nil
		}
	}
	if usage.CreatedAt.IsZero() {
		usage.CreatedAt = time.Now().UTC()
	}
	r.usages = append(r.usages, usage)
	return nil
}
