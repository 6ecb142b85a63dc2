package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/hiking-league/internal/domain/category"
)

type CategoryAvailability struct {
	Available        bool `json:"available"`
	IsFirstThisMonth bool `json:"is_first_this_month"`
}

type FreeCategoryAvailability struct {
	Available    bool      `json:"available"`
	UsedThisWeek int       `json:"used_this_week"`
	WeekStart    time.Time `json:"week_start"`
}

type CategoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CheckCategoryAvailability reports whether userID may still claim categoryID in
// month and whether nobody has claimed it yet. It never writes the ledger.
func (s *CategoryService) CheckCategoryAvailability(ctx context.Context, userID, categoryID, month string) (CategoryAvailability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CategoryService.CheckCategoryAvailability")
	defer span.End()

	userID = strings.TrimSpace(userID)
	categoryID = strings.TrimSpace(categoryID)
	month = strings.TrimSpace(month)
	if userID == "" || categoryID == "" {
		return CategoryAvailability{}, fmt.Errorf("%w: user id and category id are required", ErrInvalidInput)
	}
	if _, err := category.ParseMonth(month); err != nil {
		return CategoryAvailability{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, used, err := s.repo.FindUsage(ctx, userID, categoryID, month)
	if err != nil {
		return CategoryAvailability{}, fmt.Errorf("find category usage: %w", err)
	}
	_, claimed, err := s.repo.FindAnyUsage(ctx, categoryID, month)
	if err != nil {
		return CategoryAvailability{}, fmt.Errorf("find any category usage: %w", err)
	}

	return CategoryAvailability{
		Available:        !used,
		IsFirstThisMonth: !claimed,
	}, nil
}

// CheckFreeCategoryWeekly allows one free-category visit per user per week,
// weeks starting Monday 00:00 UTC.
func (s *CategoryService) CheckFreeCategoryWeekly(ctx context.Context, userID string, at time.Time) (FreeCategoryAvailability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CategoryService.CheckFreeCategoryWeekly")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return FreeCategoryAvailability{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	weekStart := category.WeekStart(at)
	count, err := s.repo.CountFreeUsageSince(ctx, userID, weekStart)
	if err != nil {
		return FreeCategoryAvailability{}, fmt.Errorf("count free category usage: %w", err)
	}

	return FreeCategoryAvailability{
		Available:    count == 0,
		UsedThisWeek: count,
		WeekStart:    weekStart,
	}, nil
}
