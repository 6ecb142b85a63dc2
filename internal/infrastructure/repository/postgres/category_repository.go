package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hiking-league/internal/domain/category"
	qb "github.com/riskibarqy/hiking-league/internal/platform/querybuilder"
)

type categoryUsageTableModel struct {
	ID             int64     `db:"id"`
	UserID         string    `db:"user_id"`
	CategoryID     string    `db:"category_id"`
	Month          string    `db:"month"`
	VisitID        string    `db:"visit_id"`
	IsFreeCategory bool      `db:"is_free_category"`
	CreatedAt      time.Time `db:"created_at"`
}

type categoryUsageInsertModel struct {
	UserID         string    `db:"user_id"`
	CategoryID     string    `db:"category_id"`
	Month          string    `db:"month"`
	VisitID        string    `db:"visit_id"`
	IsFreeCategory bool      `db:"is_free_category"`
	CreatedAt      time.Time `db:"created_at"`
}

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindUsage(ctx context.Context, userID, categoryID, month string) (category.Usage, bool, error) {
	return r.findOne(ctx,
		qb.Eq("user_id", userID),
		qb.Eq("category_id", categoryID),
		qb.Eq("month", month),
	)
}

func (r *CategoryRepository) FindAnyUsage(ctx context.Context, categoryID, month string) (category.Usage, bool, error) {
	return r.findOne(ctx,
		qb.Eq("category_id", categoryID),
		qb.Eq("month", month),
	)
}

func (r *CategoryRepository) CountFreeUsageSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("category_usages").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("is_free_category", true),
			qb.Gte("created_at", since.UTC()),
		).
		ToSQL()
	if err != nil {
		return 0, crerr.Wrap(err, "build count free category usage query")
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, crerr.Wrapf(err, "count free category usage of user %s", userID)
	}
	return count, nil
}

// Record writes a usage entry. It is owned by the submission handler and is
// idempotent per (user, category, month).
func (r *CategoryRepository) Record(ctx context.Context, usage category.Usage) error {
	createdAt := usage.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	query, args, err := qb.InsertModel("category_usages", categoryUsageInsertModel{
		UserID:         usage.UserID,
		CategoryID:     usage.CategoryID,
		Month:          usage.Month,
		VisitID:        usage.VisitID,
		IsFreeCategory: usage.IsFreeCategory,
		CreatedAt:      createdAt,
	}, "ON CONFLICT (user_id, category_id, month) DO NOTHING")
	if err != nil {
		return crerr.Wrap(err, "build insert category usage query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "insert category usage %s/%s", usage.UserID, usage.CategoryID)
	}
	return nil
}

func (r *CategoryRepository) findOne(ctx context.Context, conditions ...qb.Condition) (category.Usage, bool, error) {
	query, args, err := qb.Select("*").From("category_usages").
		Where(conditions...).
		OrderBy("created_at", "id").
		Limit(1).
		ToSQL()
	if err != nil {
		return category.Usage{}, false, crerr.Wrap(err, "build find category usage query")
	}

	var row categoryUsageTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return category.Usage{}, false, nil
		}
		return category.Usage{}, false, crerr.Wrap(err, "find category usage")
	}

	return category.Usage{
		UserID:         row.UserID,
		CategoryID:     row.CategoryID,
		Month:          row.Month,
		VisitID:        row.VisitID,
		IsFreeCategory: row.IsFreeCategory,
		CreatedAt:      row.CreatedAt.UTC(),
	}, true, nil
}
