package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/hiking-league/internal/domain/theme"
	qb "github.com/riskibarqy/hiking-league/internal/platform/querybuilder"
)

type monthlyThemeTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	Year      int            `db:"year"`
	Month     int            `db:"month"`
	Name      string         `db:"name"`
	Keywords  pq.StringArray `db:"keywords"`
	IsActive  bool           `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type monthlyThemeInsertModel struct {
	PublicID string         `db:"public_id"`
	Year     int            `db:"year"`
	Month    int            `db:"month"`
	Name     string         `db:"name"`
	Keywords pq.StringArray `db:"keywords"`
	IsActive bool           `db:"is_active"`
}

type ThemeRepository struct {
	db *sqlx.DB
}

func NewThemeRepository(db *sqlx.DB) *ThemeRepository {
	return &ThemeRepository{db: db}
}

func (r *ThemeRepository) FindActive(ctx context.Context, year, month int) (theme.Theme, bool, error) {
	query, args, err := qb.Select("*").From("monthly_themes").
		Where(
			qb.Eq("year", year),
			qb.Eq("month", month),
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return theme.Theme{}, false, crerr.Wrap(err, "build find active theme query")
	}

	var row monthlyThemeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return theme.Theme{}, false, nil
		}
		return theme.Theme{}, false, crerr.Wrapf(err, "find theme %04d-%02d", year, month)
	}

	return theme.Theme{
		ID:       row.PublicID,
		Year:     row.Year,
		Month:    row.Month,
		Name:     row.Name,
		Keywords: []string(row.Keywords),
	}, true, nil
}

func (r *ThemeRepository) Upsert(ctx context.Context, item theme.Theme) error {
	query, args, err := qb.InsertModel("monthly_themes", monthlyThemeInsertModel{
		PublicID: item.ID,
		Year:     item.Year,
		Month:    item.Month,
		Name:     item.Name,
		Keywords: pq.StringArray(item.Keywords),
		IsActive: true,
	}, "ON CONFLICT (public_id) DO UPDATE SET keywords = EXCLUDED.keywords, name = EXCLUDED.name, updated_at = NOW()")
	if err != nil {
		return crerr.Wrap(err, "build upsert theme query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "upsert theme %s", item.ID)
	}
	return nil
}
