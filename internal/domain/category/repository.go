package category

import (
	"context"
	"time"
)

type Repository interface {
	FindUsage(ctx context.Context, userID, categoryID, month string) (Usage, bool, error)
	FindAnyUsage(ctx context.Context, categoryID, month string) (Usage, bool, error)
	CountFreeUsageSince(ctx context.Context, userID string, since time.Time) (int, error)
}
