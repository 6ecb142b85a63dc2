package theme

import "context"

type Repository interface {
	FindActive(ctx context.Context, year, month int) (Theme, bool, error)
}
