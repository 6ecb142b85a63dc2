package scoring

import "context"

type Repository interface {
	GetActiveConfig(ctx context.Context) (Config, bool, error)
}

// Publisher announces persisted score changes to other services.
type Publisher interface {
	PublishRecalculated(ctx context.Context, event RecalculatedEvent) error
}
