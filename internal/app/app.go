package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/hiking-league/internal/config"
	"github.com/riskibarqy/hiking-league/internal/domain/category"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/domain/theme"
	"github.com/riskibarqy/hiking-league/internal/domain/visit"
	"github.com/riskibarqy/hiking-league/internal/infrastructure/events"
	"github.com/riskibarqy/hiking-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/hiking-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hiking-league/internal/infrastructure/repository/postgres"
	idgen "github.com/riskibarqy/hiking-league/internal/platform/id"
	"github.com/riskibarqy/hiking-league/internal/platform/lock"
	"github.com/riskibarqy/hiking-league/internal/platform/logging"
	"github.com/riskibarqy/hiking-league/internal/platform/resilience"
	"github.com/riskibarqy/hiking-league/internal/usecase"
)

// App holds the wired services of the scoring engine.
type App struct {
	Recalculation *usecase.RecalculationService
	Submission    *usecase.SubmissionService
	Scoring       *usecase.ScoringService
	Similarity    *usecase.SimilarityService
	Categories    *usecase.CategoryService
	Themes        *usecase.ThemeService

	closers []func() error
}

type repositories struct {
	visits     visit.Repository
	configs    scoring.Repository
	themes     theme.Repository
	categories category.Repository
}

// New builds the service graph from cfg. Call Close when done.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &App{}
	repos, err := app.openRepositories(ctx, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	locker, err := app.newLocker(ctx, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	publisher := app.newPublisher(cfg, logger)

	configs := repos.configs
	themes := repos.themes
	if cfg.CacheEnabled {
		configs = cache.NewScoringRepository(configs, cfg.CacheTTL)
		themes = cache.NewThemeRepository(themes, cfg.CacheTTL)
	}

	app.Themes = usecase.NewThemeService(themes)
	app.Scoring = usecase.NewScoringService(app.Themes)
	app.Similarity = usecase.NewSimilarityService(repos.visits, logger.Named("similarity"))
	app.Categories = usecase.NewCategoryService(repos.categories)
	app.Submission = usecase.NewSubmissionService(
		configs,
		app.Scoring,
		app.Similarity,
		app.Categories,
		usecase.SubmissionRules{
			AllowedActivityTypes: cfg.AllowedActivityTypes,
			ProximityMaxMeters:   cfg.ProximityMaxMeters,
			PhotoMaxDaysOld:      cfg.PhotoMaxDaysOld,
		},
		logger.Named("submission"),
	)
	app.Recalculation = usecase.NewRecalculationService(
		repos.visits,
		configs,
		app.Scoring,
		locker,
		publisher,
		idgen.NewUUIDGenerator(),
		logger.Named("recalculation"),
	)

	return app, nil
}

// Close releases connections in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.StorageDriver == config.StorageMemory {
		defaultConfig := scoring.DefaultConfig()
		logger.Info("using in-memory storage with seed data")
		return repositories{
			visits:     memory.NewVisitRepository(memory.SeedVisits()),
			configs:    memory.NewScoringRepository(&defaultConfig),
			themes:     memory.NewThemeRepository(memory.SeedThemes()),
			categories: memory.NewCategoryRepository(nil),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, db.Close)

	if cfg.DBSeedEnabled {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.Info("database bootstrap seed applied")
	}

	return repositories{
		visits:     postgres.NewVisitRepository(db),
		configs:    postgres.NewScoringRepository(db),
		themes:     postgres.NewThemeRepository(db),
		categories: postgres.NewCategoryRepository(db),
	}, nil
}

func (a *App) newLocker(ctx context.Context, cfg config.Config, logger *logging.Logger) (lock.Locker, error) {
	if cfg.RedisURL == "" {
		logger.Info("using process-local visit locks", "reason", "REDIS_URL empty")
		return lock.NewLocalLocker(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	a.closers = append(a.closers, client.Close)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return lock.NewRedisLocker(client, cfg.LockPrefix), nil
}

func (a *App) newPublisher(cfg config.Config, logger *logging.Logger) scoring.Publisher {
	if !cfg.KafkaEnabled {
		logger.Info("score events disabled", "reason", "KAFKA_ENABLED=false")
		return events.NopPublisher{}
	}

	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaScoreTopic, resilience.CircuitBreakerConfig{
		Enabled:          cfg.KafkaCircuitEnabled,
		FailureThreshold: cfg.KafkaCircuitFailures,
		OpenTimeout:      cfg.KafkaCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.KafkaCircuitHalfOpenMax,
	})
	a.closers = append(a.closers, publisher.Close)
	return publisher
}
