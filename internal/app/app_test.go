package app

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/riskibarqy/hiking-league/internal/config"
	"github.com/riskibarqy/hiking-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hiking-league/internal/platform/logging"
	"github.com/riskibarqy/hiking-league/internal/usecase"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:               config.EnvDev,
		ServiceName:          "hiking-league-scoring",
		StorageDriver:        config.StorageMemory,
		CacheEnabled:         true,
		CacheTTL:             time.Minute,
		LockPrefix:           "test:lock:",
		AllowedActivityTypes: []string{"walking"},
		ProximityMaxMeters:   100,
		PhotoMaxDaysOld:      14,
		RecalcWorkers:        2,
	}
}

func TestNew_MemoryStorageRecalculatesSeedData(t *testing.T) {
	t.Parallel()

	app, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	defer func() { require.NoError(t, app.Close()) }()

	result, err := app.Recalculation.Recalculate(context.Background(), usecase.RecalculationInput{Season: 2025, MaxWorkers: 2})
	require.NoError(t, err)
	require.Equal(t, 2, result.VisitCount)
	require.Equal(t, 1, result.SkippedCount)
	require.Zero(t, result.FailedCount)
	require.NotEmpty(t, result.RunID)
}

func TestNew_RedisLocker(t *testing.T) {
	t.Parallel()

	server := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.RedisURL = "redis://" + server.Addr()

	app, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer func() { require.NoError(t, app.Close()) }()

	result, err := app.Recalculation.Recalculate(context.Background(), usecase.RecalculationInput{
		Season: 2025,
		UserID: memory.SeedUserAnna,
		DryRun: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.VisitCount)
	require.Zero(t, result.FailedCount)
	require.Empty(t, server.Keys(), "visit locks must be released after the run")
}

func TestNew_InvalidRedisURL(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.RedisURL = "mysql://localhost"

	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestNew_KafkaPublisherIsClosed(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.KafkaEnabled = true
	cfg.KafkaBrokers = []string{"127.0.0.1:1"}
	cfg.KafkaScoreTopic = "hiking.visit-scores"
	cfg.KafkaCircuitFailures = 1
	cfg.KafkaCircuitOpenTimeout = time.Second
	cfg.KafkaCircuitHalfOpenMax = 1

	app, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	require.Len(t, app.closers, 1)
	require.NoError(t, app.Close())
	require.Empty(t, app.closers)
}
