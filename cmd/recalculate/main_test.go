package main

import (
	"bytes"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/hiking-league/internal/config"
	"github.com/riskibarqy/hiking-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hiking-league/internal/usecase"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	input, err := parseFlags([]string{"-visit", "visit-0001", "-season", "2025", "-user", "u1", "-workers", "8", "-dry-run"}, 4, &out)
	require.NoError(t, err)
	require.Equal(t, usecase.RecalculationInput{
		VisitID:    "visit-0001",
		Season:     2025,
		UserID:     "u1",
		MaxWorkers: 8,
		DryRun:     true,
	}, input)
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	input, err := parseFlags(nil, 6, &out)
	require.NoError(t, err)
	require.Equal(t, usecase.RecalculationInput{MaxWorkers: 6}, input)

	input, err = parseFlags([]string{"-all-seasons"}, 6, &out)
	require.NoError(t, err)
	require.Equal(t, usecase.RecalculationInput{AllSeasons: true, MaxWorkers: 6}, input)
}

func TestParseFlags_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string][]string{
		"negative season": {"-season", "-1"},
		"season and all":  {"-season", "2025", "-all-seasons"},
		"extra argument":  {"visit-0001"},
		"unknown flag":    {"-verbose"},
		"bad workers":     {"-workers", "many"},
	}
	for name, args := range cases {
		args := args
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			_, err := parseFlags(args, 4, &out)
			require.Error(t, err)
			require.NotEmpty(t, out.String())
		})
	}
}

func TestRun_MemoryStorageDryRun(t *testing.T) {
	t.Setenv("APP_ENV", config.EnvDev)
	t.Setenv("STORAGE_DRIVER", config.StorageMemory)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
	t.Setenv("KAFKA_ENABLED", "false")
	t.Setenv("REDIS_URL", "")
	t.Setenv("METRICS_PUSHGATEWAY_URL", "")
	t.Setenv("APP_LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-dry-run", "-season", "2025", "-user", memory.SeedUserAnna}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	var result usecase.RecalculationResult
	require.NoError(t, sonic.Unmarshal(stdout.Bytes(), &result))
	require.True(t, result.DryRun)
	require.Equal(t, 2025, result.Season)
	require.Equal(t, 1, result.VisitCount)
	require.Len(t, result.Items, 1)
	require.Equal(t, "visit-0001", result.Items[0].VisitID)
}
