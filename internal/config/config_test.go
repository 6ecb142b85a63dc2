package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid STORAGE_DRIVER")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_KafkaRequiresBrokersWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when KAFKA_ENABLED=true without KAFKA_BROKERS")
	}
}

func TestLoad_SeasonRules(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SEASON_ALLOWED_ACTIVITY_TYPES", "walking, hiking ,")
	t.Setenv("VISIT_PROXIMITY_MAX_METERS", "250.5")
	t.Setenv("VISIT_PHOTO_MAX_DAYS_OLD", "7")
	t.Setenv("RECALC_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if want := []string{"walking", "hiking"}; !reflect.DeepEqual(cfg.AllowedActivityTypes, want) {
		t.Fatalf("unexpected AllowedActivityTypes: got=%v want=%v", cfg.AllowedActivityTypes, want)
	}
	if cfg.ProximityMaxMeters != 250.5 {
		t.Fatalf("unexpected ProximityMaxMeters: %v", cfg.ProximityMaxMeters)
	}
	if cfg.PhotoMaxDaysOld != 7 {
		t.Fatalf("unexpected PhotoMaxDaysOld: %d", cfg.PhotoMaxDaysOld)
	}
	if cfg.RecalcWorkers != 8 {
		t.Fatalf("unexpected RecalcWorkers: %d", cfg.RecalcWorkers)
	}
}

func TestLoad_RejectsInvalidNumbers(t *testing.T) {
	cases := map[string]string{
		"VISIT_PROXIMITY_MAX_METERS":  "0",
		"VISIT_PHOTO_MAX_DAYS_OLD":    "-1",
		"RECALC_WORKERS":              "zero",
		"CACHE_TTL":                   "0s",
		"KAFKA_CIRCUIT_FAILURE_COUNT": "0",
		"DB_MAX_OPEN_CONNS":           "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"STORAGE_DRIVER", "CACHE_TTL", "KAFKA_ENABLED", "KAFKA_SCORE_TOPIC",
		"SEASON_ALLOWED_ACTIVITY_TYPES", "RECALC_WORKERS", "APP_LOG_LEVEL",
		"PYROSCOPE_APP_NAME", "APP_SERVICE_NAME",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StoragePostgres {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.KafkaEnabled {
		t.Fatalf("expected KafkaEnabled=false by default")
	}
	if cfg.KafkaScoreTopic != "hiking.visit-scores" {
		t.Fatalf("unexpected KafkaScoreTopic: %q", cfg.KafkaScoreTopic)
	}
	if want := []string{"walking"}; !reflect.DeepEqual(cfg.AllowedActivityTypes, want) {
		t.Fatalf("unexpected AllowedActivityTypes: got=%v want=%v", cfg.AllowedActivityTypes, want)
	}
	if cfg.RecalcWorkers != 4 {
		t.Fatalf("unexpected RecalcWorkers: %d", cfg.RecalcWorkers)
	}
	if cfg.LogLevel.String() != "info" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel.String())
	}
	if cfg.PyroscopeAppName != cfg.ServiceName {
		t.Fatalf("unexpected PyroscopeAppName: got=%q want=%q", cfg.PyroscopeAppName, cfg.ServiceName)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"WARNING": "warn",
		" error ": "error",
		"verbose": "info",
	}
	for in, want := range cases {
		if got := parseLogLevel(in).String(); got != want {
			t.Fatalf("unexpected level for %q: got=%s want=%s", in, got, want)
		}
	}
}
