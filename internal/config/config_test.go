package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "APP_LOG_LEVEL", "APP_LOG_FORMAT", "STORAGE_DRIVER", "STORAGE_PATH",
		"STORAGE_QUOTA_BYTES", "CACHE_TTL", "DRAFT_OPPONENT_TOP_K", "DRAFT_REPORT_SIMULATED_PICKS",
		"SIMULATION_WORKERS", "UPTRACE_ENABLED", "UPTRACE_DSN", "OTEL_EXPORTER_OTLP_HEADERS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev || cfg.LogFormat != logging.FormatConsole || cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected app defaults: env=%s format=%s level=%s", cfg.AppEnv, cfg.LogFormat, cfg.LogLevel)
	}
	if cfg.StorageDriver != StorageSQLite || cfg.StoragePath != "blueprint.db" {
		t.Fatalf("unexpected storage defaults: %s %s", cfg.StorageDriver, cfg.StoragePath)
	}
	if cfg.StorageQuotaBytes != 5*1024*1024 {
		t.Fatalf("unexpected quota default: %d", cfg.StorageQuotaBytes)
	}
	if cfg.DraftOpponentTopK != 3 || !cfg.DraftReportSimulatedPicks {
		t.Fatalf("unexpected draft defaults: topK=%d report=%t", cfg.DraftOpponentTopK, cfg.DraftReportSimulatedPicks)
	}
	if cfg.CacheTTL != 30*time.Second || cfg.SimulationWorkers != 4 {
		t.Fatalf("unexpected cache/simulation defaults: ttl=%s workers=%d", cfg.CacheTTL, cfg.SimulationWorkers)
	}
	if cfg.UptraceEnabled {
		t.Fatalf("expected uptrace disabled by default")
	}
}

func TestLoad_ProdDefaultsToJSONLogs(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("APP_LOG_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("expected json log format in prod, got %s", cfg.LogFormat)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown storage driver", key: "STORAGE_DRIVER", value: "postgres"},
		{name: "negative quota", key: "STORAGE_QUOTA_BYTES", value: "-1"},
		{name: "bad circuit timeout", key: "STORAGE_CIRCUIT_OPEN_TIMEOUT", value: "soon"},
		{name: "zero failure count", key: "STORAGE_CIRCUIT_FAILURE_COUNT", value: "0"},
		{name: "zero cache ttl", key: "CACHE_TTL", value: "0s"},
		{name: "zero top k", key: "DRAFT_OPPONENT_TOP_K", value: "0"},
		{name: "bad persist flag", key: "DRAFT_REPORT_SIMULATED_PICKS", value: "maybe"},
		{name: "zero workers", key: "SIMULATION_WORKERS", value: "0"},
		{name: "bad log format", key: "APP_LOG_FORMAT", value: "xml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
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
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `other=1, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "BLUEPRINT_DOTENV_TEST_VALUE"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}
