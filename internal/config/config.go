package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config stores runtime configuration for the CLI.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	LogLevel                     logging.Level
	LogFormat                    logging.Format
	StorageDriver                string
	StoragePath                  string
	StorageQuotaBytes            int
	StorageCircuitEnabled        bool
	StorageCircuitFailureCount   int
	StorageCircuitOpenTimeout    time.Duration
	StorageCircuitHalfOpenMaxReq int
	CacheEnabled                 bool
	CacheTTL                     time.Duration
	DraftOpponentTopK            int
	DraftReportSimulatedPicks    bool
	SimulationWorkers            int
	UptraceEnabled               bool
	UptraceDSN                   string
	UptraceLogsEnabled           bool
}

// LoadDotEnv reads the given files (default ".env") into the process
// environment. Variables that are already set win; missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormat, err := parseLogFormat(getEnv("APP_LOG_FORMAT", defaultLogFormat(appEnv)))
	if err != nil {
		return Config{}, err
	}

	storageDriver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageSQLite)))
	if storageDriver != StorageMemory && storageDriver != StorageSQLite {
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", storageDriver, StorageMemory, StorageSQLite)
	}
	storagePath := strings.TrimSpace(getEnv("STORAGE_PATH", "blueprint.db"))
	if storageDriver == StorageSQLite && storagePath == "" {
		return Config{}, fmt.Errorf("STORAGE_PATH is required when STORAGE_DRIVER=sqlite")
	}
	storageQuotaBytes, err := getEnvAsInt("STORAGE_QUOTA_BYTES", 5*1024*1024)
	if err != nil {
		return Config{}, fmt.Errorf("parse STORAGE_QUOTA_BYTES: %w", err)
	}
	if storageQuotaBytes < 0 {
		return Config{}, fmt.Errorf("STORAGE_QUOTA_BYTES must be >= 0")
	}

	storageCircuitEnabled, err := strconv.ParseBool(getEnv("STORAGE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STORAGE_CIRCUIT_ENABLED: %w", err)
	}
	storageCircuitFailureCount, err := getEnvAsInt("STORAGE_CIRCUIT_FAILURE_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse STORAGE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if storageCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("STORAGE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	storageCircuitOpenTimeout, err := time.ParseDuration(getEnv("STORAGE_CIRCUIT_OPEN_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STORAGE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if storageCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("STORAGE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	storageCircuitHalfOpenMaxReq, err := getEnvAsInt("STORAGE_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse STORAGE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if storageCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("STORAGE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	draftOpponentTopK, err := getEnvAsInt("DRAFT_OPPONENT_TOP_K", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_OPPONENT_TOP_K: %w", err)
	}
	if draftOpponentTopK < 1 {
		return Config{}, fmt.Errorf("DRAFT_OPPONENT_TOP_K must be >= 1")
	}
	draftReportSimulatedPicks, err := strconv.ParseBool(getEnv("DRAFT_REPORT_SIMULATED_PICKS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_REPORT_SIMULATED_PICKS: %w", err)
	}

	simulationWorkers, err := getEnvAsInt("SIMULATION_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SIMULATION_WORKERS: %w", err)
	}
	if simulationWorkers < 1 {
		return Config{}, fmt.Errorf("SIMULATION_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	return Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("APP_SERVICE_NAME", "blueprint-fantasy"),
		ServiceVersion:               getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                     logging.ParseLevel(getEnv("APP_LOG_LEVEL", "warn")),
		LogFormat:                    logFormat,
		StorageDriver:                storageDriver,
		StoragePath:                  storagePath,
		StorageQuotaBytes:            storageQuotaBytes,
		StorageCircuitEnabled:        storageCircuitEnabled,
		StorageCircuitFailureCount:   storageCircuitFailureCount,
		StorageCircuitOpenTimeout:    storageCircuitOpenTimeout,
		StorageCircuitHalfOpenMaxReq: storageCircuitHalfOpenMaxReq,
		CacheEnabled:                 cacheEnabled,
		CacheTTL:                     cacheTTL,
		DraftOpponentTopK:            draftOpponentTopK,
		DraftReportSimulatedPicks:    draftReportSimulatedPicks,
		SimulationWorkers:            simulationWorkers,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		UptraceLogsEnabled:           uptraceLogsEnabled,
	}, nil
}

func defaultLogFormat(appEnv string) string {
	if appEnv == EnvDev {
		return string(logging.FormatConsole)
	}
	return string(logging.FormatJSON)
}

func parseLogFormat(v string) (logging.Format, error) {
	switch logging.Format(strings.ToLower(strings.TrimSpace(v))) {
	case logging.FormatJSON:
		return logging.FormatJSON, nil
	case logging.FormatConsole:
		return logging.FormatConsole, nil
	default:
		return "", fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", v, logging.FormatJSON, logging.FormatConsole)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
