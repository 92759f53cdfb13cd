package observability

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/blueprint-fantasy/internal/config"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

// Shutdown flushes and stops exporters configured by InitUptrace.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitUptrace configures global OpenTelemetry providers for Uptrace. Every
// command exits within milliseconds, so Shutdown must run before exit or
// the spans are lost.
func InitUptrace(cfg config.Config, logger *logging.Logger) (Shutdown, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logging.SetMirror(nil)

	switch {
	case !cfg.UptraceEnabled:
		logger.Debug("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return noopShutdown, nil
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Warn("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(
			attribute.String("storage.driver", cfg.StorageDriver),
		),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	if cfg.UptraceLogsEnabled {
		logging.SetMirror(newUptraceLogMirror(cfg.ServiceVersion))
	}

	logger.Debug("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		flushErr := uptrace.ForceFlush(ctx)
		if err := uptrace.Shutdown(ctx); err != nil {
			return errors.CombineErrors(errors.Wrap(err, "shutdown uptrace"), flushErr)
		}
		return errors.Wrap(flushErr, "flush uptrace")
	}, nil
}
