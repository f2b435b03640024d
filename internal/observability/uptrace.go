package observability

import (
	"context"

	"github.com/BrennanB/TBAscripts/internal/config"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// InitTracing exports pipeline spans to Uptrace. The returned shutdown
// flushes pending spans; a batch run exits right after, so main must call it.
func InitTracing(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	logger = logger.Component("observability")
	if !tracingEnabled(cfg) {
		logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled, "dsn_set", cfg.UptraceDSN != "")
		return func(context.Context) error { return nil }
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)

	return uptrace.Shutdown
}

func tracingEnabled(cfg config.Config) bool {
	return cfg.UptraceEnabled && cfg.UptraceDSN != ""
}
