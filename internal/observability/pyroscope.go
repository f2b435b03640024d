package observability

import (
	"fmt"
	"strconv"

	"github.com/BrennanB/TBAscripts/internal/config"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
	"github.com/grafana/pyroscope-go"
)

var runProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
}

// InitProfiling starts continuous profiling of the run when enabled. The
// returned stop flushes the last upload.
func InitProfiling(cfg config.Config, logger *logging.Logger) (func() error, error) {
	logger = logger.Component("observability")
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(profilerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}
	logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)

	return profiler.Stop, nil
}

func profilerConfig(cfg config.Config) pyroscope.Config {
	return pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":         cfg.AppEnv,
			"service":     cfg.ServiceName,
			"version":     cfg.ServiceVersion,
			"roster_year": strconv.Itoa(cfg.RosterYear),
		},
		ProfileTypes: runProfileTypes,
	}
}
