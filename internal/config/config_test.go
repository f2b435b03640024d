package config

import (
	"slices"
	"testing"
	"time"

	"github.com/BrennanB/TBAscripts/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("TBA_KEY", "")
	t.Setenv("TBAKEY", "legacy-key")
	t.Setenv("SLFF_YEARS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.TBAKey != "legacy-key" {
		t.Fatalf("expected TBAKEY fallback, got %q", cfg.TBAKey)
	}
	if !slices.Equal(cfg.Years, []int{2024, 2023, 2022}) {
		t.Fatalf("unexpected years: %v", cfg.Years)
	}
	if cfg.RosterYear != 2025 || cfg.ChunkSize != 50 || cfg.Workers != 10 || cfg.QueueSize != 100 {
		t.Fatalf("unexpected pipeline defaults: %+v", cfg)
	}
	if cfg.OutputPath != "BIG DATA.csv" {
		t.Fatalf("unexpected OutputPath: %q", cfg.OutputPath)
	}
	if cfg.AccessThrottle != 20*time.Millisecond || cfg.RosterRetryDelay != 5*time.Second {
		t.Fatalf("unexpected access timings: throttle=%s roster_delay=%s", cfg.AccessThrottle, cfg.RosterRetryDelay)
	}
	if cfg.CacheTTL != time.Hour || cfg.CacheTeamSize != 2000 || cfg.CacheEventSize != 1000 {
		t.Fatalf("unexpected cache defaults: ttl=%s team=%d event=%d", cfg.CacheTTL, cfg.CacheTeamSize, cfg.CacheEventSize)
	}
	if cfg.TBACircuitEnabled {
		t.Fatalf("expected circuit breaker disabled by default")
	}
	if cfg.PyroscopeAppName != cfg.ServiceName {
		t.Fatalf("expected PyroscopeAppName to default to service name, got %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_TBAKeyWinsOverLegacyName(t *testing.T) {
	t.Setenv("TBA_KEY", "primary")
	t.Setenv("TBAKEY", "legacy")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TBAKey != "primary" {
		t.Fatalf("unexpected TBAKey: %q", cfg.TBAKey)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_YearsKeepConfiguredOrder(t *testing.T) {
	t.Setenv("SLFF_YEARS", " 2022, 2024 ,2023")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !slices.Equal(cfg.Years, []int{2022, 2024, 2023}) {
		t.Fatalf("unexpected years: %v", cfg.Years)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric year", key: "SLFF_YEARS", value: "2024,abc"},
		{name: "duplicate year", key: "SLFF_YEARS", value: "2024,2024"},
		{name: "zero chunk size", key: "SLFF_CHUNK_SIZE", value: "0"},
		{name: "bad duration", key: "CACHE_TTL", value: "soon"},
		{name: "bad bool", key: "RESULT_DB_ENABLED", value: "maybe"},
		{name: "bad int", key: "SLFF_WORKERS", value: "ten"},
		{name: "zero attempts", key: "ACCESS_ATTEMPTS", value: "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_ResultDBRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("RESULT_DB_ENABLED", "true")
	t.Setenv("RESULT_DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when RESULT_DB_ENABLED=true without RESULT_DB_URL")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerWhenEnabled(t *testing.T) {
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}
