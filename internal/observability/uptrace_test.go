package observability

import (
	"context"
	"testing"
	"time"

	"github.com/BrennanB/TBAscripts/internal/config"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
)

func TestInitTracing_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	cases := []config.Config{
		{UptraceEnabled: false, UptraceDSN: "https://token@api.uptrace.dev/1"},
		{UptraceEnabled: true, UptraceDSN: ""},
	}
	for _, cfg := range cases {
		if tracingEnabled(cfg) {
			t.Fatalf("expected tracing disabled for %+v", cfg)
		}
		shutdown := InitTracing(cfg, logging.NewNop())
		if err := shutdown(context.Background()); err != nil {
			t.Fatalf("shutdown tracing: %v", err)
		}
	}
}

func TestInitProfiling_Disabled(t *testing.T) {
	t.Parallel()

	stop, err := InitProfiling(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init profiling: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop profiling: %v", err)
	}
}

func TestProfilerConfig_TagsRun(t *testing.T) {
	t.Parallel()

	got := profilerConfig(config.Config{
		AppEnv:              config.EnvProd,
		ServiceName:         "slff-scorer",
		ServiceVersion:      "1.4.0",
		RosterYear:          2025,
		PyroscopeAppName:    "slff-scorer",
		PyroscopeUploadRate: 15 * time.Second,
	})
	if got.Tags["roster_year"] != "2025" || got.Tags["env"] != config.EnvProd || got.Tags["version"] != "1.4.0" {
		t.Fatalf("unexpected tags: %v", got.Tags)
	}
	if got.ApplicationName != "slff-scorer" || got.UploadRate != 15*time.Second {
		t.Fatalf("unexpected profiler config: %+v", got)
	}
	if len(got.ProfileTypes) == 0 {
		t.Fatalf("expected profile types")
	}
}
