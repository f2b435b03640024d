package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BrennanB/TBAscripts/internal/app"
	"github.com/BrennanB/TBAscripts/internal/config"
	"github.com/BrennanB/TBAscripts/internal/observability"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
	"github.com/BrennanB/TBAscripts/internal/usecase"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.NewJSON(logging.LevelError).Error("load config", "error", err)
		return 2
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing := observability.InitTracing(cfg, logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("shutdown tracing", "error", err)
		}
	}()

	stopProfiling, err := observability.InitProfiling(cfg, logger)
	if err != nil {
		logger.Warn("profiling unavailable", "error", err)
		stopProfiling = func() error { return nil }
	}
	defer func() { _ = stopProfiling() }()

	scorer, err := app.NewScorer(cfg, logger)
	if err != nil {
		logger.Error("build scorer", "error", err)
		return 1
	}
	defer func() {
		if err := scorer.Close(); err != nil {
			logger.Warn("close scorer", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := scorer.Run(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrRosterUnavailable) {
			logger.Error("could not fetch the team roster, aborting", "error", err)
		} else {
			logger.Error("scoring run failed", "run_id", summary.RunID, "error", err)
		}
		return 1
	}

	logger.Info("results written",
		"run_id", summary.RunID,
		"rows", summary.Written,
		"output", cfg.OutputPath,
		"duration", summary.Duration,
	)
	return 0
}
