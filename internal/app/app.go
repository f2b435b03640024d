package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/BrennanB/TBAscripts/external/tba"
	"github.com/BrennanB/TBAscripts/internal/config"
	"github.com/BrennanB/TBAscripts/internal/domain/team"
	"github.com/BrennanB/TBAscripts/internal/infrastructure/repository/postgres"
	"github.com/BrennanB/TBAscripts/internal/infrastructure/sink"
	"github.com/BrennanB/TBAscripts/internal/platform/id"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
	"github.com/BrennanB/TBAscripts/internal/platform/metrics"
	"github.com/BrennanB/TBAscripts/internal/platform/resilience"
	"github.com/BrennanB/TBAscripts/internal/usecase"
	"github.com/jmoiron/sqlx"
)

// Scorer is one fully wired scoring run.
type Scorer struct {
	pipeline *usecase.Pipeline
	access   *usecase.RemoteAccess
	recorder *metrics.Recorder
	db       *sqlx.DB
	logger   *logging.Logger

	metricsTextfile string
}

func NewScorer(cfg config.Config, logger *logging.Logger) (*Scorer, error) {
	if logger == nil {
		logger = logging.Default()
	}
	recorder := metrics.NewRecorder()

	client := tba.NewClient(tba.ClientConfig{
		BaseURL:    cfg.TBABaseURL,
		AuthKey:    cfg.TBAKey,
		Timeout:    cfg.TBATimeout,
		MaxRetries: cfg.TBAMaxRetries,
		RetryBase:  cfg.TBARetryBase,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.TBACircuitEnabled,
			FailureThreshold: cfg.TBACircuitFailureCount,
			OpenTimeout:      cfg.TBACircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.TBACircuitHalfOpenMaxReq,
		},
	})

	access := usecase.NewRemoteAccess(client, client, usecase.RemoteAccessConfig{
		Retry: resilience.RetryConfig{
			Attempts: cfg.AccessAttempts,
			Step:     cfg.AccessBackoffUnit,
			Throttle: cfg.AccessThrottle,
		},
		CacheTTL:         cfg.CacheTTL,
		TeamCacheSize:    cfg.CacheTeamSize,
		EventCacheSize:   cfg.CacheEventSize,
		RosterAttempts:   cfg.RosterAttempts,
		RosterRetryDelay: cfg.RosterRetryDelay,
	}, logger, recorder)

	resultSink, db, err := newResultSink(cfg, logger)
	if err != nil {
		return nil, err
	}

	pipeline := usecase.NewPipeline(
		usecase.PipelineConfig{
			RosterYear: cfg.RosterYear,
			ChunkSize:  cfg.ChunkSize,
			Workers:    cfg.Workers,
			QueueSize:  cfg.QueueSize,
		},
		access,
		usecase.NewTeamAggregator(access, cfg.Years, logger),
		usecase.NewEventFetcher(access, cfg.FetchConcurrency, logger, recorder),
		resultSink,
		id.NewUUIDGenerator(),
		logger,
		recorder,
	)

	return &Scorer{
		pipeline:        pipeline,
		access:          access,
		recorder:        recorder,
		db:              db,
		logger:          logger.Component("app"),
		metricsTextfile: cfg.MetricsTextfile,
	}, nil
}

// Run executes the pipeline, then publishes cache stats and the metrics textfile.
func (s *Scorer) Run(ctx context.Context) (usecase.RunSummary, error) {
	summary, err := s.pipeline.Run(ctx)

	s.access.ReportCacheStats()
	if s.metricsTextfile != "" {
		if writeErr := s.recorder.WriteTextfile(s.metricsTextfile); writeErr != nil {
			s.logger.WarnContext(ctx, "write metrics textfile failed", "path", s.metricsTextfile, "error", writeErr)
		}
	}

	return summary, err
}

func (s *Scorer) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func newResultSink(cfg config.Config, logger *logging.Logger) (team.ResultSink, *sqlx.DB, error) {
	csvSink, err := sink.NewCSVSink(cfg.OutputPath, cfg.Years)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv output: %w", err)
	}
	if !cfg.ResultDBEnabled {
		return csvSink, nil, nil
	}

	db, err := openResultDB(cfg)
	if err != nil {
		return nil, nil, errors.Join(err, csvSink.Close())
	}
	logger.Info("result database enabled", "db", dbNameFromURL(cfg.ResultDBURL))

	return sink.NewMultiSink(csvSink, postgres.NewTeamResultRepository(db, cfg.ResultDBBatchSize)), db, nil
}
