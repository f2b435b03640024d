package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BrennanB/TBAscripts/internal/domain/event"
	"github.com/BrennanB/TBAscripts/internal/domain/team"
	"github.com/BrennanB/TBAscripts/internal/platform/id"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
	"github.com/BrennanB/TBAscripts/internal/platform/metrics"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
)

type PipelineConfig struct {
	RosterYear int
	ChunkSize  int
	Workers    int
	QueueSize  int
}

func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		RosterYear: 2025,
		ChunkSize:  50,
		Workers:    10,
		QueueSize:  100,
	}
}

// RosterSource lists the teams a run should score.
type RosterSource interface {
	ActiveTeamKeys(ctx context.Context, year int) ([]string, error)
}

type RunSummary struct {
	RunID     string
	Roster    int
	Chunks    int
	Succeeded int
	Failed    int
	Written   int
	Duration  time.Duration
}

// Pipeline scores the whole roster: chunks run concurrently on a worker
// pool and every finished row goes through one queue to one writer.
type Pipeline struct {
	cfg        PipelineConfig
	roster     RosterSource
	aggregator *TeamAggregator
	fetcher    *EventFetcher
	sink       team.ResultSink
	ids        id.Generator
	logger     *logging.Logger
	metrics    *metrics.Recorder
}

func NewPipeline(
	cfg PipelineConfig,
	roster RosterSource,
	aggregator *TeamAggregator,
	fetcher *EventFetcher,
	sink team.ResultSink,
	ids id.Generator,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *Pipeline {
	defaults := DefaultPipelineConfig()
	if cfg.RosterYear <= 0 {
		cfg.RosterYear = defaults.RosterYear
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaults.ChunkSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaults.QueueSize
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Pipeline{
		cfg:        cfg,
		roster:     roster,
		aggregator: aggregator,
		fetcher:    fetcher,
		sink:       sink,
		ids:        ids,
		logger:     logger.Component("pipeline"),
		metrics:    recorder,
	}
}

// Run scores every roster team and writes one row per team that succeeded.
// Only a roster failure aborts the run; it is returned as ErrRosterUnavailable.
// The sink is closed before Run returns in every case.
func (p *Pipeline) Run(ctx context.Context) (RunSummary, error) {
	start := time.Now()
	runID, err := p.ids.NewID()
	if err != nil {
		return RunSummary{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	summary := RunSummary{RunID: runID}
	logger := p.logger.With("run_id", runID)

	ctx, span := rootSpan(ctx, "usecase.Pipeline.Run",
		attribute.String("run_id", runID),
		attribute.Int("roster_year", p.cfg.RosterYear),
	)
	defer span.End()

	keys, err := p.roster.ActiveTeamKeys(ctx, p.cfg.RosterYear)
	if err != nil {
		failSpan(span, err, "roster unavailable")
		if closeErr := p.sink.Close(); closeErr != nil {
			logger.WarnContext(ctx, "close result sink failed", "error", closeErr)
		}
		if !errors.Is(err, ErrRosterUnavailable) {
			err = fmt.Errorf("%w: %v", ErrRosterUnavailable, err)
		}
		return summary, err
	}
	summary.Roster = len(keys)

	chunks := chunkKeys(keys, p.cfg.ChunkSize)
	summary.Chunks = len(chunks)
	logger.InfoContext(ctx, "pipeline started",
		"teams", len(keys),
		"chunks", len(chunks),
		"chunk_size", p.cfg.ChunkSize,
		"workers", p.cfg.Workers,
	)

	rows := make(chan team.ResultRow, p.cfg.QueueSize)
	writer := NewResultWriter(p.sink, logger, p.metrics)
	type writerResult struct {
		written int
		err     error
	}
	writerDone := make(chan writerResult, 1)
	go func() {
		written, err := writer.Run(ctx, rows)
		writerDone <- writerResult{written: written, err: err}
	}()

	var succeeded, failed atomic.Int32
	runErr := p.runChunks(ctx, logger, runID, chunks, rows, &succeeded, &failed)

	// Every producer has returned, so closing the queue marks its end for the writer.
	close(rows)
	result := <-writerDone

	summary.Succeeded = int(succeeded.Load())
	summary.Failed = int(failed.Load())
	summary.Written = result.written
	summary.Duration = time.Since(start)
	p.metrics.ObserveRun(summary.Duration, summary.Roster)

	logger.InfoContext(ctx, "pipeline finished",
		"teams", summary.Roster,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"written", summary.Written,
		"duration", summary.Duration,
	)

	if runErr != nil {
		failSpan(span, runErr, "pipeline aborted")
		return summary, runErr
	}
	if result.err != nil {
		failSpan(span, result.err, "result writer failed")
		return summary, result.err
	}
	return summary, nil
}

func (p *Pipeline) runChunks(
	ctx context.Context,
	logger *logging.Logger,
	runID string,
	chunks [][]string,
	rows chan<- team.ResultRow,
	succeeded, failed *atomic.Int32,
) error {
	pool, err := ants.NewPool(p.cfg.Workers, ants.WithPanicHandler(func(recovered any) {
		logger.ErrorContext(ctx, "chunk worker panicked", "error", recovered)
	}))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for idx, chunk := range chunks {
		idx, chunk := idx, chunk
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			ok, bad := p.processChunk(ctx, logger, runID, idx, len(chunks), chunk, rows)
			succeeded.Add(int32(ok))
			failed.Add(int32(bad))
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit chunk to worker pool: %w", err)
		}
	}
	workers.Wait()
	return nil
}

// processChunk collects the chunk's events, fetches their union once and
// aggregates every team against the shared bundles.
func (p *Pipeline) processChunk(
	ctx context.Context,
	logger *logging.Logger,
	runID string,
	idx, total int,
	chunk []string,
	rows chan<- team.ResultRow,
) (succeeded, failed int) {
	start := time.Now()
	ctx, span := childSpan(ctx, "usecase.Pipeline.processChunk",
		attribute.Int("chunk", idx+1),
		attribute.Int("teams", len(chunk)),
	)
	defer span.End()

	logger.InfoContext(ctx, "processing chunk", "chunk", idx+1, "chunks", total, "teams", len(chunk))

	teamEvents := make(map[string][]event.Event, len(chunk))
	var eventKeys []string
	for _, teamKey := range chunk {
		events := p.aggregator.CollectEvents(ctx, teamKey)
		teamEvents[teamKey] = events
		for _, ev := range events {
			eventKeys = append(eventKeys, ev.Key)
		}
	}

	bundles := p.fetcher.Fetch(ctx, eventKeys)

	for _, teamKey := range chunk {
		row, err := p.aggregator.Aggregate(ctx, teamKey, teamEvents[teamKey], bundles)
		if err != nil {
			failed++
			p.metrics.TeamProcessed(false)
			logger.ErrorContext(ctx, "team processing failed, skipping", "team", teamKey, "error", err)
			continue
		}
		row.RunID = runID
		succeeded++
		p.metrics.TeamProcessed(true)
		rows <- row
	}

	p.metrics.ObserveChunk(time.Since(start))
	logger.InfoContext(ctx, "chunk finished",
		"chunk", idx+1,
		"events", len(bundles),
		"succeeded", succeeded,
		"failed", failed,
	)
	return succeeded, failed
}

func chunkKeys(keys []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}
	chunks := make([][]string, 0, (len(keys)+size-1)/size)
	for start := 0; start < len(keys); start += size {
		end := min(start+size, len(keys))
		chunks = append(chunks, keys[start:end])
	}
	return chunks
}
