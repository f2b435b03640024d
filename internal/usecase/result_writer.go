package usecase

import (
	"context"
	"fmt"

	"github.com/BrennanB/TBAscripts/internal/domain/team"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
	"github.com/BrennanB/TBAscripts/internal/platform/metrics"
)

const writerProgressEvery = 100

// ResultWriter is the single consumer of the row queue. It owns the sink:
// nothing else writes to it, and it is closed once the queue is drained.
type ResultWriter struct {
	sink          team.ResultSink
	logger        *logging.Logger
	metrics       *metrics.Recorder
	progressEvery int
}

func NewResultWriter(sink team.ResultSink, logger *logging.Logger, recorder *metrics.Recorder) *ResultWriter {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultWriter{
		sink:          sink,
		logger:        logger.Component("result_writer"),
		metrics:       recorder,
		progressEvery: writerProgressEvery,
	}
}

// Run drains rows until the channel is closed, then closes the sink. A row
// that fails to write is logged and dropped; the loop keeps going.
func (w *ResultWriter) Run(ctx context.Context, rows <-chan team.ResultRow) (int, error) {
	// Rows already produced are still written after cancellation.
	ctx = context.WithoutCancel(ctx)

	w.logger.InfoContext(ctx, "result writer started")
	written := 0
	for row := range rows {
		if err := w.sink.Write(ctx, row); err != nil {
			w.logger.ErrorContext(ctx, "write result row failed", "team", row.TeamKey, "error", err)
			continue
		}
		written++
		w.metrics.RowWritten()
		if written%w.progressEvery == 0 {
			w.logger.InfoContext(ctx, "result rows written", "rows", written)
		}
	}
	w.logger.InfoContext(ctx, "result writer finished", "rows", written)

	if err := w.sink.Close(); err != nil {
		return written, fmt.Errorf("close result sink: %w", err)
	}
	return written, nil
}
