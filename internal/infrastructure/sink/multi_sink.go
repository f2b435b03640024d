package sink

import (
	"context"
	"errors"

	"github.com/BrennanB/TBAscripts/internal/domain/team"
)

// MultiSink fans every row out to several sinks. A failing sink does not
// stop the others from receiving the row.
type MultiSink struct {
	sinks []team.ResultSink
}

func NewMultiSink(sinks ...team.ResultSink) *MultiSink {
	out := make([]team.ResultSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return &MultiSink{sinks: out}
}

func (m *MultiSink) Write(ctx context.Context, row team.ResultRow) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(ctx, row); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
