package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/BrennanB/TBAscripts/internal/domain/team"
	"github.com/valyala/bytebufferpool"
)

// CSVSink writes result rows as CSV. The header is written on creation and
// every row reaches the underlying writer before Write returns.
type CSVSink struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	closed bool
}

// NewCSVSink creates (or truncates) path and writes the header for years.
func NewCSVSink(path string, years []int) (*CSVSink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv output %s: %w", path, err)
	}

	s, err := newCSVSink(file, file, years)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return s, nil
}

// NewCSVSinkTo writes to w. Close does not close w.
func NewCSVSinkTo(w io.Writer, years []int) (*CSVSink, error) {
	return newCSVSink(w, nil, years)
}

func newCSVSink(w io.Writer, closer io.Closer, years []int) (*CSVSink, error) {
	s := &CSVSink{out: w, closer: closer}
	if err := s.writeRecord(team.Header(years)); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return s, nil
}

func (s *CSVSink) Write(_ context.Context, row team.ResultRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("csv sink is closed")
	}
	if err := s.writeRecord(row.Record()); err != nil {
		return fmt.Errorf("write csv row team=%s: %w", row.TeamKey, err)
	}
	return nil
}

func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if s.closer == nil {
		return nil
	}
	if f, ok := s.closer.(*os.File); ok {
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return fmt.Errorf("sync csv output: %w", err)
		}
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("close csv output: %w", err)
	}
	return nil
}

// writeRecord encodes one record into a pooled buffer and hands it to the
// output in a single write, so a failed row never leaves a partial line.
func (s *CSVSink) writeRecord(record []string) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	_, err := s.out.Write(buf.B)
	return err
}
