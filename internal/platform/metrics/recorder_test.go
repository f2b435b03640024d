package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_CountsRunActivity(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.ProviderCall("event_matches", "ok")
	r.ProviderCall("event_matches", "ok")
	r.ProviderCall("event_awards", "fallback")
	r.TeamProcessed(true)
	r.TeamProcessed(false)
	r.RowWritten()
	r.CacheLookups("team", 7, 3)

	if got := testutil.ToFloat64(r.providerCalls.WithLabelValues("event_matches", "ok")); got != 2 {
		t.Fatalf("event_matches ok=%v want=2", got)
	}
	if got := testutil.ToFloat64(r.providerCalls.WithLabelValues("event_awards", "fallback")); got != 1 {
		t.Fatalf("event_awards fallback=%v want=1", got)
	}
	if got := testutil.ToFloat64(r.teams.WithLabelValues("failed")); got != 1 {
		t.Fatalf("failed teams=%v want=1", got)
	}
	if got := testutil.ToFloat64(r.rowsWritten); got != 1 {
		t.Fatalf("rows written=%v want=1", got)
	}
	if got := testutil.ToFloat64(r.cacheLookups.WithLabelValues("team", "miss")); got != 3 {
		t.Fatalf("team misses=%v want=3", got)
	}
}

func TestRecorder_WriteTextfile(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.ObserveRun(90*time.Second, 3500)

	path := filepath.Join(t.TempDir(), "slff.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(raw), "slff_roster_size 3500") {
		t.Fatalf("expected roster gauge in textfile, got=%s", raw)
	}
}

func TestRecorder_NilIsNoop(t *testing.T) {
	t.Parallel()

	var r *Recorder
	r.ProviderCall("team", "ok")
	r.TeamProcessed(true)
	r.RowWritten()
	r.ObserveChunk(time.Second)
	if err := r.WriteTextfile("/nonexistent/dir/x.prom"); err != nil {
		t.Fatalf("nil recorder must not write, got=%v", err)
	}
}
