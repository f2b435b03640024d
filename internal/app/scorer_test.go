package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BrennanB/TBAscripts/internal/config"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
)

func newFakeTBA(t *testing.T) *httptest.Server {
	t.Helper()

	routes := map[string]string{
		"/teams/2025/0/keys":              `["frc254","frc1678"]`,
		"/teams/2025/1/keys":              `[]`,
		"/team/frc254":                    `{"key":"frc254","team_number":254,"nickname":"The Cheesy Poofs"}`,
		"/team/frc254/events/2024":        `[{"key":"2024casj","event_type":0,"year":2024,"end_date":"2024-03-30"}]`,
		"/event/2024casj/district_points": `{"points":{"frc254":{"alliance_points":6,"qual_points":10}}}`,
		"/event/2024casj/matches":         `[]`,
		"/event/2024casj/awards":          `[]`,
		"/event/2024casj/alliances":       `[]`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL, dir string) config.Config {
	return config.Config{
		AppEnv:                   config.EnvDev,
		ServiceName:              "slff-scorer",
		TBABaseURL:               baseURL,
		TBAKey:                   "test-key",
		TBATimeout:               5 * time.Second,
		TBARetryBase:             time.Millisecond,
		TBACircuitFailureCount:   20,
		TBACircuitOpenTimeout:    time.Second,
		TBACircuitHalfOpenMaxReq: 1,
		Years:                    []int{2024},
		RosterYear:               2025,
		ChunkSize:                2,
		Workers:                  1,
		FetchConcurrency:         2,
		QueueSize:                4,
		OutputPath:               filepath.Join(dir, "BIG DATA.csv"),
		AccessAttempts:           1,
		RosterAttempts:           1,
		CacheTTL:                 time.Hour,
		CacheTeamSize:            16,
		CacheEventSize:           16,
		ResultDBBatchSize:        10,
		MetricsTextfile:          filepath.Join(dir, "slff.prom"),
	}
}

func TestScorer_RunWritesCSVAndMetrics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := testConfig(newFakeTBA(t).URL, dir)

	scorer, err := NewScorer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new scorer: %v", err)
	}
	t.Cleanup(func() { _ = scorer.Close() })

	summary, err := scorer.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Roster != 2 || summary.Written != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	raw, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines got=%d want=2: %q", len(lines), raw)
	}
	wantHeader := "Team Number,Team Name,Avg SLFF Points,2024 Avg SLFF,2024 Impact,2024 EI,2024 Robot,2024 Sustainability,Full Year Avg SLFF,2024 Full Year Avg"
	if lines[0] != wantHeader {
		t.Fatalf("header got=%q want=%q", lines[0], wantHeader)
	}
	if want := "254,The Cheesy Poofs,16.0,16.0,0,0,0,0,16.0,16.0"; lines[1] != want {
		t.Fatalf("row got=%q want=%q", lines[1], want)
	}

	prom, err := os.ReadFile(cfg.MetricsTextfile)
	if err != nil {
		t.Fatalf("read metrics textfile: %v", err)
	}
	if !strings.Contains(string(prom), "slff_rows_written_total 1") {
		t.Fatalf("metrics textfile missing rows written: %s", prom)
	}
}

func TestScorer_RosterFailureLeavesHeaderOnly(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL, t.TempDir())
	scorer, err := NewScorer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new scorer: %v", err)
	}

	if _, err := scorer.Run(context.Background()); err == nil {
		t.Fatalf("expected roster failure")
	}
	raw, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := strings.Count(string(raw), "\n"); got != 1 {
		t.Fatalf("expected header only, got %d lines", got)
	}
}
