package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "slff"

// Recorder collects run metrics on a private registry. A nil *Recorder
// discards everything, so components can take one unconditionally.
type Recorder struct {
	registry *prometheus.Registry

	providerCalls *prometheus.CounterVec
	cacheLookups  *prometheus.GaugeVec
	teams         *prometheus.CounterVec
	rowsWritten   prometheus.Counter
	eventsFetched prometheus.Counter
	chunkDuration prometheus.Histogram
	runDuration   prometheus.Gauge
	rosterSize    prometheus.Gauge
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Recorder{
		registry: registry,
		providerCalls: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Access-layer calls by operation and outcome (ok, fallback).",
		}, []string{"operation", "outcome"}),
		cacheLookups: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_lookups",
			Help:      "Memo cache lookups by family and result (hit, miss) at end of run.",
		}, []string{"family", "result"}),
		teams: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "teams_total",
			Help:      "Teams processed by status (ok, failed).",
		}, []string{"status"}),
		rowsWritten: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Result rows written to the output sink.",
		}),
		eventsFetched: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_fetched_total",
			Help:      "Events whose resource bundle was fetched.",
		}),
		chunkDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_duration_seconds",
			Help:      "Wall time spent per roster chunk.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		runDuration: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		rosterSize: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_size",
			Help:      "Active teams in the roster of the last run.",
		}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) ProviderCall(operation, outcome string) {
	if r == nil {
		return
	}
	r.providerCalls.WithLabelValues(operation, outcome).Inc()
}

func (r *Recorder) CacheLookups(family string, hits, misses int64) {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues(family, "hit").Set(float64(hits))
	r.cacheLookups.WithLabelValues(family, "miss").Set(float64(misses))
}

func (r *Recorder) TeamProcessed(ok bool) {
	if r == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "failed"
	}
	r.teams.WithLabelValues(status).Inc()
}

func (r *Recorder) RowWritten() {
	if r == nil {
		return
	}
	r.rowsWritten.Inc()
}

func (r *Recorder) EventsFetched(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.eventsFetched.Add(float64(n))
}

func (r *Recorder) ObserveChunk(d time.Duration) {
	if r == nil {
		return
	}
	r.chunkDuration.Observe(d.Seconds())
}

func (r *Recorder) ObserveRun(d time.Duration, roster int) {
	if r == nil {
		return
	}
	r.runDuration.Set(d.Seconds())
	r.rosterSize.Set(float64(roster))
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
// An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
