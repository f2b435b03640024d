package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/BrennanB/TBAscripts/internal/domain/event"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
	"github.com/BrennanB/TBAscripts/internal/platform/metrics"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const defaultFetchConcurrency = 10

// EventAccess is the degrading per-event read surface the fetcher needs.
// Implementations return empty values instead of errors.
type EventAccess interface {
	EventDistrictPoints(ctx context.Context, eventKey string) map[string]event.DistrictPoints
	EventMatches(ctx context.Context, eventKey string) []event.Match
	EventAwards(ctx context.Context, eventKey string) []event.Award
	EventAlliances(ctx context.Context, eventKey string) []event.Alliance
}

type resourceClass string

const (
	resourceDistrictPoints resourceClass = "district_points"
	resourceMatches        resourceClass = "matches"
	resourceAwards         resourceClass = "awards"
	resourceAlliances      resourceClass = "alliances"
)

var resourceClasses = []resourceClass{
	resourceDistrictPoints,
	resourceMatches,
	resourceAwards,
	resourceAlliances,
}

// EventFetcher pulls the four resource classes for a set of events through
// one bounded pool shared by every class.
type EventFetcher struct {
	access      EventAccess
	concurrency int
	logger      *logging.Logger
	metrics     *metrics.Recorder
}

func NewEventFetcher(access EventAccess, concurrency int, logger *logging.Logger, recorder *metrics.Recorder) *EventFetcher {
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &EventFetcher{
		access:      access,
		concurrency: concurrency,
		logger:      logger.Component("event_fetcher"),
		metrics:     recorder,
	}
}

// Fetch returns one bundle per distinct event key. It blocks until every
// (event, class) request has finished; a failed or panicking request only
// leaves its own slot empty.
func (f *EventFetcher) Fetch(ctx context.Context, eventKeys []string) map[string]event.Bundle {
	keys := uniqueKeys(eventKeys)
	if len(keys) == 0 {
		return map[string]event.Bundle{}
	}

	ctx, span := childSpan(ctx, "usecase.EventFetcher.Fetch", attribute.Int("events", len(keys)))
	defer span.End()

	bundles := make(map[string]*event.Bundle, len(keys))
	for _, key := range keys {
		bundles[key] = &event.Bundle{DistrictPoints: map[string]event.DistrictPoints{}}
	}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(f.concurrency)
	for _, class := range resourceClasses {
		class := class
		for _, key := range keys {
			key := key
			bundle := bundles[key]
			p.Go(func() {
				var catcher panics.Catcher
				catcher.Try(func() {
					f.fetchClass(ctx, class, key, bundle, &mu)
				})
				if recovered := catcher.Recovered(); recovered != nil {
					f.logger.ErrorContext(ctx, "event resource fetch panicked",
						"event", key,
						"resource", string(class),
						"error", recovered.AsError(),
					)
				}
			})
		}
	}
	p.Wait()

	out := make(map[string]event.Bundle, len(bundles))
	for key, bundle := range bundles {
		out[key] = *bundle
	}
	f.metrics.EventsFetched(len(out))
	f.logger.DebugContext(ctx, "event bundles fetched", "events", len(out))
	return out
}

func (f *EventFetcher) fetchClass(ctx context.Context, class resourceClass, key string, bundle *event.Bundle, mu *sync.Mutex) {
	switch class {
	case resourceDistrictPoints:
		points := f.access.EventDistrictPoints(ctx, key)
		if points == nil {
			return
		}
		mu.Lock()
		bundle.DistrictPoints = points
		mu.Unlock()
	case resourceMatches:
		matches := f.access.EventMatches(ctx, key)
		mu.Lock()
		bundle.Matches = matches
		mu.Unlock()
	case resourceAwards:
		awards := f.access.EventAwards(ctx, key)
		mu.Lock()
		bundle.Awards = awards
		mu.Unlock()
	case resourceAlliances:
		alliances := f.access.EventAlliances(ctx, key)
		mu.Lock()
		bundle.Alliances = alliances
		mu.Unlock()
	}
}

func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
