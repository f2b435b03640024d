package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BrennanB/TBAscripts/internal/domain/event"
	"github.com/BrennanB/TBAscripts/internal/domain/team"
	"github.com/BrennanB/TBAscripts/internal/platform/cache"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
	"github.com/BrennanB/TBAscripts/internal/platform/metrics"
	"github.com/BrennanB/TBAscripts/internal/platform/resilience"
)

const (
	operationTeam           = "team"
	operationTeamEvents     = "team_events"
	operationDistrictPoints = "district_points"
	operationMatches        = "matches"
	operationAwards         = "awards"
	operationAlliances      = "alliances"
	operationRoster         = "roster"

	outcomeOK       = "ok"
	outcomeFallback = "fallback"

	rosterSampleSize = 5
)

var errEmptyRoster = errors.New("provider returned an empty roster")

type RemoteAccessConfig struct {
	Retry            resilience.RetryConfig
	CacheTTL         time.Duration
	TeamCacheSize    int
	EventCacheSize   int
	RosterAttempts   int
	RosterRetryDelay time.Duration
}

func DefaultRemoteAccessConfig() RemoteAccessConfig {
	return RemoteAccessConfig{
		Retry:            resilience.DefaultRetryConfig(),
		CacheTTL:         time.Hour,
		TeamCacheSize:    2000,
		EventCacheSize:   1000,
		RosterAttempts:   3,
		RosterRetryDelay: 5 * time.Second,
	}
}

// RemoteAccess is the only path to the statistics provider. Every read is
// throttled, retried and memoized; once retries run out the read degrades
// to an empty value instead of failing the caller.
type RemoteAccess struct {
	events  event.Reader
	teams   team.Reader
	retrier *resilience.Retrier
	roster  *resilience.Retrier
	logger  *logging.Logger
	metrics *metrics.Recorder

	teamCache       *cache.Store[team.Team]
	teamEventsCache *cache.Store[[]event.Event]
	pointsCache     *cache.Store[map[string]event.DistrictPoints]
	matchesCache    *cache.Store[[]event.Match]
	awardsCache     *cache.Store[[]event.Award]
	alliancesCache  *cache.Store[[]event.Alliance]
}

func NewRemoteAccess(
	events event.Reader,
	teams team.Reader,
	cfg RemoteAccessConfig,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *RemoteAccess {
	defaults := DefaultRemoteAccessConfig()
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaults.CacheTTL
	}
	if cfg.TeamCacheSize <= 0 {
		cfg.TeamCacheSize = defaults.TeamCacheSize
	}
	if cfg.EventCacheSize <= 0 {
		cfg.EventCacheSize = defaults.EventCacheSize
	}
	if cfg.RosterAttempts <= 0 {
		cfg.RosterAttempts = defaults.RosterAttempts
	}
	if cfg.RosterRetryDelay < 0 {
		cfg.RosterRetryDelay = defaults.RosterRetryDelay
	}
	if logger == nil {
		logger = logging.Default()
	}

	retry := resilience.NormalizeRetryConfig(cfg.Retry)
	return &RemoteAccess{
		events:  events,
		teams:   teams,
		retrier: resilience.NewRetrier(retry),
		roster: resilience.NewRetrier(resilience.RetryConfig{
			Attempts: cfg.RosterAttempts,
			Step:     cfg.RosterRetryDelay,
			Throttle: retry.Throttle,
			Constant: true,
		}),
		logger:  logger.Component("remote_access"),
		metrics: recorder,

		teamCache:       cache.NewStore[team.Team](operationTeam, cfg.TeamCacheSize, cfg.CacheTTL),
		teamEventsCache: cache.NewStore[[]event.Event](operationTeamEvents, cfg.TeamCacheSize, cfg.CacheTTL),
		pointsCache:     cache.NewStore[map[string]event.DistrictPoints](operationDistrictPoints, cfg.EventCacheSize, cfg.CacheTTL),
		matchesCache:    cache.NewStore[[]event.Match](operationMatches, cfg.EventCacheSize, cfg.CacheTTL),
		awardsCache:     cache.NewStore[[]event.Award](operationAwards, cfg.EventCacheSize, cfg.CacheTTL),
		alliancesCache:  cache.NewStore[[]event.Alliance](operationAlliances, cfg.EventCacheSize, cfg.CacheTTL),
	}
}

// Team resolves one team. The boolean is false when the team could not be
// read, which callers must treat as "skip this team".
func (r *RemoteAccess) Team(ctx context.Context, teamKey string) (team.Team, bool) {
	item, err := load(ctx, r, r.teamCache, operationTeam, teamKey, func(ctx context.Context) (team.Team, error) {
		return r.teams.Team(ctx, teamKey)
	})
	if err != nil {
		return team.Team{}, false
	}
	return item, true
}

func (r *RemoteAccess) TeamEvents(ctx context.Context, teamKey string, year int) []event.Event {
	key := teamKey + ":" + strconv.Itoa(year)
	items, _ := load(ctx, r, r.teamEventsCache, operationTeamEvents, key, func(ctx context.Context) ([]event.Event, error) {
		return r.events.TeamEvents(ctx, teamKey, year)
	})
	return items
}

// EventDistrictPoints never returns nil so callers can index it directly.
func (r *RemoteAccess) EventDistrictPoints(ctx context.Context, eventKey string) map[string]event.DistrictPoints {
	items, _ := load(ctx, r, r.pointsCache, operationDistrictPoints, eventKey, func(ctx context.Context) (map[string]event.DistrictPoints, error) {
		return r.events.EventDistrictPoints(ctx, eventKey)
	})
	if items == nil {
		return map[string]event.DistrictPoints{}
	}
	return items
}

func (r *RemoteAccess) EventMatches(ctx context.Context, eventKey string) []event.Match {
	items, _ := load(ctx, r, r.matchesCache, operationMatches, eventKey, func(ctx context.Context) ([]event.Match, error) {
		return r.events.EventMatches(ctx, eventKey)
	})
	return items
}

func (r *RemoteAccess) EventAwards(ctx context.Context, eventKey string) []event.Award {
	items, _ := load(ctx, r, r.awardsCache, operationAwards, eventKey, func(ctx context.Context) ([]event.Award, error) {
		return r.events.EventAwards(ctx, eventKey)
	})
	return items
}

func (r *RemoteAccess) EventAlliances(ctx context.Context, eventKey string) []event.Alliance {
	items, _ := load(ctx, r, r.alliancesCache, operationAlliances, eventKey, func(ctx context.Context) ([]event.Alliance, error) {
		return r.events.EventAlliances(ctx, eventKey)
	})
	return items
}

// ActiveTeamKeys fetches the roster with its own fixed-delay retry policy.
// Unlike every other read it does not degrade: an empty or unreadable
// roster is returned as ErrRosterUnavailable.
func (r *RemoteAccess) ActiveTeamKeys(ctx context.Context, year int) ([]string, error) {
	var keys []string
	err := r.roster.Do(ctx, func(ctx context.Context) error {
		got, err := r.teams.ActiveTeamKeys(ctx, year)
		if err != nil {
			return err
		}
		if len(got) == 0 {
			return errEmptyRoster
		}
		keys = got
		return nil
	}, func(attempt int, err error, wait time.Duration) {
		r.logger.WarnContext(ctx, "roster fetch failed, retrying",
			"year", year,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	})
	if err != nil {
		r.metrics.ProviderCall(operationRoster, outcomeFallback)
		return nil, fmt.Errorf("%w: year=%d: %v", ErrRosterUnavailable, year, err)
	}
	r.metrics.ProviderCall(operationRoster, outcomeOK)

	sample := append([]string(nil), keys...)
	sort.Strings(sample)
	if len(sample) > rosterSampleSize {
		sample = sample[:rosterSampleSize]
	}
	r.logger.InfoContext(ctx, "roster fetched", "year", year, "teams", len(keys), "sample", sample)

	unprefixed := 0
	for _, key := range keys {
		if !strings.HasPrefix(key, team.KeyPrefix) {
			unprefixed++
		}
	}
	if unprefixed > 0 {
		r.logger.WarnContext(ctx, "roster contains keys without team prefix",
			"prefix", team.KeyPrefix,
			"count", unprefixed,
		)
	}
	return keys, nil
}

type cacheStats interface {
	Name() string
	Stats() (hits, misses int64)
}

// ReportCacheStats publishes per-family cache hit and miss counts.
func (r *RemoteAccess) ReportCacheStats() {
	stores := []cacheStats{
		r.teamCache,
		r.teamEventsCache,
		r.pointsCache,
		r.matchesCache,
		r.awardsCache,
		r.alliancesCache,
	}
	for _, store := range stores {
		hits, misses := store.Stats()
		r.metrics.CacheLookups(store.Name(), hits, misses)
		r.logger.Debug("cache stats", "family", store.Name(), "hits", hits, "misses", misses)
	}
}

// load reads key through store, calling the provider under the retry
// policy on a miss. A not-found answer is final on the first attempt.
// Exhausted retries are logged and yield the zero value with the error.
func load[V any](
	ctx context.Context,
	r *RemoteAccess,
	store *cache.Store[V],
	operation string,
	key string,
	call func(ctx context.Context) (V, error),
) (V, error) {
	value, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (V, error) {
		var out V
		err := r.retrier.Do(ctx, func(ctx context.Context) error {
			got, err := call(ctx)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return resilience.Permanent(err)
				}
				return err
			}
			out = got
			return nil
		}, func(attempt int, err error, wait time.Duration) {
			r.logger.DebugContext(ctx, "provider call failed, retrying",
				"operation", operation,
				"key", key,
				"attempt", attempt,
				"wait", wait,
				"error", err,
			)
		})
		return out, err
	})
	if err != nil {
		r.metrics.ProviderCall(operation, outcomeFallback)
		r.logger.WarnContext(ctx, "provider call exhausted, using empty value",
			"operation", operation,
			"key", key,
			"error", err,
		)
		var zero V
		return zero, err
	}
	r.metrics.ProviderCall(operation, outcomeOK)
	return value, nil
}
