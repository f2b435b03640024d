package usecase

import (
	"context"
	"fmt"

	"github.com/BrennanB/TBAscripts/internal/domain/event"
	"github.com/BrennanB/TBAscripts/internal/domain/scoring"
	"github.com/BrennanB/TBAscripts/internal/domain/team"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const firstTwoEvents = 2

// TeamAccess is the degrading per-team read surface the aggregator needs.
type TeamAccess interface {
	Team(ctx context.Context, teamKey string) (team.Team, bool)
	TeamEvents(ctx context.Context, teamKey string, year int) []event.Event
}

type TeamAggregator struct {
	access TeamAccess
	years  []int
	logger *logging.Logger
}

// NewTeamAggregator scores teams over years, in the given order.
func NewTeamAggregator(access TeamAccess, years []int, logger *logging.Logger) *TeamAggregator {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamAggregator{
		access: access,
		years:  append([]int(nil), years...),
		logger: logger.Component("team_aggregator"),
	}
}

func (a *TeamAggregator) Years() []int {
	return append([]int(nil), a.years...)
}

// CollectEvents lists a team's qualifying events across every configured year.
func (a *TeamAggregator) CollectEvents(ctx context.Context, teamKey string) []event.Event {
	var out []event.Event
	for _, year := range a.years {
		for _, ev := range a.access.TeamEvents(ctx, teamKey, year) {
			if !ev.Type.Qualifying() {
				continue
			}
			if ev.Year == 0 {
				ev.Year = year
			}
			out = append(out, ev)
		}
	}
	return out
}

// Aggregate folds one team's events into its result row. Events without a
// bundle are skipped. Panics are returned as ErrTeamUnavailable so one bad
// team never takes down its chunk.
func (a *TeamAggregator) Aggregate(
	ctx context.Context,
	teamKey string,
	events []event.Event,
	bundles map[string]event.Bundle,
) (row team.ResultRow, err error) {
	ctx, span := childSpan(ctx, "usecase.TeamAggregator.Aggregate", attribute.String("team", teamKey))
	defer span.End()

	defer func() {
		if recovered := recover(); recovered != nil {
			row = team.ResultRow{}
			err = fmt.Errorf("%w: team=%s: panic: %v", ErrTeamUnavailable, teamKey, recovered)
		}
	}()

	item, ok := a.access.Team(ctx, teamKey)
	if !ok {
		return team.ResultRow{}, fmt.Errorf("%w: team=%s: team info not available", ErrTeamUnavailable, teamKey)
	}
	if item.Key == "" {
		item.Key = teamKey
	}
	if err := item.Validate(); err != nil {
		return team.ResultRow{}, fmt.Errorf("%w: %v", ErrTeamUnavailable, err)
	}

	byYear := make(map[int][]event.Event, len(a.years))
	for _, ev := range events {
		byYear[ev.Year] = append(byYear[ev.Year], ev)
	}

	accumulators := make([]team.YearAccumulator, 0, len(a.years))
	for _, year := range a.years {
		yearEvents := byYear[year]
		event.SortByEndDate(yearEvents)

		acc := team.YearAccumulator{Year: year}
		for _, ev := range yearEvents[:min(firstTwoEvents, len(yearEvents))] {
			bundle, ok := bundles[ev.Key]
			if !ok {
				continue
			}
			acc.AddFirstTwo(scoring.ScoreEvent(teamKey, ev, bundle))
		}
		for _, ev := range yearEvents {
			bundle, ok := bundles[ev.Key]
			if !ok {
				continue
			}
			acc.AddFullSeason(scoring.ScoreEvent(teamKey, ev, bundle))
		}
		accumulators = append(accumulators, acc)
	}

	row = team.BuildResult(item, accumulators)
	a.logger.DebugContext(ctx, "team aggregated",
		"team", teamKey,
		"events", len(events),
		"overall_first_two", row.OverallFirstTwo,
		"overall_full_season", row.OverallFullSeason,
	)
	return row, nil
}
