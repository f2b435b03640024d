package event

import "context"

// Reader exposes the per-team and per-event reads from the statistics provider.
type Reader interface {
	TeamEvents(ctx context.Context, teamKey string, year int) ([]Event, error)
	EventDistrictPoints(ctx context.Context, eventKey string) (map[string]DistrictPoints, error)
	EventMatches(ctx context.Context, eventKey string) ([]Match, error)
	EventAwards(ctx context.Context, eventKey string) ([]Award, error)
	EventAlliances(ctx context.Context, eventKey string) ([]Alliance, error)
}
