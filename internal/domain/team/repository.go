package team

import "context"

// Reader resolves teams from the statistics provider.
type Reader interface {
	Team(ctx context.Context, teamKey string) (Team, error)
	// ActiveTeamKeys lists every team registered for year.
	ActiveTeamKeys(ctx context.Context, year int) ([]string, error)
}

// ResultSink receives finished rows. Write is only ever called from one
// goroutine; Close flushes and releases the sink.
type ResultSink interface {
	Write(ctx context.Context, row ResultRow) error
	Close() error
}
