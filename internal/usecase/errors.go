package usecase

import "errors"

// Provider failures are classified with these sentinels; callers match
// them with errors.Is after any amount of wrapping.
var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is permanent: the provider answered 404 and a retry
	// would get the same answer.
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Pipeline outcomes.
var (
	// ErrRosterUnavailable aborts a run: there is no output without a roster.
	ErrRosterUnavailable = errors.New("team roster unavailable")
	// ErrTeamUnavailable drops one team's row and nothing else.
	ErrTeamUnavailable = errors.New("team unavailable")
)
