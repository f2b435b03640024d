package scoring

import "github.com/BrennanB/TBAscripts/internal/domain/event"

// EventScore is one team's score breakdown for one event.
type EventScore struct {
	District int
	Matches  int
	Awards   int
	Tally    Tally
}

func (s EventScore) Total() int {
	return s.District + s.Matches + s.Awards
}

// ScoreEvent combines district points, playoff wins and awards for teamKey.
// Each part is zero when its resource is missing from the bundle.
func ScoreEvent(teamKey string, ev event.Event, bundle event.Bundle) EventScore {
	var score EventScore

	if points, ok := bundle.DistrictPoints[teamKey]; ok {
		score.District = points.Total()
	}
	if len(bundle.Matches) > 0 {
		score.Matches = MatchPoints(teamKey, ev.Format(), bundle.Matches, bundle.Alliances)
	}
	if len(bundle.Awards) > 0 {
		score.Awards, score.Tally = AwardPoints(teamKey, ev.Type, bundle.Awards)
	}
	return score
}
