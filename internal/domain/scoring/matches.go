package scoring

import (
	"slices"

	"github.com/BrennanB/TBAscripts/internal/domain/event"
)

const PointsPerWin = 5

// UpperFinalSet is the double-elimination semifinal set whose two
// captains advance to the upper-bracket final.
const UpperFinalSet = 11

var scoredLevels = map[event.Format][]event.CompLevel{
	event.FormatSingleElimination: {event.CompLevelFinal, event.CompLevelSemiFinal, event.CompLevelQuarterFinal},
	event.FormatDoubleElimination: {event.CompLevelFinal, event.CompLevelSemiFinal},
}

// MatchPoints scores teamKey's playoff wins under format. Alliances are
// only read for the double-elimination upper-final bonus.
func MatchPoints(teamKey string, format event.Format, matches []event.Match, alliances []event.Alliance) int {
	levels := scoredLevels[format]

	points := 0
	for _, m := range matches {
		if !slices.Contains(levels, m.CompLevel) {
			continue
		}
		if slices.Contains(m.Winners(), teamKey) {
			points += PointsPerWin
		}
	}

	if format == event.FormatDoubleElimination && upperFinalBonus(teamKey, matches, alliances) {
		points += PointsPerWin
	}
	return points
}

// upperFinalBonus reports whether teamKey shares an alliance with one of
// the upper-final captains. The bonus is granted at most once per event.
func upperFinalBonus(teamKey string, matches []event.Match, alliances []event.Alliance) bool {
	captains := upperFinalCaptains(matches)
	if len(captains) == 0 || len(alliances) == 0 {
		return false
	}

	for _, alliance := range alliances {
		if !slices.Contains(alliance.Picks, teamKey) {
			continue
		}
		for _, captain := range captains {
			if slices.Contains(alliance.Picks, captain) {
				return true
			}
		}
	}
	return false
}

// upperFinalCaptains returns the first team of each side of the first
// semifinal in UpperFinalSet. Sides without teams are skipped.
func upperFinalCaptains(matches []event.Match) []string {
	for _, m := range matches {
		if m.CompLevel != event.CompLevelSemiFinal || m.SetNumber != UpperFinalSet {
			continue
		}
		captains := make([]string, 0, 2)
		if len(m.Red) > 0 && m.Red[0] != "" {
			captains = append(captains, m.Red[0])
		}
		if len(m.Blue) > 0 && m.Blue[0] != "" {
			captains = append(captains, m.Blue[0])
		}
		return captains
	}
	return nil
}
