package team

import (
	"fmt"
	"strings"

	"github.com/BrennanB/TBAscripts/internal/domain/scoring"
)

// KeyPrefix starts every team key, e.g. "frc254".
const KeyPrefix = "frc"

// Team is one roster entry with its display name.
type Team struct {
	Key      string
	Nickname string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Key) == "" {
		return fmt.Errorf("team key is required")
	}
	if !strings.HasPrefix(t.Key, KeyPrefix) {
		return fmt.Errorf("team key %q lacks the %q prefix", t.Key, KeyPrefix)
	}
	return nil
}

// Number strips the key prefix: "frc254" -> "254".
func Number(key string) string {
	return strings.TrimPrefix(key, KeyPrefix)
}

// YearAccumulator holds one team's running totals for one season.
type YearAccumulator struct {
	Year             int
	FirstTwoScore    int
	FirstTwoEvents   int
	FullSeasonScore  int
	FullSeasonEvents int
	Awards           scoring.Tally
}

func (a *YearAccumulator) AddFirstTwo(s scoring.EventScore) {
	a.FirstTwoScore += s.Total()
	a.FirstTwoEvents++
	a.Awards = a.Awards.Add(s.Tally)
}

func (a *YearAccumulator) AddFullSeason(s scoring.EventScore) {
	a.FullSeasonScore += s.Total()
	a.FullSeasonEvents++
	a.Awards = a.Awards.Add(s.Tally)
}

// FirstTwoAverage is undefined (ok=false) for a year without events.
func (a YearAccumulator) FirstTwoAverage() (float64, bool) {
	if a.FirstTwoEvents == 0 {
		return 0, false
	}
	return float64(a.FirstTwoScore) / float64(a.FirstTwoEvents), true
}

func (a YearAccumulator) FullSeasonAverage() (float64, bool) {
	if a.FullSeasonEvents == 0 {
		return 0, false
	}
	return float64(a.FullSeasonScore) / float64(a.FullSeasonEvents), true
}
