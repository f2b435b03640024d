package team

import (
	"fmt"
	"strconv"

	"github.com/BrennanB/TBAscripts/internal/domain/scoring"
	"github.com/shopspring/decimal"
)

// YearResult is one season of a ResultRow. Averages are 0 for seasons
// without qualifying events.
type YearResult struct {
	Year              int
	FirstTwoAverage   float64
	FullSeasonAverage float64
	Awards            scoring.Tally
}

// ResultRow is the final output for one team.
type ResultRow struct {
	// RunID tags the run that produced the row; it is not part of Record.
	RunID             string
	TeamKey           string
	Name              string
	OverallFirstTwo   float64
	OverallFullSeason float64
	Years             []YearResult
}

// BuildResult folds per-year accumulators into a row. Overall averages
// are means over the seasons that had events.
func BuildResult(t Team, years []YearAccumulator) ResultRow {
	row := ResultRow{
		TeamKey: t.Key,
		Name:    t.Nickname,
		Years:   make([]YearResult, 0, len(years)),
	}

	var (
		firstTwoSum, fullSum     float64
		firstTwoYears, fullYears int
	)
	for _, acc := range years {
		yr := YearResult{Year: acc.Year, Awards: acc.Awards}
		if avg, ok := acc.FirstTwoAverage(); ok {
			yr.FirstTwoAverage = avg
			firstTwoSum += avg
			firstTwoYears++
		}
		if avg, ok := acc.FullSeasonAverage(); ok {
			yr.FullSeasonAverage = avg
			fullSum += avg
			fullYears++
		}
		row.Years = append(row.Years, yr)
	}

	if firstTwoYears > 0 {
		row.OverallFirstTwo = firstTwoSum / float64(firstTwoYears)
	}
	if fullYears > 0 {
		row.OverallFullSeason = fullSum / float64(fullYears)
	}
	return row
}

// Header names the Record columns for the given seasons, in order.
func Header(years []int) []string {
	out := make([]string, 0, 4+len(years)*6)
	out = append(out, "Team Number", "Team Name", "Avg SLFF Points")
	out = appendPerYear(out, years, "Avg SLFF")
	out = appendPerYear(out, years, "Impact")
	out = appendPerYear(out, years, "EI")
	out = appendPerYear(out, years, "Robot")
	out = appendPerYear(out, years, "Sustainability")
	out = append(out, "Full Year Avg SLFF")
	out = appendPerYear(out, years, "Full Year Avg")
	return out
}

func appendPerYear(out []string, years []int, label string) []string {
	for _, y := range years {
		out = append(out, fmt.Sprintf("%d %s", y, label))
	}
	return out
}

// Record renders the row in Header order. Averages carry one decimal,
// award counts are integers.
func (r ResultRow) Record() []string {
	out := make([]string, 0, 4+len(r.Years)*6)
	out = append(out, Number(r.TeamKey), r.Name, FormatScore(r.OverallFirstTwo))
	for _, y := range r.Years {
		out = append(out, FormatScore(y.FirstTwoAverage))
	}
	for _, y := range r.Years {
		out = append(out, strconv.Itoa(y.Awards.Impact))
	}
	for _, y := range r.Years {
		out = append(out, strconv.Itoa(y.Awards.EngineeringInspiration))
	}
	for _, y := range r.Years {
		out = append(out, strconv.Itoa(y.Awards.RobotDesign))
	}
	for _, y := range r.Years {
		out = append(out, strconv.Itoa(y.Awards.Sustainability))
	}
	out = append(out, FormatScore(r.OverallFullSeason))
	for _, y := range r.Years {
		out = append(out, FormatScore(y.FullSeasonAverage))
	}
	return out
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

func FormatScore(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}
