package postgres

import "time"

type teamResultTableModel struct {
	RunID             string    `db:"run_id"`
	TeamKey           string    `db:"team_key"`
	TeamNumber        string    `db:"team_number"`
	TeamName          string    `db:"team_name"`
	OverallFirstTwo   float64   `db:"overall_first_two"`
	OverallFullSeason float64   `db:"overall_full_season"`
	Seasons           string    `db:"seasons"`
	CreatedAt         time.Time `db:"created_at,readonly"`
}

// seasonJSONModel is one element of the seasons jsonb column.
type seasonJSONModel struct {
	Year                   int     `json:"year"`
	FirstTwoAverage        float64 `json:"first_two_avg"`
	FullSeasonAverage      float64 `json:"full_season_avg"`
	Impact                 int     `json:"impact"`
	EngineeringInspiration int     `json:"engineering_inspiration"`
	RobotDesign            int     `json:"robot_design"`
	Sustainability         int     `json:"sustainability"`
}
