package event

import (
	"sort"
	"time"
)

// Type is the provider's event-type code.
type Type int

const (
	TypeRegional                     Type = 0
	TypeDistrict                     Type = 1
	TypeDistrictChampionship         Type = 2
	TypeChampionshipDivision         Type = 3
	TypeChampionshipFinals           Type = 4
	TypeDistrictChampionshipDivision Type = 5
	TypeFestivalOfChampions          Type = 6
	TypeRemote                       Type = 7
	TypeOffseason                    Type = 99
	TypePreseason                    Type = 100
)

// Tier selects the award value table for an event.
type Tier int

const (
	TierNone Tier = iota
	TierRegular
	TierChampionship
)

// Qualifying reports whether events of this type count toward a team's season.
func (t Type) Qualifying() bool {
	return t == TypeRegional || t == TypeDistrict
}

func (t Type) Tier() Tier {
	switch t {
	case TypeChampionshipDivision, TypeChampionshipFinals:
		return TierChampionship
	case TypeRegional, TypeDistrict, TypeDistrictChampionship, TypeDistrictChampionshipDivision:
		return TierRegular
	default:
		return TierNone
	}
}

// Format is the playoff bracket style.
type Format int

const (
	FormatSingleElimination Format = iota
	FormatDoubleElimination
)

// LastSingleEliminationYear is the final season played with best-of-three brackets.
const LastSingleEliminationYear = 2022

func FormatForYear(year int) Format {
	if year <= LastSingleEliminationYear {
		return FormatSingleElimination
	}
	return FormatDoubleElimination
}

type Event struct {
	Key     string
	Name    string
	Year    int
	Type    Type
	EndDate time.Time
}

func (e Event) Format() Format {
	return FormatForYear(e.Year)
}

// SortByEndDate orders events oldest first. Ties keep their input order.
func SortByEndDate(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EndDate.Before(events[j].EndDate)
	})
}

type CompLevel string

const (
	CompLevelQualification CompLevel = "qm"
	CompLevelEighthFinal   CompLevel = "ef"
	CompLevelQuarterFinal  CompLevel = "qf"
	CompLevelSemiFinal     CompLevel = "sf"
	CompLevelFinal         CompLevel = "f"
)

type Color string

const (
	ColorNone Color = ""
	ColorRed  Color = "red"
	ColorBlue Color = "blue"
)

type Match struct {
	Key             string
	CompLevel       CompLevel
	SetNumber       int
	MatchNumber     int
	WinningAlliance Color
	Red             []string
	Blue            []string
}

// Winners returns the winning alliance's team keys, or nil for an unplayed or tied match.
func (m Match) Winners() []string {
	switch m.WinningAlliance {
	case ColorRed:
		return m.Red
	case ColorBlue:
		return m.Blue
	default:
		return nil
	}
}

// AwardType is the provider's award-type code.
type AwardType int

const (
	AwardImpact                 AwardType = 0
	AwardWinner                 AwardType = 1
	AwardFinalist               AwardType = 2
	AwardWoodieFlowers          AwardType = 3
	AwardDeansList              AwardType = 4
	AwardVolunteer              AwardType = 5
	AwardEngineeringInspiration AwardType = 9
	AwardRookieAllStar          AwardType = 10
	AwardHighestRookieSeed      AwardType = 14
	AwardRookieInspiration      AwardType = 15
	AwardIndustrialDesign       AwardType = 16
	AwardQuality                AwardType = 17
	AwardCreativity             AwardType = 20
	AwardExcellenceInEngr       AwardType = 21
	AwardInnovationInControl    AwardType = 29
	AwardWildcard               AwardType = 68
	AwardImpactFinalist         AwardType = 69
	AwardAutonomous             AwardType = 71
	AwardSustainability         AwardType = 82
)

type Award struct {
	Type       AwardType
	Name       string
	Recipients []string
}

type Alliance struct {
	Name  string
	Picks []string
}

// Captain is the first pick of the alliance, or "" when it has none.
func (a Alliance) Captain() string {
	if len(a.Picks) == 0 {
		return ""
	}
	return a.Picks[0]
}

// DistrictPoints are a team's district-ranking points earned at one event.
type DistrictPoints struct {
	AlliancePoints int
	QualPoints     int
}

func (p DistrictPoints) Total() int {
	return p.AlliancePoints + p.QualPoints
}

// Bundle holds the four resource classes fetched for one event. Any of
// them may be empty when the provider had no data or the fetch failed.
type Bundle struct {
	DistrictPoints map[string]DistrictPoints
	Matches        []Match
	Awards         []Award
	Alliances      []Alliance
}
