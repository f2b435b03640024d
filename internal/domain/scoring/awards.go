package scoring

import "github.com/BrennanB/TBAscripts/internal/domain/event"

// Category groups award types for reporting. It never affects points.
type Category int

const (
	CategoryNone Category = iota
	CategoryImpact
	CategoryEngineeringInspiration
	CategoryRobotDesign
	CategorySustainability
)

var awardCategories = map[event.AwardType]Category{
	event.AwardImpact:                 CategoryImpact,
	event.AwardEngineeringInspiration: CategoryEngineeringInspiration,
	event.AwardCreativity:             CategoryRobotDesign,
	event.AwardAutonomous:             CategoryRobotDesign,
	event.AwardQuality:                CategoryRobotDesign,
	event.AwardInnovationInControl:    CategoryRobotDesign,
	event.AwardIndustrialDesign:       CategoryRobotDesign,
	event.AwardExcellenceInEngr:       CategoryRobotDesign,
	event.AwardSustainability:         CategorySustainability,
}

func CategoryOf(t event.AwardType) Category {
	return awardCategories[t]
}

// Tally counts award wins per reporting category.
type Tally struct {
	Impact                 int
	EngineeringInspiration int
	RobotDesign            int
	Sustainability         int
}

func (t *Tally) Count(c Category) {
	switch c {
	case CategoryImpact:
		t.Impact++
	case CategoryEngineeringInspiration:
		t.EngineeringInspiration++
	case CategoryRobotDesign:
		t.RobotDesign++
	case CategorySustainability:
		t.Sustainability++
	}
}

func (t Tally) Add(o Tally) Tally {
	return Tally{
		Impact:                 t.Impact + o.Impact,
		EngineeringInspiration: t.EngineeringInspiration + o.EngineeringInspiration,
		RobotDesign:            t.RobotDesign + o.RobotDesign,
		Sustainability:         t.Sustainability + o.Sustainability,
	}
}

type valueTable struct {
	values map[event.AwardType]int
	// unlisted is scored for award types missing from values. Explicit
	// zero entries in values stay zero.
	unlisted int
}

var regularValues = valueTable{
	unlisted: 5,
	values: map[event.AwardType]int{
		event.AwardImpact:                 60,
		event.AwardEngineeringInspiration: 45,
		event.AwardRookieAllStar:          25,
		event.AwardCreativity:             20,
		event.AwardRookieInspiration:      15,
		event.AwardAutonomous:             20,
		event.AwardQuality:                20,
		event.AwardInnovationInControl:    20,
		event.AwardIndustrialDesign:       20,
		event.AwardExcellenceInEngr:       20,
		event.AwardSustainability:         25,
		event.AwardWoodieFlowers:          10,
		event.AwardWinner:                 0,
		event.AwardWildcard:               0,
		event.AwardFinalist:               0,
		event.AwardVolunteer:              0,
		event.AwardHighestRookieSeed:      0,
	},
}

var championshipValues = valueTable{
	unlisted: 10,
	values: map[event.AwardType]int{
		event.AwardImpact:                 20,
		event.AwardImpactFinalist:         90,
		event.AwardEngineeringInspiration: 60,
		event.AwardRookieAllStar:          35,
		event.AwardRookieInspiration:      20,
		event.AwardWoodieFlowers:          30,
		event.AwardAutonomous:             30,
		event.AwardQuality:                30,
		event.AwardInnovationInControl:    30,
		event.AwardIndustrialDesign:       30,
		event.AwardExcellenceInEngr:       30,
		event.AwardSustainability:         35,
		event.AwardCreativity:             30,
		event.AwardWinner:                 0,
		event.AwardWildcard:               0,
		event.AwardFinalist:               0,
		event.AwardVolunteer:              0,
		event.AwardHighestRookieSeed:      0,
	},
}

var tierTables = map[event.Tier]valueTable{
	event.TierRegular:      regularValues,
	event.TierChampionship: championshipValues,
}

// AwardValue is the points one recipient earns for an award of type t at an
// event of the given tier. Events outside both tiers score nothing.
func AwardValue(t event.AwardType, tier event.Tier) int {
	table, ok := tierTables[tier]
	if !ok {
		return 0
	}
	if v, ok := table.values[t]; ok {
		return v
	}
	return table.unlisted
}

// AwardPoints scores every occurrence of teamKey among the award recipients
// and tallies the matching reporting categories.
func AwardPoints(teamKey string, eventType event.Type, awards []event.Award) (int, Tally) {
	var (
		points int
		tally  Tally
	)
	tier := eventType.Tier()
	for _, award := range awards {
		for _, recipient := range award.Recipients {
			if recipient != teamKey {
				continue
			}
			tally.Count(CategoryOf(award.Type))
			points += AwardValue(award.Type, tier)
		}
	}
	return points, tally
}
