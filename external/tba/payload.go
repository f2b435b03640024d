package tba

import (
	"strings"
	"time"

	"github.com/BrennanB/TBAscripts/internal/domain/event"
	"github.com/BrennanB/TBAscripts/internal/domain/team"
)

const endDateLayout = "2006-01-02"

type teamPayload struct {
	Key        string `json:"key"`
	TeamNumber int    `json:"team_number"`
	Nickname   string `json:"nickname"`
	Name       string `json:"name"`
}

func (p teamPayload) toDomain() team.Team {
	return team.Team{
		Key:      p.Key,
		Nickname: strings.TrimSpace(p.Nickname),
	}
}

type eventPayload struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	EventType int    `json:"event_type"`
	Year      int    `json:"year"`
	EndDate   string `json:"end_date"`
}

// toDomain leaves EndDate zero when the provider omits or garbles it, which
// sorts the event first.
func (p eventPayload) toDomain() event.Event {
	out := event.Event{
		Key:  p.Key,
		Name: p.Name,
		Year: p.Year,
		Type: event.Type(p.EventType),
	}
	if parsed, err := time.Parse(endDateLayout, strings.TrimSpace(p.EndDate)); err == nil {
		out.EndDate = parsed
	}
	return out
}

type districtPointsEnvelope struct {
	Points map[string]districtPointsPayload `json:"points"`
}

type districtPointsPayload struct {
	AlliancePoints int `json:"alliance_points"`
	AwardPoints    int `json:"award_points"`
	ElimPoints     int `json:"elim_points"`
	QualPoints     int `json:"qual_points"`
	Total          int `json:"total"`
}

type matchAlliancePayload struct {
	Score    int      `json:"score"`
	TeamKeys []string `json:"team_keys"`
}

type matchPayload struct {
	Key             string `json:"key"`
	CompLevel       string `json:"comp_level"`
	SetNumber       int    `json:"set_number"`
	MatchNumber     int    `json:"match_number"`
	WinningAlliance string `json:"winning_alliance"`
	Alliances       struct {
		Red  matchAlliancePayload `json:"red"`
		Blue matchAlliancePayload `json:"blue"`
	} `json:"alliances"`
}

func (p matchPayload) toDomain() event.Match {
	return event.Match{
		Key:             p.Key,
		CompLevel:       event.CompLevel(p.CompLevel),
		SetNumber:       p.SetNumber,
		MatchNumber:     p.MatchNumber,
		WinningAlliance: event.Color(p.WinningAlliance),
		Red:             p.Alliances.Red.TeamKeys,
		Blue:            p.Alliances.Blue.TeamKeys,
	}
}

type awardRecipientPayload struct {
	TeamKey *string `json:"team_key"`
	Awardee *string `json:"awardee"`
}

type awardPayload struct {
	Name          string                  `json:"name"`
	AwardType     int                     `json:"award_type"`
	EventKey      string                  `json:"event_key"`
	Year          int                     `json:"year"`
	RecipientList []awardRecipientPayload `json:"recipient_list"`
}

// toDomain keeps one recipient entry per team occurrence. Individual
// awards without a team are dropped.
func (p awardPayload) toDomain() event.Award {
	recipients := make([]string, 0, len(p.RecipientList))
	for _, r := range p.RecipientList {
		if r.TeamKey == nil || *r.TeamKey == "" {
			continue
		}
		recipients = append(recipients, *r.TeamKey)
	}
	return event.Award{
		Type:       event.AwardType(p.AwardType),
		Name:       p.Name,
		Recipients: recipients,
	}
}

type alliancePayload struct {
	Name     string   `json:"name"`
	Picks    []string `json:"picks"`
	Declines []string `json:"declines"`
}

func (p alliancePayload) toDomain() event.Alliance {
	return event.Alliance{Name: p.Name, Picks: p.Picks}
}
