package event

import (
	"testing"
	"time"
)

func TestType_QualifyingAndTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ        Type
		qualifying bool
		tier       Tier
	}{
		{TypeRegional, true, TierRegular},
		{TypeDistrict, true, TierRegular},
		{TypeDistrictChampionship, false, TierRegular},
		{TypeChampionshipDivision, false, TierChampionship},
		{TypeChampionshipFinals, false, TierChampionship},
		{TypeDistrictChampionshipDivision, false, TierRegular},
		{TypeFestivalOfChampions, false, TierNone},
		{TypeOffseason, false, TierNone},
		{TypePreseason, false, TierNone},
	}
	for _, tc := range tests {
		if got := tc.typ.Qualifying(); got != tc.qualifying {
			t.Fatalf("type %d qualifying=%v want=%v", tc.typ, got, tc.qualifying)
		}
		if got := tc.typ.Tier(); got != tc.tier {
			t.Fatalf("type %d tier=%d want=%d", tc.typ, got, tc.tier)
		}
	}
}

func TestFormatForYear(t *testing.T) {
	t.Parallel()

	if FormatForYear(2019) != FormatSingleElimination || FormatForYear(2022) != FormatSingleElimination {
		t.Fatalf("expected single elimination through 2022")
	}
	if FormatForYear(2023) != FormatDoubleElimination || FormatForYear(2024) != FormatDoubleElimination {
		t.Fatalf("expected double elimination from 2023")
	}
}

func TestSortByEndDate(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	events := []Event{
		{Key: "2024c", EndDate: day(30)},
		{Key: "2024a", EndDate: day(2)},
		{Key: "2024b", EndDate: day(16)},
		{Key: "2024a2", EndDate: day(2)},
	}
	SortByEndDate(events)

	want := []string{"2024a", "2024a2", "2024b", "2024c"}
	for i, key := range want {
		if events[i].Key != key {
			t.Fatalf("events[%d]=%s want=%s", i, events[i].Key, key)
		}
	}
}

func TestMatch_Winners(t *testing.T) {
	t.Parallel()

	m := Match{Red: []string{"frc1"}, Blue: []string{"frc2"}}
	if m.Winners() != nil {
		t.Fatalf("expected no winners for an unplayed match")
	}
	m.WinningAlliance = ColorBlue
	if got := m.Winners(); len(got) != 1 || got[0] != "frc2" {
		t.Fatalf("winners=%v want=[frc2]", got)
	}
}
