package tba

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BrennanB/TBAscripts/internal/domain/event"
	"github.com/BrennanB/TBAscripts/internal/platform/resilience"
	"github.com/BrennanB/TBAscripts/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		AuthKey:    "secret-key",
		MaxRetries: 2,
		RetryBase:  time.Millisecond,
	})
}

func TestClient_SendsAuthHeaderAndDecodesTeam(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(authHeader); got != "secret-key" {
			t.Errorf("auth header got=%q want=secret-key", got)
		}
		if r.URL.Path != "/team/frc254" {
			t.Errorf("path got=%s want=/team/frc254", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"key":"frc254","team_number":254,"nickname":"The Cheesy Poofs","name":"NASA Ames"}`))
	})

	got, err := client.Team(context.Background(), "frc254")
	if err != nil {
		t.Fatalf("Team error: %v", err)
	}
	if got.Key != "frc254" || got.Nickname != "The Cheesy Poofs" {
		t.Fatalf("unexpected team: %+v", got)
	}
}

func TestClient_TeamEventsParsesEndDate(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"key":"2024casj","name":"Silicon Valley Regional","event_type":0,"year":2024,"end_date":"2024-03-30"},
			{"key":"2024cmptx","name":"Championship","event_type":4,"year":2024,"end_date":null}
		]`))
	})

	events, err := client.TeamEvents(context.Background(), "frc254", 2024)
	if err != nil {
		t.Fatalf("TeamEvents error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events got=%d want=2", len(events))
	}
	if events[0].Type != event.TypeRegional || events[0].EndDate != time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if !events[1].EndDate.IsZero() {
		t.Fatalf("expected zero end date for missing value, got=%v", events[1].EndDate)
	}
}

func TestClient_EventResources(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/district_points"):
			_, _ = w.Write([]byte(`{"points":{"frc1234":{"alliance_points":10,"qual_points":12,"elim_points":5,"award_points":0,"total":27}}}`))
		case strings.HasSuffix(r.URL.Path, "/matches"):
			_, _ = w.Write([]byte(`[{"key":"2024abc_sf11m1","comp_level":"sf","set_number":11,"match_number":1,"winning_alliance":"blue",
				"alliances":{"red":{"score":90,"team_keys":["frc1","frc2","frc3"]},"blue":{"score":120,"team_keys":["frc4","frc5","frc6"]}}}]`))
		case strings.HasSuffix(r.URL.Path, "/awards"):
			_, _ = w.Write([]byte(`[{"name":"Dean's List Finalist","award_type":4,"event_key":"2024abc","year":2024,
				"recipient_list":[{"team_key":"frc1","awardee":"Jane"},{"team_key":null,"awardee":"Volunteer"}]}]`))
		case strings.HasSuffix(r.URL.Path, "/alliances"):
			_, _ = w.Write([]byte(`null`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	points, err := client.EventDistrictPoints(ctx, "2024abc")
	if err != nil {
		t.Fatalf("EventDistrictPoints error: %v", err)
	}
	if points["frc1234"].Total() != 22 {
		t.Fatalf("district total got=%d want=22", points["frc1234"].Total())
	}

	matches, err := client.EventMatches(ctx, "2024abc")
	if err != nil {
		t.Fatalf("EventMatches error: %v", err)
	}
	if len(matches) != 1 || matches[0].SetNumber != 11 || matches[0].Winners()[0] != "frc4" {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	awards, err := client.EventAwards(ctx, "2024abc")
	if err != nil {
		t.Fatalf("EventAwards error: %v", err)
	}
	if len(awards) != 1 || len(awards[0].Recipients) != 1 || awards[0].Recipients[0] != "frc1" {
		t.Fatalf("unexpected awards: %+v", awards)
	}

	alliances, err := client.EventAlliances(ctx, "2024abc")
	if err != nil {
		t.Fatalf("EventAlliances error: %v", err)
	}
	if len(alliances) != 0 {
		t.Fatalf("expected no alliances for null payload, got=%+v", alliances)
	}
}

func TestClient_NullDistrictPoints(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	points, err := client.EventDistrictPoints(context.Background(), "2024casj")
	if err != nil {
		t.Fatalf("EventDistrictPoints error: %v", err)
	}
	if points == nil || len(points) != 0 {
		t.Fatalf("expected empty non-nil map, got=%v", points)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	if _, err := client.EventMatches(context.Background(), "2024casj"); err != nil {
		t.Fatalf("expected success after retries, got=%v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("calls got=%d want=3", got)
	}
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.EventAwards(context.Background(), "2024casj")
	if !IsTransient(err) {
		t.Fatalf("expected transient error, got=%v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("calls got=%d want=3", got)
	}
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	})

	_, err := client.Team(context.Background(), "frc99999")
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls got=%d want=1", got)
	}
}

func TestClient_ActiveTeamKeysPagesUntilEmpty(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams/2025/0/keys":
			_, _ = w.Write([]byte(`["frc254","frc1"]`))
		case "/teams/2025/1/keys":
			_, _ = w.Write([]byte(`["frc9999"]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	})

	keys, err := client.ActiveTeamKeys(context.Background(), 2025)
	if err != nil {
		t.Fatalf("ActiveTeamKeys error: %v", err)
	}
	if strings.Join(keys, ",") != "frc1,frc254,frc9999" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestClient_CircuitBreakerRejects(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		RetryBase:  time.Millisecond,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.EventMatches(context.Background(), "2024casj"); !IsTransient(err) {
		t.Fatalf("expected transient error, got=%v", err)
	}
	_, err := client.EventMatches(context.Background(), "2024casj")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got=%v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls got=%d want=1", got)
	}
}
