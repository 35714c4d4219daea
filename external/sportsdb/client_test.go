package sportsdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openfooty/league-browser/internal/domain/league"
	"github.com/openfooty/league-browser/internal/platform/logging"
	"github.com/openfooty/league-browser/internal/platform/resilience"
	"github.com/openfooty/league-browser/internal/usecase"
)

func newTestClient(serverURL string, maxRetries int) *Client {
	return NewClient(ClientConfig{
		BaseURL:        serverURL,
		APIKey:         "2",
		Timeout:        5 * time.Second,
		MaxRetries:     maxRetries,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
}

func TestClient_FetchLeagues(t *testing.T) {
	var gotPath atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		_, _ = w.Write([]byte(`{"leagues":[
			{"idLeague":"4328","strLeague":"English Premier League","strSport":"Soccer","strLeagueAlternate":"Premier League"},
			{"idLeague":"","strLeague":"Ghost League","strSport":"Soccer"},
			{"idLeague":"4335","strLeague":"Spanish La Liga","strSport":"Soccer","strLeagueAlternate":null}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	got, err := client.FetchLeagues(context.Background())
	if err != nil {
		t.Fatalf("fetch leagues: %v", err)
	}

	if path := gotPath.Load(); path != "/2/all_leagues.php" {
		t.Fatalf("unexpected request path: %v", path)
	}
	if len(got) != 2 {
		t.Fatalf("expected id-less entry dropped, got=%d", len(got))
	}
	if got[0].ID != "4328" || got[0].AltName != "Premier League" {
		t.Fatalf("unexpected first league: %+v", got[0])
	}
}

func TestClient_FetchRosterBuildsQuery(t *testing.T) {
	var gotQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query().Get("l"))
		_, _ = w.Write([]byte(`{"teams":[
			{"idTeam":"t1","strTeam":"Arsenal","strLeague":"English Premier League","strTeamLogo":"http://img/a.png"},
			{"idTeam":"t2","idLeague":"4328","strTeam":"Chelsea"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	got, err := client.FetchRoster(context.Background(), league.League{ID: "4328", Name: "English Premier League"})
	if err != nil {
		t.Fatalf("fetch roster: %v", err)
	}

	if q := gotQuery.Load(); q != "English Premier League" {
		t.Fatalf("unexpected league query: %v", q)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected team count: %d", len(got))
	}
	if got[0].LeagueID != "4328" {
		t.Fatalf("league id default not applied: %+v", got[0])
	}
	if got[0].BadgeURL != "http://img/a.png" {
		t.Fatalf("badge url not mapped: %+v", got[0])
	}
}

func TestClient_FetchRosterRejectsNamelessLeague(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	_, err := client.FetchRoster(context.Background(), league.League{ID: "4328"})
	if !errors.Is(err, usecase.ErrInvalidRosterQuery) {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("request issued for nameless league")
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"leagues":[{"idLeague":"4328","strLeague":"English Premier League","strSport":"Soccer"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	got, err := client.FetchLeagues(context.Background())
	if err != nil {
		t.Fatalf("fetch leagues after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("unexpected attempt count: %d", calls.Load())
	}
	if len(got) != 1 {
		t.Fatalf("unexpected league count: %d", len(got))
	}
}

func TestClient_DoesNotRetryHardFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	if _, err := client.FetchLeagues(context.Background()); err == nil {
		t.Fatalf("expected error for 404")
	}
	if calls.Load() != 1 {
		t.Fatalf("hard failure retried: attempts=%d", calls.Load())
	}
}

func TestClient_CircuitBreakerOpensAfterTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "2",
		Timeout:    5 * time.Second,
		MaxRetries: 0,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchLeagues(context.Background()); err == nil {
		t.Fatalf("expected transient failure")
	}
	requestsBefore := calls.Load()

	_, err := client.FetchLeagues(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected breaker rejection, got: %v", err)
	}
	if calls.Load() != requestsBefore {
		t.Fatalf("breaker-open request still hit the network")
	}
}

func TestClient_FetchImage(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)

	got, err := client.FetchImage(context.Background(), server.URL+"/badge.png")
	if err != nil {
		t.Fatalf("fetch image: %v", err)
	}
	if len(got) != len(payload) || got[0] != payload[0] {
		t.Fatalf("unexpected image bytes: %v", got)
	}

	_, err = client.FetchImage(context.Background(), server.URL+"/missing.png")
	if !errors.Is(err, usecase.ErrImageFetch) {
		t.Fatalf("unexpected image error: %v", err)
	}

	_, err = client.FetchImage(context.Background(), "   ")
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("unexpected empty-url error: %v", err)
	}
}
