package riotapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetAccountByRiotID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Riot-Token"); got != "RGAPI-test-key" {
			t.Errorf("X-Riot-Token = %q, want %q", got, "RGAPI-test-key")
		}
		if r.URL.EscapedPath() != "/riot/account/v1/accounts/by-riot-id/Hide%20on%20bush/KR1" {
			t.Errorf("unexpected path %q", r.URL.EscapedPath())
		}
		w.Write([]byte(`{"puuid":"puuid-1","gameName":"Hide on bush","tagLine":"KR1"}`))
	}))
	defer server.Close()

	client := NewClient("RGAPI-test-key", WithBaseURL(server.URL))

	account, err := client.GetAccountByRiotID(context.Background(), "Hide on bush", "KR1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.PUUID != "puuid-1" {
		t.Errorf("PUUID = %q, want %q", account.PUUID, "puuid-1")
	}
}

func TestGetAccountByRiotID_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":{"message":"Data not found - No results found for player with riot id nobody#000","status_code":404}}`))
	}))
	defer server.Close()

	client := NewClient("RGAPI-test-key", WithBaseURL(server.URL))

	_, err := client.GetAccountByRiotID(context.Background(), "nobody", "000")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if !statusErr.NotFound() {
		t.Errorf("expected NotFound, status %d", statusErr.StatusCode)
	}
	if statusErr.Message == "" {
		t.Error("expected provider message to be lifted from the body")
	}
}

func TestGetMatchIDs_PassesCountAndOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lol/match/v5/matches/by-puuid/puuid-1/ids" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("count"); got != "3" {
			t.Errorf("count = %q, want 3", got)
		}
		w.Write([]byte(`["NA1_3","NA1_1","NA1_2"]`))
	}))
	defer server.Close()

	client := NewClient("RGAPI-test-key", WithBaseURL(server.URL))

	ids, err := client.GetMatchIDs(context.Background(), "puuid-1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"NA1_3", "NA1_1", "NA1_2"}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestGetMatch_DecodesTeamsAndParticipants(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"metadata": {"matchId": "NA1_1", "participants": ["a", "b"]},
			"info": {
				"gameDuration": 1832,
				"teams": [{"teamId": 100, "win": true}, {"teamId": 200, "win": false}],
				"participants": [
					{"puuid": "a", "summonerName": "", "riotIdGameName": "Faker", "championName": "Ahri", "teamId": 100, "kills": 7, "deaths": 1, "assists": 9},
					{"puuid": "b", "summonerName": "Chovy", "championName": "Azir", "teamId": 200, "kills": 2, "deaths": 4, "assists": 3}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient("RGAPI-test-key", WithBaseURL(server.URL))

	match, err := client.GetMatch(context.Background(), "NA1_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(match.Info.Teams) != 2 || len(match.Info.Participants) != 2 {
		t.Fatalf("unexpected shape: %+v", match.Info)
	}
	if got := match.Info.Participants[0].DisplayName(); got != "Faker" {
		t.Errorf("DisplayName() = %q, want fallback to riotIdGameName", got)
	}
	if got := match.Info.Participants[1].DisplayName(); got != "Chovy" {
		t.Errorf("DisplayName() = %q, want %q", got, "Chovy")
	}
}

func TestGetMatch_KeepsProviderDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"metadata":{"matchId":"NA1_2"},"info":{"gameVersion":"14.22.1","teams":[],"participants":[]}}`))
	}))
	defer server.Close()

	client := NewClient("RGAPI-test-key", WithBaseURL(server.URL))

	match, err := client.GetMatch(context.Background(), "NA1_2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := match.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	var decoded struct {
		Info struct {
			GameVersion string `json:"gameVersion"`
		} `json:"info"`
	}
	if err := json.Unmarshal(doc, &decoded); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if decoded.Info.GameVersion != "14.22.1" {
		t.Errorf("unmodelled field dropped: %s", doc)
	}
}

func TestMatchDocument_WithoutRaw(t *testing.T) {
	m := Match{Metadata: Metadata{MatchID: "NA1_3"}}

	doc, err := m.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	var back Match
	if err := json.Unmarshal(doc, &back); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if back.Metadata.MatchID != "NA1_3" {
		t.Errorf("matchId = %q", back.Metadata.MatchID)
	}
}

func TestGet_MissingKeyMakesNoRequest(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := NewClient("", WithBaseURL(server.URL))

	_, err := client.GetMatch(context.Background(), "NA1_1")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestGet_ForbiddenKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"status":{"message":"Forbidden","status_code":403}}`))
	}))
	defer server.Close()

	client := NewClient("RGAPI-expired-key", WithBaseURL(server.URL))

	_, err := client.GetMatchIDs(context.Background(), "puuid-1", 5)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", statusErr.StatusCode)
	}
	if statusErr.Error() != "API returned status 403: Forbidden" {
		t.Errorf("Error() = %q", statusErr.Error())
	}
}

func TestGet_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"metadata":`))
	}))
	defer server.Close()

	client := NewClient("RGAPI-test-key", WithBaseURL(server.URL))

	if _, err := client.GetMatch(context.Background(), "NA1_1"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGet_PerCallTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient("RGAPI-test-key", WithBaseURL(server.URL), WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := client.GetMatch(context.Background(), "NA1_1")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout not applied, took %v", elapsed)
	}
}
