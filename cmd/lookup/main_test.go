package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/edvart/league-stats/internal/matches"
	"github.com/edvart/league-stats/internal/riotapi"
)

type stubFetcher struct {
	records []riotapi.Match
	err     error
}

func (s stubFetcher) FetchRecentMatches(ctx context.Context, handle matches.Handle, count int) ([]riotapi.Match, error) {
	return s.records, s.err
}

func game(id string, name string, won bool) riotapi.Match {
	return riotapi.Match{
		Metadata: riotapi.Metadata{MatchID: id},
		Info: riotapi.Info{
			Teams: []riotapi.Team{{TeamID: 100, Win: won}, {TeamID: 200, Win: !won}},
			Participants: []riotapi.Participant{
				{SummonerName: name, ChampionName: "Ahri", TeamID: 100, Kills: 7, Deaths: 2, Assists: 9},
				{SummonerName: "Chovy", ChampionName: "Azir", TeamID: 200, Kills: 1, Deaths: 4, Assists: 2},
			},
		},
	}
}

func TestLookupPrintsPerspectiveLines(t *testing.T) {
	f := stubFetcher{records: []riotapi.Match{
		game("KR_1", "Faker", true),
		game("KR_2", "Faker", false),
		game("KR_3", "Someone", true),
	}}

	var out bytes.Buffer
	if err := lookup(context.Background(), f, matches.Handle{Name: "Faker", Tag: "KR1"}, 3, false, &out); err != nil {
		t.Fatalf("lookup: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out.String())
	}
	for i, want := range []string{"Victory", "Defeat", "error:"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
	if !strings.Contains(lines[0], "7 / 2 / 9") {
		t.Errorf("line 0 missing KDA: %q", lines[0])
	}
}

func TestLookupJSON(t *testing.T) {
	f := stubFetcher{records: []riotapi.Match{game("KR_1", "Faker", true)}}

	var out bytes.Buffer
	if err := lookup(context.Background(), f, matches.Handle{Name: "Faker", Tag: "KR1"}, 1, true, &out); err != nil {
		t.Fatalf("lookup: %v", err)
	}

	var got []riotapi.Match
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Metadata.MatchID != "KR_1" {
		t.Errorf("got %+v", got)
	}
}

func TestLookupNoGames(t *testing.T) {
	var out bytes.Buffer
	if err := lookup(context.Background(), stubFetcher{records: []riotapi.Match{}}, matches.Handle{Name: "Faker", Tag: "KR1"}, 5, false, &out); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got := out.String(); got != "No games found for Faker#KR1\n" {
		t.Errorf("output = %q", got)
	}
}

func TestLookupPropagatesError(t *testing.T) {
	want := errors.New("provider down")
	err := lookup(context.Background(), stubFetcher{err: want}, matches.Handle{Name: "Faker", Tag: "KR1"}, 5, false, &bytes.Buffer{})
	if !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}

func TestHandleFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		riotID   string
		nameFlag string
		tagFlag  string
		want     matches.Handle
		wantErr  bool
	}{
		{name: "riot id", riotID: "Hide on bush#KR1", want: matches.Handle{Name: "Hide on bush", Tag: "KR1"}},
		{name: "riot id wins over flags", riotID: "Zeus#KR1", nameFlag: "Faker", tagFlag: "KR1", want: matches.Handle{Name: "Zeus", Tag: "KR1"}},
		{name: "separate flags", nameFlag: "Faker", tagFlag: "KR1", want: matches.Handle{Name: "Faker", Tag: "KR1"}},
		{name: "riot id without tag", riotID: "Faker", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := handleFromFlags(tt.riotID, tt.nameFlag, tt.tagFlag)
			if tt.wantErr {
				if !errors.Is(err, matches.ErrValidation) {
					t.Fatalf("err = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("handle = %+v, want %+v", got, tt.want)
			}
		})
	}
}
