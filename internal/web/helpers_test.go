package web

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/edvart/league-stats/internal/assets"
	"github.com/edvart/league-stats/internal/matches"
	"github.com/edvart/league-stats/internal/riotapi"
	webfiles "github.com/edvart/league-stats/web"
)

// fakeFetcher returns canned matches and records every call.
type fakeFetcher struct {
	records []riotapi.Match
	err     error

	mu      sync.Mutex
	handles []matches.Handle
	counts  []int
}

func (f *fakeFetcher) FetchRecentMatches(ctx context.Context, handle matches.Handle, count int) ([]riotapi.Match, error) {
	f.mu.Lock()
	f.handles = append(f.handles, handle)
	f.counts = append(f.counts, count)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handles)
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func participant(name, champion string, teamID, k, d, a int) riotapi.Participant {
	return riotapi.Participant{
		SummonerName: name,
		ChampionName: champion,
		TeamID:       teamID,
		Kills:        k,
		Deaths:       d,
		Assists:      a,
	}
}

// testMatch puts Faker on team 100 with the given outcome.
func testMatch(id string, fakerWon bool) riotapi.Match {
	return riotapi.Match{
		Metadata: riotapi.Metadata{MatchID: id},
		Info: riotapi.Info{
			Teams: []riotapi.Team{
				{TeamID: 100, Win: fakerWon},
				{TeamID: 200, Win: !fakerWon},
			},
			Participants: []riotapi.Participant{
				participant("Faker", "Ahri", 100, 7, 2, 9),
				participant("Keria", "Thresh", 100, 1, 3, 15),
				participant("Chovy", "Azir", 200, 4, 5, 6),
				participant("", "Jinx", 200, 2, 4, 3),
			},
		},
	}
}

func newTestServer(t *testing.T, fetcher MatchFetcher) (*Server, *ViewStore) {
	t.Helper()

	tmpl, err := LoadTemplates(webfiles.Templates(), assets.New("https://cdn.test", "1.0.0"))
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	views := NewViewStore(0)
	s := NewServer(fetcher, views, tmpl, nil, testLogger(), Config{MatchCount: 5})
	return s, views
}
