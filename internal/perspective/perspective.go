// Package perspective reorients a match document around the queried player:
// their team against everyone else.
package perspective

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/edvart/league-stats/internal/matches"
	"github.com/edvart/league-stats/internal/riotapi"
)

var (
	ErrPlayerNotInMatch = errors.New("queried player is not in this match")
	ErrAmbiguousPlayer  = errors.New("more than one participant matches the queried player")
	ErrTeamNotFound     = errors.New("participant team is missing from the match teams")
	ErrDuplicateTeam    = errors.New("team is listed more than once")
)

// Perspective is one match seen from the queried player's side.
type Perspective struct {
	Player       riotapi.Participant   `json:"player"`
	Won          bool                  `json:"won"`
	OpponentsWon bool                  `json:"opponentsWon"`
	Allies       []riotapi.Participant `json:"allies"`    // includes Player
	Opponents    []riotapi.Participant `json:"opponents"` // every other team
}

// Preview is the collapsed summary: the queried player's champion and KDA.
type Preview struct {
	ChampionName string `json:"championName"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
}

// Preview returns the collapsed summary for p.
func (p Perspective) Preview() Preview {
	return Preview{
		ChampionName: p.Player.ChampionName,
		Kills:        p.Player.Kills,
		Deaths:       p.Player.Deaths,
		Assists:      p.Player.Assists,
	}
}

// KDA formats kills / deaths / assists.
func (p Preview) KDA() string {
	return fmt.Sprintf("%d / %d / %d", p.Kills, p.Deaths, p.Assists)
}

// Derive builds the perspective of handle in match. It never mutates match
// and returns the same result for the same inputs.
func Derive(match riotapi.Match, handle matches.Handle) (Perspective, error) {
	outcomes, err := teamOutcomes(match)
	if err != nil {
		return Perspective{}, err
	}

	player, err := FindPlayer(match, handle.Name)
	if err != nil {
		return Perspective{}, err
	}

	p := Perspective{
		Player:    player,
		Won:       outcomes[player.TeamID],
		Allies:    []riotapi.Participant{},
		Opponents: []riotapi.Participant{},
	}
	for _, participant := range match.Info.Participants {
		if participant.TeamID == player.TeamID {
			p.Allies = append(p.Allies, participant)
		} else {
			p.Opponents = append(p.Opponents, participant)
		}
	}
	for teamID, won := range outcomes {
		if teamID != player.TeamID && won {
			p.OpponentsWon = true
		}
	}
	return p, nil
}

// FindPlayer returns the unique participant whose summoner name (or Riot ID
// game name) equals name under Unicode case folding.
func FindPlayer(match riotapi.Match, name string) (riotapi.Participant, error) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(name))
	if want == "" {
		return riotapi.Participant{}, ErrPlayerNotInMatch
	}

	var (
		found riotapi.Participant
		hits  int
	)
	for _, participant := range match.Info.Participants {
		if nameMatches(fold, participant, want) {
			found = participant
			hits++
		}
	}

	switch hits {
	case 0:
		return riotapi.Participant{}, fmt.Errorf("%w: %q", ErrPlayerNotInMatch, name)
	case 1:
		return found, nil
	default:
		return riotapi.Participant{}, fmt.Errorf("%w: %d participants named %q", ErrAmbiguousPlayer, hits, name)
	}
}

func nameMatches(fold cases.Caser, p riotapi.Participant, want string) bool {
	for _, candidate := range []string{p.SummonerName, p.RiotIDGameName} {
		if candidate != "" && fold.String(candidate) == want {
			return true
		}
	}
	return false
}

// ValidateTeams checks that team ids are unique and that every participant
// belongs to a listed team.
func ValidateTeams(match riotapi.Match) error {
	_, err := teamOutcomes(match)
	return err
}

func teamOutcomes(match riotapi.Match) (map[int]bool, error) {
	outcomes := make(map[int]bool, len(match.Info.Teams))
	for _, team := range match.Info.Teams {
		if _, dup := outcomes[team.TeamID]; dup {
			return nil, fmt.Errorf("%w: team %d", ErrDuplicateTeam, team.TeamID)
		}
		outcomes[team.TeamID] = team.Win
	}
	for _, participant := range match.Info.Participants {
		if _, ok := outcomes[participant.TeamID]; !ok {
			return nil, fmt.Errorf("%w: team %d (%s)", ErrTeamNotFound, participant.TeamID, participant.DisplayName())
		}
	}
	return outcomes, nil
}

// Result is the outcome of deriving one match in a batch.
type Result struct {
	Index       int          `json:"index"`
	MatchID     string       `json:"matchId"`
	Perspective *Perspective `json:"perspective,omitempty"`
	Err         error        `json:"-"`
}

// DeriveAll derives every match independently; a failure stays in its slot.
func DeriveAll(records []riotapi.Match, handle matches.Handle) []Result {
	results := make([]Result, len(records))
	for i, match := range records {
		results[i] = Result{Index: i, MatchID: match.Metadata.MatchID}
		p, err := Derive(match, handle)
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].Perspective = &p
	}
	return results
}
