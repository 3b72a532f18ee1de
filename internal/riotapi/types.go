package riotapi

import "encoding/json"

// Account represents the response from /riot/account/v1/accounts/by-riot-id.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Match represents the response from /lol/match/v5/matches/{matchId}.
// Only the fields the service renders are modelled. Raw keeps the provider
// document as received.
type Match struct {
	Metadata Metadata `json:"metadata"`
	Info     Info     `json:"info"`

	Raw json.RawMessage `json:"-"`
}

// Document returns the provider document, or the modelled fields re-encoded
// when the match was not decoded from a provider response.
func (m Match) Document() (json.RawMessage, error) {
	if len(m.Raw) > 0 {
		return m.Raw, nil
	}
	return json.Marshal(m)
}

type Metadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type Info struct {
	GameCreation int64         `json:"gameCreation"`
	GameDuration int           `json:"gameDuration"` // seconds
	GameMode     string        `json:"gameMode"`
	QueueID      int           `json:"queueId"`
	Teams        []Team        `json:"teams"`
	Participants []Participant `json:"participants"`
}

// Team is one side of a match. TeamID joins to Participant.TeamID (100 or 200).
type Team struct {
	TeamID int  `json:"teamId"`
	Win    bool `json:"win"`
}

// Participant is one player's per-match performance record.
type Participant struct {
	PUUID          string `json:"puuid"`
	SummonerName   string `json:"summonerName"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline"`
	ChampionID     int    `json:"championId"`
	ChampionName   string `json:"championName"`
	TeamID         int    `json:"teamId"`
	TeamPosition   string `json:"teamPosition"` // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY
	Kills          int    `json:"kills"`
	Deaths         int    `json:"deaths"`
	Assists        int    `json:"assists"`
	Win            bool   `json:"win"`
}

// DisplayName returns the summoner name, or the Riot ID game name when the
// provider left the summoner name blank.
func (p Participant) DisplayName() string {
	if p.SummonerName != "" {
		return p.SummonerName
	}
	return p.RiotIDGameName
}
