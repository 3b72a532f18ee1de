// Package view holds the search page state. A State is a value: every
// transition returns a new State and leaves the receiver untouched.
package view

import (
	"fmt"
	"strings"

	"github.com/edvart/league-stats/internal/matches"
	"github.com/edvart/league-stats/internal/perspective"
	"github.com/edvart/league-stats/internal/riotapi"
)

// Display is the per-match card state.
type Display int

const (
	Collapsed Display = iota // preview only
	Expanded                 // both team panels
)

func (d Display) String() string {
	switch d {
	case Collapsed:
		return "collapsed"
	case Expanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	MsgMissingInput = "Please enter both username and tag."
	MsgFetchFailed  = "Failed to fetch game data. Please try again."
)

// State is everything the search page renders.
type State struct {
	Name    string
	Tag     string
	Loading bool
	Err     string
	Matches []riotapi.Match

	// searched is the handle the current Matches belong to; the inputs can
	// drift from it while a new search is pending.
	searched matches.Handle
	expanded map[int]bool
	seq      uint64 // bumped by every Submit
}

// Search identifies one submitted search. Only the latest Submit's Search
// may land its result in the State.
type Search struct {
	Handle matches.Handle
	seq    uint64
}

// Submit records the search inputs and supersedes any search still in
// flight. Missing input yields a validation error and a State that is not
// loading, so callers make no provider call.
func (s State) Submit(name, tag string) (State, error) {
	next := s
	next.Name = name
	next.Tag = tag
	next.seq = s.seq + 1

	h := matches.Handle{Name: name, Tag: tag}
	if err := h.Validate(); err != nil {
		next.Loading = false
		next.Err = MsgMissingInput
		return next, err
	}

	next.Loading = true
	next.Err = ""
	return next, nil
}

// Pending returns the search the last Submit started.
func (s State) Pending() Search {
	return Search{
		Handle: matches.Handle{Name: strings.TrimSpace(s.Name), Tag: strings.TrimSpace(s.Tag)},
		seq:    s.seq,
	}
}

func (s State) current(search Search) bool {
	return search.seq == s.seq
}

// Loaded replaces the result list with the records of search and collapses
// every card. Results of a superseded search are dropped.
func (s State) Loaded(search Search, records []riotapi.Match) State {
	if !s.current(search) {
		return s
	}
	next := s
	next.Loading = false
	next.Err = ""
	next.Matches = records
	next.searched = search.Handle
	next.expanded = nil
	return next
}

// Failed ends search with a message chosen by failure kind. The previous
// result list is kept. Failures of a superseded search are dropped.
func (s State) Failed(search Search, err error) State {
	if !s.current(search) {
		return s
	}
	next := s
	next.Loading = false
	next.Err = Message(err)
	return next
}

// Message maps an aggregation error to the text shown to the user.
func Message(err error) string {
	switch matches.KindOf(err) {
	case matches.KindValidation:
		return MsgMissingInput
	case matches.KindIdentityNotFound:
		return "No account found for that username and tag."
	default:
		return MsgFetchFailed
	}
}

// Toggle flips one card between Collapsed and Expanded. Indexes outside the
// result list are ignored.
func (s State) Toggle(index int) State {
	if index < 0 || index >= len(s.Matches) {
		return s
	}
	next := s
	next.expanded = make(map[int]bool, len(s.expanded)+1)
	for k, v := range s.expanded {
		next.expanded[k] = v
	}
	next.expanded[index] = !s.expanded[index]
	return next
}

// Display returns the state of card index.
func (s State) Display(index int) Display {
	if s.expanded[index] {
		return Expanded
	}
	return Collapsed
}

// Searched is the handle the current result list was fetched for.
func (s State) Searched() matches.Handle {
	return s.searched
}

// Empty reports whether the "no data" placeholder should be shown.
func (s State) Empty() bool {
	return !s.Loading && len(s.Matches) == 0
}

// Card is one rendered match slot.
type Card struct {
	Index       int
	MatchID     string
	Display     Display
	Victory     bool
	Perspective *perspective.Perspective
	Preview     perspective.Preview
	Err         string
}

// Title is the card heading, e.g. "Game 1 - Victory".
func (c Card) Title() string {
	switch {
	case c.Err != "":
		return fmt.Sprintf("Game %d", c.Index+1)
	case c.Victory:
		return fmt.Sprintf("Game %d - Victory", c.Index+1)
	default:
		return fmt.Sprintf("Game %d - Defeat", c.Index+1)
	}
}

// Expanded reports whether the full team panels are shown.
func (c Card) Expanded() bool {
	return c.Display == Expanded
}

// Cards derives every match card. A match that cannot be derived carries an
// error in its own card and does not affect the others.
func (s State) Cards() []Card {
	results := perspective.DeriveAll(s.Matches, s.searched)
	cards := make([]Card, len(results))
	for i, r := range results {
		card := Card{
			Index:   r.Index,
			MatchID: r.MatchID,
			Display: s.Display(r.Index),
		}
		if r.Err != nil {
			card.Err = r.Err.Error()
		} else {
			card.Perspective = r.Perspective
			card.Victory = r.Perspective.Won
			card.Preview = r.Perspective.Preview()
		}
		cards[i] = card
	}
	return cards
}
