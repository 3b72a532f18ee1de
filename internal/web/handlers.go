package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/edvart/league-stats/internal/matches"
	"github.com/edvart/league-stats/internal/perspective"
	"github.com/edvart/league-stats/internal/riotapi"
)

// legacyErrorMessage is the only error text /past5Games ever returns.
const legacyErrorMessage = "An error occurred while processing your request"

// ErrorResponse is the JSON error payload. Kind lets clients branch on the
// failure class instead of the message.
type ErrorResponse struct {
	Error string       `json:"error"`
	Kind  matches.Kind `json:"kind,omitempty"`
}

// PerspectiveResponse is one match slot in /api/perspective.
type PerspectiveResponse struct {
	Index        int                   `json:"index"`
	MatchID      string                `json:"matchId"`
	Victory      bool                  `json:"victory"`
	OpponentsWon bool                  `json:"opponentsWon"`
	Preview      *perspective.Preview  `json:"preview,omitempty"`
	Player       *riotapi.Participant  `json:"player,omitempty"`
	Allies       []riotapi.Participant `json:"allies,omitempty"`
	Opponents    []riotapi.Participant `json:"opponents,omitempty"`
	Error        string                `json:"error,omitempty"`
}

// handleMatches returns the modelled match fields for ?name=&tag=[&count=].
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	handle, count, err := s.searchParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	records, err := s.fetcher.FetchRecentMatches(r.Context(), handle, count)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, records)
}

// handlePerspective returns each match already oriented around the player.
// A match that cannot be derived reports its error in its own slot.
func (s *Server) handlePerspective(w http.ResponseWriter, r *http.Request) {
	handle, count, err := s.searchParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	records, err := s.fetcher.FetchRecentMatches(r.Context(), handle, count)
	if err != nil {
		s.writeError(w, err)
		return
	}

	results := perspective.DeriveAll(records, handle)
	resp := make([]PerspectiveResponse, len(results))
	for i, res := range results {
		resp[i] = PerspectiveResponse{Index: res.Index, MatchID: res.MatchID}
		if res.Err != nil {
			s.log.WithError(res.Err).WithField("match_id", res.MatchID).Warn("Could not derive perspective")
			resp[i].Error = res.Err.Error()
			continue
		}
		p := res.Perspective
		preview := p.Preview()
		player := p.Player
		resp[i].Victory = p.Won
		resp[i].OpponentsWon = p.OpponentsWon
		resp[i].Preview = &preview
		resp[i].Player = &player
		resp[i].Allies = p.Allies
		resp[i].Opponents = p.Opponents
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handlePast5Games keeps the first-generation endpoint: ?username=&tag=, five
// full provider documents, and one generic error for every failure.
func (s *Server) handlePast5Games(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	handle := matches.Handle{Name: q.Get("username"), Tag: q.Get("tag")}

	records, err := s.fetcher.FetchRecentMatches(r.Context(), handle, 5)
	if err != nil {
		s.log.WithError(err).WithField("handle", handle.String()).Warn("Error processing request")
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: legacyErrorMessage})
		return
	}

	docs := make([]json.RawMessage, len(records))
	for i, match := range records {
		doc, err := match.Document()
		if err != nil {
			s.log.WithError(err).WithField("match_id", match.Metadata.MatchID).Warn("Error processing request")
			s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: legacyErrorMessage})
			return
		}
		docs[i] = doc
	}

	s.writeJSON(w, http.StatusOK, docs)
}

// searchParams reads the handle and optional count. Validation happens here
// so a bad request never reaches the provider.
func (s *Server) searchParams(r *http.Request) (matches.Handle, int, error) {
	q := r.URL.Query()
	handle := matches.Handle{Name: q.Get("name"), Tag: q.Get("tag")}
	if err := handle.Validate(); err != nil {
		return handle, 0, err
	}

	count := s.matchCount
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > riotapi.MaxMatchCount {
			return handle, 0, fmt.Errorf("%w: count must be between 1 and %d", matches.ErrValidation, riotapi.MaxMatchCount)
		}
		count = n
	}
	return handle, count, nil
}

func statusFor(kind matches.Kind) int {
	switch kind {
	case matches.KindValidation:
		return http.StatusBadRequest
	case matches.KindIdentityNotFound:
		return http.StatusNotFound
	case matches.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := matches.KindOf(err)

	msg := err.Error()
	switch kind {
	case matches.KindUpstream:
		// Provider details stay in the log.
		msg = matches.ErrUpstream.Error()
		var statusErr *riotapi.StatusError
		if errors.As(err, &statusErr) {
			s.log.WithField("provider_status", statusErr.StatusCode).WithError(err).Warn("Upstream failure")
		} else {
			s.log.WithError(err).Warn("Upstream failure")
		}
	case matches.KindInternal:
		msg = "internal error"
		s.log.WithError(err).Error("Unclassified failure")
	}

	s.writeJSON(w, statusFor(kind), ErrorResponse{Error: msg, Kind: kind})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("Encode response")
	}
}
