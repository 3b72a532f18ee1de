package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/edvart/league-stats/internal/matches"
	"github.com/edvart/league-stats/internal/view"
)

// PageData holds data for the search page template.
type PageData struct {
	State      view.State
	Cards      []view.Card
	Searched   matches.Handle
	MatchCount int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id := s.views.Session(w, r)
	state := s.views.Get(id)

	data := PageData{
		State:      state,
		Cards:      state.Cards(),
		Searched:   state.Searched(),
		MatchCount: s.matchCount,
	}
	for _, card := range data.Cards {
		if card.Err != "" {
			s.log.WithField("match_id", card.MatchID).WithField("reason", card.Err).Warn("Rendering match without perspective")
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.log.WithError(err).Error("Template error")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleSearch runs one search and replaces the result list. Missing input
// is reported on the page without contacting the provider.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	id := s.views.Session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name, tag := r.PostForm.Get("username"), r.PostForm.Get("tag")

	var (
		search    view.Search
		submitErr error
	)
	s.views.Update(id, func(cur view.State) view.State {
		next, err := cur.Submit(name, tag)
		search, submitErr = next.Pending(), err
		return next
	})
	if submitErr != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// A later search in the same view supersedes this one; its result is
	// then dropped by the state.
	records, err := s.fetcher.FetchRecentMatches(r.Context(), search.Handle, s.matchCount)
	s.views.Update(id, func(cur view.State) view.State {
		if err != nil {
			return cur.Failed(search, err)
		}
		return cur.Loaded(search, records)
	})
	if err != nil {
		s.log.WithError(err).WithField("handle", search.Handle.String()).Warn("Search failed")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleToggle flips one card between preview and full view. Nothing is
// fetched.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "game index required", http.StatusBadRequest)
		return
	}

	id := s.views.Session(w, r)
	s.views.Update(id, func(cur view.State) view.State {
		return cur.Toggle(index)
	})

	http.Redirect(w, r, fmt.Sprintf("/#game-%d", index), http.StatusSeeOther)
}
