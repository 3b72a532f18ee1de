package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edvart/league-stats/internal/view"
)

const (
	ViewCookieName = "view_id"
	DefaultViewTTL = 30 * time.Minute
)

// ViewStore keeps each browser's search page state in memory, keyed by a
// cookie. Entries expire after ttl without use and are never written to disk.
type ViewStore struct {
	mu    sync.RWMutex
	views map[string]*viewEntry
	ttl   time.Duration
	now   func() time.Time
}

type viewEntry struct {
	state     view.State
	expiresAt time.Time
}

// NewViewStore creates a view store.
func NewViewStore(ttl time.Duration) *ViewStore {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	return &ViewStore{
		views: make(map[string]*viewEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Session returns the view id for the request, issuing a new cookie when the
// request has none or its view expired.
func (vs *ViewStore) Session(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(ViewCookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			vs.mu.RLock()
			entry, ok := vs.views[cookie.Value]
			live := ok && vs.now().Before(entry.expiresAt)
			vs.mu.RUnlock()
			if live {
				return cookie.Value
			}
		}
	}

	id := uuid.NewString()
	vs.mu.Lock()
	vs.views[id] = &viewEntry{expiresAt: vs.now().Add(vs.ttl)}
	vs.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     ViewCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Get returns the state for id, or the zero State.
func (vs *ViewStore) Get(id string) view.State {
	vs.mu.RLock()
	defer vs.mu.RUnlock()

	entry, ok := vs.views[id]
	if !ok || !vs.now().Before(entry.expiresAt) {
		return view.State{}
	}
	return entry.state
}

// Update applies fn to the current state of id and stores the result.
func (vs *ViewStore) Update(id string, fn func(view.State) view.State) view.State {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	entry, ok := vs.views[id]
	if !ok || !vs.now().Before(entry.expiresAt) {
		entry = &viewEntry{}
		vs.views[id] = entry
	}
	entry.state = fn(entry.state)
	entry.expiresAt = vs.now().Add(vs.ttl)
	return entry.state
}

// Sweep drops expired views and returns how many were removed.
func (vs *ViewStore) Sweep() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	now := vs.now()
	removed := 0
	for id, entry := range vs.views {
		if !now.Before(entry.expiresAt) {
			delete(vs.views, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored views, expired or not.
func (vs *ViewStore) Len() int {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return len(vs.views)
}

// Run sweeps expired views every interval until ctx is done.
func (vs *ViewStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			vs.Sweep()
		}
	}
}
