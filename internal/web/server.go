package web

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/edvart/league-stats/internal/logging"
	"github.com/edvart/league-stats/internal/matches"
	"github.com/edvart/league-stats/internal/riotapi"
)

// MatchFetcher runs one aggregation.
type MatchFetcher interface {
	FetchRecentMatches(ctx context.Context, handle matches.Handle, count int) ([]riotapi.Match, error)
}

// Server holds the HTTP server and its dependencies.
type Server struct {
	router     *chi.Mux
	fetcher    MatchFetcher
	views      *ViewStore
	templates  *template.Template
	log        logrus.FieldLogger
	matchCount int
	corsOrigin string
}

// Config holds server configuration.
type Config struct {
	MatchCount int    // matches per search when the caller gives no count
	CORSOrigin string // Access-Control-Allow-Origin for the JSON API
}

// NewServer creates a new HTTP server.
func NewServer(
	fetcher MatchFetcher,
	views *ViewStore,
	templates *template.Template,
	staticFS fs.FS,
	log logrus.FieldLogger,
	cfg Config,
) *Server {
	if cfg.MatchCount < 1 {
		cfg.MatchCount = 5
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}

	s := &Server{
		router:     chi.NewRouter(),
		fetcher:    fetcher,
		views:      views,
		templates:  templates,
		log:        log,
		matchCount: cfg.MatchCount,
		corsOrigin: cfg.CORSOrigin,
	}

	s.setupRoutes(staticFS)
	return s
}

func (s *Server) setupRoutes(staticFS fs.FS) {
	r := s.router

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.log))
	r.Use(middleware.Recoverer)

	// Static files
	if staticFS != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// JSON API
	r.Group(func(r chi.Router) {
		r.Use(s.cors)

		r.Get("/api/matches", s.handleMatches)
		r.Get("/api/perspective", s.handlePerspective)
		r.Get("/past5Games", s.handlePast5Games)
		r.Options("/api/matches", noContent)
		r.Options("/api/perspective", noContent)
		r.Options("/past5Games", noContent)
	})

	// Search page
	r.Get("/", s.handleIndex)
	r.Post("/search", s.handleSearch)
	r.Post("/games/{index}/toggle", s.handleToggle)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// cors sets CORS headers and answers preflight requests.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func noContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
