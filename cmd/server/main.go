package main

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edvart/league-stats/internal/assets"
	"github.com/edvart/league-stats/internal/config"
	"github.com/edvart/league-stats/internal/logging"
	"github.com/edvart/league-stats/internal/matches"
	"github.com/edvart/league-stats/internal/riotapi"
	"github.com/edvart/league-stats/internal/telemetry"
	"github.com/edvart/league-stats/internal/web"
	webfiles "github.com/edvart/league-stats/web"
)

const serviceName = "league-stats"

func main() {
	// Configuration from environment (and .env when present)
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	if cfg.RiotAPIKey == "" {
		log.Warn("RIOT_API_KEY not set. Every search will fail until it is configured.")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		log.WithError(err).Warn("Tracing disabled")
	}

	// Provider and aggregation
	client := riotapi.NewClient(cfg.RiotAPIKey,
		riotapi.WithBaseURL(cfg.RiotBaseURL),
		riotapi.WithTimeout(cfg.ProviderTimeout),
	)
	aggregator := matches.NewAggregator(client, log.WithField("component", "matches"))

	// Templates and static files: embedded, or from WEB_DIR when set
	cdn := assets.New(cfg.DDragonBaseURL, cfg.DDragonVersion)
	var (
		templates *template.Template
		staticFS  fs.FS
	)
	if cfg.WebDir != "" {
		log.WithField("dir", cfg.WebDir).Info("Serving web files from disk")
		templates, err = web.LoadTemplatesFromDir(filepath.Join(cfg.WebDir, "templates"), cdn)
		staticFS = os.DirFS(filepath.Join(cfg.WebDir, "static"))
	} else {
		templates, err = web.LoadTemplates(webfiles.Templates(), cdn)
		staticFS = webfiles.Static()
	}
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	views := web.NewViewStore(cfg.ViewTTL)
	go views.Run(ctx, time.Minute)

	// Initialize web server
	server := web.NewServer(aggregator, views, templates, staticFS, log.WithField("component", "web"), web.Config{
		MatchCount: cfg.MatchCount,
		CORSOrigin: cfg.CORSOrigin,
	})

	// Start HTTP server
	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: server,
	}

	// Handle shutdown signals
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		log.Info("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("HTTP server shutdown error")
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.WithError(err).Warn("Tracing shutdown error")
		}
	}()

	log.WithFields(logrus.Fields{
		"addr":        cfg.Addr(),
		"match_count": cfg.MatchCount,
		"ddragon":     cdn.Version(),
	}).Infof("Server running on http://localhost:%s", cfg.Port)

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server error: %v", err)
	}

	log.Info("Server stopped")
}
