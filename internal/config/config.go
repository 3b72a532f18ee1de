// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the service.
type Config struct {
	Port string `env:"PORT" envDefault:"4000"`

	RiotAPIKey      string        `env:"RIOT_API_KEY"`
	RiotBaseURL     string        `env:"RIOT_BASE_URL" envDefault:"https://americas.api.riotgames.com"`
	MatchCount      int           `env:"MATCH_COUNT" envDefault:"5"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`

	DDragonBaseURL string `env:"DDRAGON_BASE_URL" envDefault:"https://ddragon.leagueoflegends.com"`
	DDragonVersion string `env:"DDRAGON_VERSION" envDefault:"14.22.1"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // text or json

	CORSOrigin string        `env:"CORS_ORIGIN" envDefault:"*"`
	WebDir     string        `env:"WEB_DIR"` // serve templates/ and static/ from disk instead of the binary
	ViewTTL    time.Duration `env:"VIEW_TTL" envDefault:"30m"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load reads optional .env files (".env" when none are named) and then
// parses the environment. Variables already set in the environment win
// over .env values.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MatchCount < 1 {
		return fmt.Errorf("MATCH_COUNT must be at least 1, got %d", c.MatchCount)
	}
	if c.ProviderTimeout < 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must not be negative, got %s", c.ProviderTimeout)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
