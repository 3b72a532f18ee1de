// Command lookup prints a player's recent matches from their side of the map.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/edvart/league-stats/internal/config"
	"github.com/edvart/league-stats/internal/logging"
	"github.com/edvart/league-stats/internal/matches"
	"github.com/edvart/league-stats/internal/perspective"
	"github.com/edvart/league-stats/internal/riotapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "lookup:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	riotID := fs.String("riot-id", "", "Riot ID as name#tag (overrides -name and -tag)")
	name := fs.String("name", "", "Riot ID game name")
	tag := fs.String("tag", "", "Riot ID tag line")
	count := fs.Int("count", cfg.MatchCount, "number of recent matches")
	asJSON := fs.Bool("json", false, "print the raw match documents")
	if err := fs.Parse(args); err != nil {
		return err
	}

	handle, err := handleFromFlags(*riotID, *name, *tag)
	if err != nil {
		return err
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	client := riotapi.NewClient(cfg.RiotAPIKey,
		riotapi.WithBaseURL(cfg.RiotBaseURL),
		riotapi.WithTimeout(cfg.ProviderTimeout),
	)
	return lookup(ctx, matches.NewAggregator(client, log), handle, *count, *asJSON, out)
}

// handleFromFlags prefers -riot-id over the separate -name and -tag flags.
func handleFromFlags(riotID, name, tag string) (matches.Handle, error) {
	if riotID != "" {
		return matches.ParseHandle(riotID)
	}
	return matches.Handle{Name: name, Tag: tag}, nil
}

// fetcher is the aggregation step lookup depends on.
type fetcher interface {
	FetchRecentMatches(ctx context.Context, handle matches.Handle, count int) ([]riotapi.Match, error)
}

func lookup(ctx context.Context, f fetcher, handle matches.Handle, count int, asJSON bool, out io.Writer) error {
	records, err := f.FetchRecentMatches(ctx, handle, count)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintf(out, "No games found for %s\n", handle)
		return nil
	}
	for _, res := range perspective.DeriveAll(records, handle) {
		if res.Err != nil {
			fmt.Fprintf(out, "Game %d  %s  error: %v\n", res.Index+1, res.MatchID, res.Err)
			continue
		}
		p := res.Perspective
		result := "Defeat"
		if p.Won {
			result = "Victory"
		}
		preview := p.Preview()
		fmt.Fprintf(out, "Game %d  %s  %-7s  %-12s %s\n", res.Index+1, res.MatchID, result, preview.ChampionName, preview.KDA())
	}
	return nil
}
