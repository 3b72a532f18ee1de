// Package matches resolves a Riot ID to its most recent match documents.
//
// An aggregation is three provider steps: the handle is resolved to a PUUID,
// the newest match ids for that PUUID are listed, and every match document
// is fetched concurrently. Results come back in match-id order. Any failed
// step fails the whole aggregation; there is no partial-result mode.
package matches

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/edvart/league-stats/internal/riotapi"
)

const tracerName = "github.com/edvart/league-stats/internal/matches"

// Provider is the subset of the Riot API the aggregator needs.
type Provider interface {
	GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*riotapi.Account, error)
	GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (*riotapi.Match, error)
}

// Handle is a Riot ID: game name plus tag line.
type Handle struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// ParseHandle splits "name#tag".
func ParseHandle(riotID string) (Handle, error) {
	name, tag, ok := strings.Cut(riotID, "#")
	if !ok {
		return Handle{}, fmt.Errorf("%w: expected name#tag, got %q", ErrValidation, riotID)
	}
	h := Handle{Name: name, Tag: tag}.normalize()
	return h, h.Validate()
}

func (h Handle) String() string {
	return h.Name + "#" + h.Tag
}

// Validate reports ErrValidation when either half is blank.
func (h Handle) Validate() error {
	if strings.TrimSpace(h.Name) == "" || strings.TrimSpace(h.Tag) == "" {
		return fmt.Errorf("%w: username and tag are required", ErrValidation)
	}
	return nil
}

func (h Handle) normalize() Handle {
	return Handle{Name: strings.TrimSpace(h.Name), Tag: strings.TrimSpace(h.Tag)}
}

// Aggregator chains the provider calls for one search.
type Aggregator struct {
	provider Provider
	log      logrus.FieldLogger
	tracer   trace.Tracer
}

// NewAggregator creates an aggregator over provider.
func NewAggregator(provider Provider, log logrus.FieldLogger) *Aggregator {
	return &Aggregator{
		provider: provider,
		log:      log,
		tracer:   otel.Tracer(tracerName),
	}
}

// FetchRecentMatches returns the last count matches for handle, newest first.
func (a *Aggregator) FetchRecentMatches(ctx context.Context, handle Handle, count int) ([]riotapi.Match, error) {
	handle = handle.normalize()
	if err := handle.Validate(); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1, got %d", ErrValidation, count)
	}
	if count > riotapi.MaxMatchCount {
		count = riotapi.MaxMatchCount
	}

	ctx, span := a.tracer.Start(ctx, "matches.FetchRecentMatches", trace.WithAttributes(
		attribute.String("riot_id", handle.String()),
		attribute.Int("count", count),
	))
	defer span.End()

	start := time.Now()
	log := a.log.WithFields(logrus.Fields{"handle": handle.String(), "count": count})

	account, err := a.provider.GetAccountByRiotID(ctx, handle.Name, handle.Tag)
	if err != nil {
		if isNotFound(err) {
			log.Info("Riot ID not found")
			return nil, fmt.Errorf("%w: %s", ErrIdentityNotFound, handle)
		}
		log.WithError(err).Warn("Account lookup failed")
		return nil, upstream("resolve account", err)
	}
	log = log.WithField("puuid", account.PUUID)

	ids, err := a.provider.GetMatchIDs(ctx, account.PUUID, count)
	if err != nil {
		log.WithError(err).Warn("Match id lookup failed")
		return nil, upstream("list match ids", err)
	}
	log.WithField("match_ids", ids).Debug("Fetched match ids")

	records, err := a.fetchAll(ctx, ids)
	if err != nil {
		log.WithError(err).Warn("Match fetch failed")
		return nil, err
	}

	log.WithField("duration", time.Since(start)).Info("Aggregated recent matches")
	return records, nil
}

// fetchAll fetches every id concurrently. records[i] always belongs to ids[i].
func (a *Aggregator) fetchAll(ctx context.Context, ids []string) ([]riotapi.Match, error) {
	records := make([]riotapi.Match, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			match, err := a.provider.GetMatch(gctx, id)
			if err != nil {
				return upstream("fetch match "+id, err)
			}
			records[i] = *match
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
