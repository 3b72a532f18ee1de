package riotapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the regional routing host for account-v1 and match-v5.
	DefaultBaseURL = "https://americas.api.riotgames.com"

	// MaxMatchCount is the largest count the match-id endpoint accepts.
	MaxMatchCount = 100

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
	tracerName     = "github.com/edvart/league-stats/internal/riotapi"
)

// ErrNoAPIKey is returned before any request is made when the client has no credential.
var ErrNoAPIKey = errors.New("no API key configured")

// StatusError is returned for any non-200 provider response.
type StatusError struct {
	StatusCode int
	Message    string // status.message from the provider body, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API returned status %d", e.StatusCode)
}

// NotFound reports whether the provider answered 404.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Client handles Riot Web API requests.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every individual provider call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a new Riot API client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		timeout:    defaultTimeout,
		httpClient: &http.Client{},
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetAccountByRiotID resolves gameName#tagLine to an account.
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(gameName), url.PathEscape(tagLine))

	var account Account
	if err := c.get(ctx, "GetAccountByRiotID", path, nil, &account); err != nil {
		return nil, err
	}
	if account.PUUID == "" {
		return nil, fmt.Errorf("account response has no puuid")
	}
	return &account, nil
}

// GetMatchIDs returns the most recent match IDs for a player, newest first.
func (c *Client) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids", url.PathEscape(puuid))
	query := url.Values{"count": {strconv.Itoa(count)}}

	var ids []string
	if err := c.get(ctx, "GetMatchIDs", path, query, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetMatch fetches the full match document. The undecoded body is kept in
// Match.Raw.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	path := "/lol/match/v5/matches/" + url.PathEscape(matchID)

	var raw json.RawMessage
	if err := c.get(ctx, "GetMatch", path, nil, &raw); err != nil {
		return nil, err
	}

	var match Match
	if err := json.Unmarshal(raw, &match); err != nil {
		return nil, fmt.Errorf("failed to decode match %s: %w", matchID, err)
	}
	match.Raw = raw
	return &match, nil
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, result any) (err error) {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}

	ctx, span := c.tracer.Start(ctx, "riotapi."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(body, "status.message").String(),
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
