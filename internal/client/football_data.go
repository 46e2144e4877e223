package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"soccer_v1/predictor/internal/engine"
	"soccer_v1/predictor/internal/metrics"
	"soccer_v1/predictor/internal/models"

	"github.com/rs/zerolog/log"
)

var (
	// ErrUnauthorized is returned for 401/403 responses, which are never retried
	ErrUnauthorized = errors.New("API authentication failed")
	// ErrNotFound is returned when an area or competition lookup has no match
	ErrNotFound = errors.New("not found")
)

// Status filters for the matches endpoint
const (
	FinishedStatuses = "FINISHED"
	UpcomingStatuses = "SCHEDULED,TIMED,LIVE,IN_PLAY,PAUSED"
)

const dateLayout = "2006-01-02"

// RetryPolicy controls how retryable responses (429/503/504) and network
// errors are retried.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	// MaxDelay caps both the exponential backoff and Retry-After; 0 means no cap
	MaxDelay time.Duration
}

// DefaultRetryPolicy retries three times with 1s, 2s, 4s backoff
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   time.Minute,
	}
}

// Backoff returns the delay before retry number attempt (1-based)
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	d := p.BaseDelay * time.Duration(1<<uint(attempt-1))
	return p.capped(d)
}

func (p RetryPolicy) capped(d time.Duration) time.Duration {
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// Option configures a Client
type Option func(*Client)

// WithRetryPolicy replaces the default retry policy
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

// WithMinInterval spaces consecutive requests at least d apart
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) {
		c.minInterval = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Client is the football-data.org v4 API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      RetryPolicy

	// Request spacing: each call reserves the next free slot
	minInterval time.Duration
	mu          sync.Mutex
	nextSlot    time.Time
}

// NewClient creates a new football-data.org API client
func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		retry:   DefaultRetryPolicy(),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// throttle blocks until the caller's reserved slot arrives
func (c *Client) throttle(ctx context.Context) error {
	if c.minInterval <= 0 {
		return nil
	}

	c.mu.Lock()
	now := time.Now()
	slot := c.nextSlot
	if slot.Before(now) {
		slot = now
	}
	c.nextSlot = slot.Add(c.minInterval)
	c.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// get performs a GET request with retry logic and request spacing.
// endpoint labels the call in metrics.
func (c *Client) get(ctx context.Context, endpoint, path string, params map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)

	var lastErr error
	var delay time.Duration
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordAPIRetry(endpoint)
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", delay).
				Msg("Retrying API request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := c.throttle(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("X-Auth-Token", c.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "soccer-predictor/1.0")

		if len(params) > 0 {
			q := req.URL.Query()
			for key, value := range params {
				q.Add(key, value)
			}
			req.URL.RawQuery = q.Encode()
		}

		log.Debug().
			Str("url", url).
			Str("query", req.URL.RawQuery).
			Int("attempt", attempt+1).
			Msg("Making API request")

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.RecordAPICall(endpoint, "error", time.Since(start).Seconds())
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("API request failed: %w", err)
			delay = c.retry.Backoff(attempt + 1)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		metrics.RecordAPICall(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			delay = c.retry.Backoff(attempt + 1)
			continue
		}

		switch resp.StatusCode {
		case http.StatusOK:
			log.Debug().
				Str("url", url).
				Int("status", resp.StatusCode).
				Int("size", len(body)).
				Msg("API request successful")
			return body, nil

		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			lastErr = fmt.Errorf("API returned retryable status %d: %s", resp.StatusCode, string(body))
			delay = c.retry.Backoff(attempt + 1)
			if after, ok := retryAfter(resp.Header.Get("Retry-After")); ok {
				delay = c.retry.capped(after)
			}
			if attempt < c.retry.MaxRetries {
				log.Warn().
					Str("url", url).
					Int("status", resp.StatusCode).
					Int("attempt", attempt+1).
					Msg("Received retryable error, will retry")
			}
			continue

		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%w (status %d): %s", ErrUnauthorized, resp.StatusCode, string(body))

		default:
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
	}

	return nil, lastErr
}

// retryAfter parses a Retry-After header given in seconds
func retryAfter(v string) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// FetchAreas fetches every area (country or region)
func (c *Client) FetchAreas(ctx context.Context) (*models.AreasResponse, error) {
	body, err := c.get(ctx, "areas", "areas", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch areas: %w", err)
	}

	var areas models.AreasResponse
	if err := json.Unmarshal(body, &areas); err != nil {
		return nil, fmt.Errorf("failed to unmarshal areas: %w", err)
	}

	return &areas, nil
}

// FetchCompetitions fetches the competitions of one area
func (c *Client) FetchCompetitions(ctx context.Context, areaID int) (*models.CompetitionsResponse, error) {
	params := map[string]string{"areas": strconv.Itoa(areaID)}
	body, err := c.get(ctx, "competitions", "competitions", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch competitions: %w", err)
	}

	var comps models.CompetitionsResponse
	if err := json.Unmarshal(body, &comps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal competitions: %w", err)
	}

	return &comps, nil
}

// FindCompetition resolves a competition by area name and competition name.
// Both names match case-insensitively; a missing area or competition
// returns an error wrapping ErrNotFound.
func (c *Client) FindCompetition(ctx context.Context, country, name string) (models.Competition, error) {
	areas, err := c.FetchAreas(ctx)
	if err != nil {
		return models.Competition{}, err
	}

	area, ok := areas.FindArea(country)
	if !ok {
		return models.Competition{}, fmt.Errorf("area %q: %w", country, ErrNotFound)
	}

	comps, err := c.FetchCompetitions(ctx, area.ID)
	if err != nil {
		return models.Competition{}, err
	}

	comp, ok := comps.FindCompetition(name)
	if !ok {
		return models.Competition{}, fmt.Errorf("competition %q in %s: %w", name, country, ErrNotFound)
	}

	log.Debug().
		Str("country", country).
		Str("competition", name).
		Int("competition_id", comp.ID).
		Msg("Competition resolved")

	return comp, nil
}

// FetchMatches fetches a competition's matches between from and to
// (inclusive dates) with the given comma-separated status filter
func (c *Client) FetchMatches(ctx context.Context, competitionID int, from, to time.Time, statuses string) ([]engine.Match, error) {
	path := fmt.Sprintf("competitions/%d/matches", competitionID)
	params := map[string]string{
		"dateFrom": from.Format(dateLayout),
		"dateTo":   to.Format(dateLayout),
	}
	if statuses != "" {
		params["status"] = statuses
	}

	body, err := c.get(ctx, "matches", path, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	var resp models.MatchesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
	}

	return resp.ToMatches(), nil
}

// FetchFinishedMatches fetches finished matches between from and to
func (c *Client) FetchFinishedMatches(ctx context.Context, competitionID int, from, to time.Time) ([]engine.Match, error) {
	return c.FetchMatches(ctx, competitionID, from, to, FinishedStatuses)
}

// FetchUpcomingMatches fetches scheduled and in-progress matches between from and to
func (c *Client) FetchUpcomingMatches(ctx context.Context, competitionID int, from, to time.Time) ([]engine.Match, error) {
	return c.FetchMatches(ctx, competitionID, from, to, UpcomingStatuses)
}

// FetchCompetitionTeams fetches the teams of a competition's current season
func (c *Client) FetchCompetitionTeams(ctx context.Context, competitionID int) ([]models.Team, error) {
	path := fmt.Sprintf("competitions/%d/teams", competitionID)
	body, err := c.get(ctx, "teams", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}

	var resp models.TeamsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal teams: %w", err)
	}

	return resp.Teams, nil
}
