package sportsdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/openfooty/league-browser/internal/domain/league"
	"github.com/openfooty/league-browser/internal/domain/team"
	"github.com/openfooty/league-browser/internal/platform/logging"
	"github.com/openfooty/league-browser/internal/platform/resilience"
	"github.com/openfooty/league-browser/internal/usecase"
)

const (
	defaultBaseURL = "https://thesportsdb.com/api/v1/json"
	defaultAPIKey  = "2"

	pathAllLeagues  = "all_leagues.php"
	pathSearchTeams = "search_all_teams.php"

	maxJSONBodyBytes  = 6 << 20
	maxImageBodyBytes = 10 << 20
)

var errSportsDBTransient = crerr.New("thesportsdb transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to TheSportsDB. Catalog and roster GETs are deduplicated
// through singleflight and guarded by a circuit breaker; image downloads
// are plain single-attempt GETs.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = defaultAPIKey
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         apiKey,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchLeagues downloads the full league catalog. Entries without an ID
// are dropped; sport filtering is the caller's concern.
func (c *Client) FetchLeagues(ctx context.Context) ([]league.League, error) {
	var envelope leaguesEnvelope
	if err := c.doJSON(ctx, pathAllLeagues, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch leagues: %w", err)
	}

	out := make([]league.League, 0, len(envelope.Leagues))
	for _, item := range envelope.Leagues {
		mapped := mapLeaguePayload(item)
		if mapped.ID == "" {
			continue
		}
		out = append(out, mapped)
	}
	return out, nil
}

// FetchRoster downloads all teams of a league, queried by its primary
// name. A league without one cannot be queried and fails fast.
func (c *Client) FetchRoster(ctx context.Context, l league.League) ([]team.Team, error) {
	name := strings.TrimSpace(l.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: league=%s", usecase.ErrInvalidRosterQuery, l.ID)
	}

	query := map[string]string{"l": name}
	var envelope teamsEnvelope
	if err := c.doJSON(ctx, pathSearchTeams, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch roster league=%s: %w", l.ID, err)
	}

	out := make([]team.Team, 0, len(envelope.Teams))
	for _, item := range envelope.Teams {
		mapped := mapTeamPayload(item)
		if mapped.ID == "" {
			continue
		}
		if mapped.LeagueID == "" {
			mapped.LeagueID = l.ID
		}
		out = append(out, mapped)
	}
	return out, nil
}

// FetchImage downloads raw image bytes from an absolute URL. One attempt,
// no breaker: image failures are recovered locally by the caller.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, fmt.Errorf("%w: image url is empty", usecase.ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send image request: %v", usecase.ErrImageFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: image status=%d url=%s", usecase.ErrImageFetch, resp.StatusCode, imageURL)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := io.Copy(buf, io.LimitReader(resp.Body, maxImageBodyBytes)); err != nil {
		return nil, fmt.Errorf("%w: read image body: %v", usecase.ErrImageFetch, err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "thesportsdb circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + "/" + c.apiKey + "/" + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errSportsDBTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errSportsDBTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxJSONBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errSportsDBTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errSportsDBTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "thesportsdb request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
