package apisports

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
	"github.com/gridironhq/gridiron-feed/internal/platform/resilience"
	"github.com/gridironhq/gridiron-feed/internal/usecase"
)

const defaultBaseURL = "https://v1.american-football.api-sports.io"

const apiKeyHeader = "x-apisports-key"

var apiKeyParamRegex = regexp.MustCompile(`(?i)(x-apisports-key|apikey|api_key)=[^&\s"']+`)
var errProviderTransient = crerr.New("apisports transient failure")

// RawObject is one undecoded entry from the provider's response array. The
// normalization layer is responsible for making sense of its shape.
type RawObject = map[string]any

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches raw payloads from the API-Sports american-football API.
// It owns authentication, retries and the circuit breaker; it never
// interprets payload contents beyond unwrapping the response envelope.
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
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// envelope is the fixed wrapper every provider endpoint uses. Errors is
// decoded loosely because the provider emits either an empty array or an
// object keyed by error kind.
type envelope struct {
	Get      string      `json:"get"`
	Errors   any         `json:"errors"`
	Results  int         `json:"results"`
	Response []RawObject `json:"response"`
}

func (c *Client) Games(ctx context.Context, params usecase.GamesFilter) ([]RawObject, error) {
	query := url.Values{}
	if params.GameID > 0 {
		query.Set("id", fmt.Sprintf("%d", params.GameID))
	}
	if params.League > 0 {
		query.Set("league", fmt.Sprintf("%d", params.League))
	}
	if params.Season > 0 {
		query.Set("season", fmt.Sprintf("%d", params.Season))
	}
	if params.Date != "" {
		query.Set("date", params.Date)
	}
	if params.TeamID > 0 {
		query.Set("team", fmt.Sprintf("%d", params.TeamID))
	}
	return c.fetch(ctx, "/games", query)
}

func (c *Client) Standings(ctx context.Context, league int64, season int) ([]RawObject, error) {
	if league <= 0 {
		return nil, fmt.Errorf("league id must be greater than zero")
	}
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}

	query := url.Values{}
	query.Set("league", fmt.Sprintf("%d", league))
	query.Set("season", fmt.Sprintf("%d", season))
	return c.fetch(ctx, "/standings", query)
}

func (c *Client) Teams(ctx context.Context, league int64, season int) ([]RawObject, error) {
	if league <= 0 {
		return nil, fmt.Errorf("league id must be greater than zero")
	}
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}

	query := url.Values{}
	query.Set("league", fmt.Sprintf("%d", league))
	query.Set("season", fmt.Sprintf("%d", season))
	return c.fetch(ctx, "/teams", query)
}

func (c *Client) Players(ctx context.Context, teamID int64, season int) ([]RawObject, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("team id must be greater than zero")
	}
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}

	query := url.Values{}
	query.Set("team", fmt.Sprintf("%d", teamID))
	query.Set("season", fmt.Sprintf("%d", season))
	return c.fetch(ctx, "/players", query)
}

func (c *Client) PlayerStatistics(ctx context.Context, playerID int64, season int) ([]RawObject, error) {
	if playerID <= 0 {
		return nil, fmt.Errorf("player id must be greater than zero")
	}

	query := url.Values{}
	query.Set("id", fmt.Sprintf("%d", playerID))
	if season > 0 {
		query.Set("season", fmt.Sprintf("%d", season))
	}
	return c.fetch(ctx, "/players/statistics", query)
}

func (c *Client) TeamStatistics(ctx context.Context, league int64, teamID int64, season int) ([]RawObject, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("team id must be greater than zero")
	}

	query := url.Values{}
	query.Set("team", fmt.Sprintf("%d", teamID))
	if league > 0 {
		query.Set("league", fmt.Sprintf("%d", league))
	}
	if season > 0 {
		query.Set("season", fmt.Sprintf("%d", season))
	}
	return c.fetch(ctx, "/teams/statistics", query)
}

func (c *Client) Odds(ctx context.Context, gameID int64) ([]RawObject, error) {
	if gameID <= 0 {
		return nil, fmt.Errorf("game id must be greater than zero")
	}

	query := url.Values{}
	query.Set("game", fmt.Sprintf("%d", gameID))
	return c.fetch(ctx, "/odds", query)
}

func (c *Client) Injuries(ctx context.Context, teamID int64) ([]RawObject, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("team id must be greater than zero")
	}

	query := url.Values{}
	query.Set("team", fmt.Sprintf("%d", teamID))
	return c.fetch(ctx, "/injuries", query)
}

func (c *Client) Leagues(ctx context.Context) ([]RawObject, error) {
	return c.fetch(ctx, "/leagues", nil)
}

func (c *Client) Seasons(ctx context.Context) ([]RawObject, error) {
	return c.fetch(ctx, "/seasons", nil)
}

func (c *Client) Countries(ctx context.Context) ([]RawObject, error) {
	return c.fetch(ctx, "/countries", nil)
}

func (c *Client) Timezones(ctx context.Context) ([]RawObject, error) {
	return c.fetch(ctx, "/timezone", nil)
}

func (c *Client) GameEvents(ctx context.Context, gameID int64) ([]RawObject, error) {
	if gameID <= 0 {
		return nil, fmt.Errorf("game id must be greater than zero")
	}

	query := url.Values{}
	query.Set("id", fmt.Sprintf("%d", gameID))
	return c.fetch(ctx, "/games/events", query)
}

func (c *Client) GamePlayers(ctx context.Context, gameID int64) ([]RawObject, error) {
	if gameID <= 0 {
		return nil, fmt.Errorf("game id must be greater than zero")
	}

	query := url.Values{}
	query.Set("id", fmt.Sprintf("%d", gameID))
	return c.fetch(ctx, "/games/statistics/players", query)
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]RawObject, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "apisports circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return nil, fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if query != nil {
		if encoded := query.Encode(); encoded != "" {
			fullURL += "?" + encoded
		}
	}

	key := path + "?" + query.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errProviderTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	if msg := envelopeErrorText(env.Errors); msg != "" {
		return nil, fmt.Errorf("provider rejected request path=%s: %s", path, c.redact(msg))
	}

	return env.Response, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errProviderTransient, c.redact(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errProviderTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: provider status=%d body=%s", errProviderTransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
				}
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
	c.logger.WarnContext(ctx, "apisports request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) redact(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if c.apiKey != "" {
		value = strings.ReplaceAll(value, c.apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "$1=REDACTED")
}

// envelopeErrorText flattens the provider's errors field, which is an empty
// array on success and an object keyed by error kind on failure.
func envelopeErrorText(raw any) string {
	switch typed := raw.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			if text, ok := item.(string); ok && strings.TrimSpace(text) != "" {
				parts = append(parts, strings.TrimSpace(text))
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		parts := make([]string, 0, len(typed))
		for key, item := range typed {
			text, ok := item.(string)
			if !ok || strings.TrimSpace(text) == "" {
				continue
			}
			parts = append(parts, key+": "+strings.TrimSpace(text))
		}
		return strings.Join(parts, "; ")
	case string:
		return strings.TrimSpace(typed)
	default:
		return ""
	}
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
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}
