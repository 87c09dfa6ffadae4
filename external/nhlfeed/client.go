// Package nhlfeed talks to the NHL results provider. The engine only needs
// two reads per week: resolved game winners and per-date skater stat lines.
package nhlfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/stats"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/platform/logging"
	"github.com/puckpicks/puckpicks/internal/platform/resilience"
	"github.com/puckpicks/puckpicks/internal/usecase"
)

const (
	defaultBaseURL     = "https://feed.nhl-results.example.com"
	statsChunkSize     = 50
	maxResponseBytes   = 4 << 20
	defaultHTTPTimeout = 15 * time.Second
)

var errFeedTransient = crerr.New("nhl feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	MaxParallel    int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	maxParallel    int
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
		httpClient.Timeout = defaultHTTPTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxParallel := cfg.MaxParallel
	if maxParallel <= 0 {
		maxParallel = 4
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     max(cfg.MaxRetries, 0),
		maxParallel:    maxParallel,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type resultsEnvelope struct {
	Games []struct {
		ID     string `json:"id"`
		Winner string `json:"winner"`
	} `json:"games"`
}

type statsEnvelope struct {
	Lines []struct {
		PlayerID string `json:"player_id"`
		Date     string `json:"date"`
		Goals    int    `json:"goals"`
		Assists  int    `json:"assists"`
	} `json:"lines"`
}

// Winners fetches resolved outcomes for the week's games, one provider page
// per game date, fetched in parallel.
func (c *Client) Winners(ctx context.Context, key week.Key, games []game.Game) (map[string]game.Outcome, error) {
	dates := make(map[string]struct{}, 7)
	wanted := make(map[string]struct{}, len(games))
	for _, g := range games {
		dates[g.Date] = struct{}{}
		wanted[g.ID] = struct{}{}
	}

	sorted := make([]string, 0, len(dates))
	for date := range dates {
		sorted = append(sorted, date)
	}
	sort.Strings(sorted)

	out := make(map[string]game.Outcome, len(games))
	var mu sync.Mutex

	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(c.maxParallel)
	for _, date := range sorted {
		date := date
		p.Go(func(ctx context.Context) error {
			var envelope resultsEnvelope
			err := c.doJSON(ctx, "/v1/results", map[string]string{"date": date}, &envelope)
			if err != nil {
				return fmt.Errorf("fetch results date=%s: %w", date, err)
			}

			mu.Lock()
			defer mu.Unlock()
			for _, g := range envelope.Games {
				if _, ok := wanted[g.ID]; !ok {
					continue
				}
				outcome := game.Outcome(g.Winner)
				if _, ok := game.AllOutcomes[outcome]; !ok {
					c.logger.WarnContext(ctx, "nhl feed returned unknown outcome", "game_id", g.ID, "winner", g.Winner)
					continue
				}
				out[g.ID] = outcome
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// PlayerStats fetches the week's stat lines for the given starters, chunked
// to keep provider URLs bounded.
func (c *Client) PlayerStats(ctx context.Context, key week.Key, slots []usecase.PlayerSlot) ([]stats.StatLine, error) {
	playerIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		playerIDs = append(playerIDs, slot.PlayerID)
	}

	var out []stats.StatLine
	for start := 0; start < len(playerIDs); start += statsChunkSize {
		end := min(start+statsChunkSize, len(playerIDs))

		var envelope statsEnvelope
		query := map[string]string{
			"week":    string(key),
			"players": strings.Join(playerIDs[start:end], ","),
		}
		if err := c.doJSON(ctx, "/v1/stats", query, &envelope); err != nil {
			return nil, fmt.Errorf("fetch player stats week=%s: %w", key, err)
		}

		for _, line := range envelope.Lines {
			out = append(out, stats.StatLine{
				PlayerID: line.PlayerID,
				Date:     line.Date,
				Goals:    line.Goals,
				Assists:  line.Assists,
			})
		}
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nhl feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: results provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFeedTransient) {
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
		return fmt.Errorf("decode feed payload: %w", err)
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
		if c.token != "" {
			req.Header.Set("authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errFeedTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errFeedTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errFeedTransient, "provider status=%d", resp.StatusCode)
			default:
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
	c.logger.WarnContext(ctx, "nhl feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
