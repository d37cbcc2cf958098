// Package entitysport is the regional lineup adapter. It is the last resort
// for Playing-XI resolution: its lineups arrive earliest but often hold the
// whole squad rather than a confirmed eleven, so callers must treat any side
// with more than eleven names as unconfirmed.
package entitysport

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
	"github.com/pitchside/fantasy-cricket/internal/domain/reconcile"
	"github.com/pitchside/fantasy-cricket/internal/platform/keyring"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"github.com/pitchside/fantasy-cricket/internal/platform/resilience"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

const ProviderName = "entitysport"

const defaultBaseURL = "https://rest.entitysport.com/v2"

var tokenParamRegex = regexp.MustCompile(`token=[^&\s"']+`)
var errTransient = crerr.New("entitysport transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Keys           *keyring.Router
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	keys           *keyring.Router
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
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		keys:           cfg.Keys,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

func (c *Client) Name() string { return ProviderName }

// FetchLineup pulls the day's squad feed and picks the item whose two sides
// match the requested team pair. Sides with a playing11 flag are narrowed to
// the flagged names; unflagged sides come back whole so the caller can apply
// its own squad-size guard.
func (c *Client) FetchLineup(ctx context.Context, teamA, teamB string, date time.Time) (usecase.Lineup, error) {
	query := map[string]string{
		"date":     date.UTC().Format("2006-01-02"),
		"per_page": "50",
	}
	var out lineupEnvelope
	if err := c.doJSON(ctx, "/matches/squads", query, &out); err != nil {
		return usecase.Lineup{}, err
	}

	for _, item := range out.Response.Items {
		if !pairMatches(item, teamA, teamB) {
			continue
		}
		lineup := usecase.Lineup{}
		for _, side := range []teamSide{item.TeamA, item.TeamB} {
			lineup.Sides = append(lineup.Sides, narrowSide(side))
		}
		return lineup, nil
	}
	// No item for this pair means the feed has nothing yet.
	return usecase.Lineup{}, nil
}

func pairMatches(item lineupItem, teamA, teamB string) bool {
	a, b := item.TeamA.Name, item.TeamB.Name
	return (reconcile.Names(a, teamA) && reconcile.Names(b, teamB)) ||
		(reconcile.Names(a, teamB) && reconcile.Names(b, teamA))
}

func narrowSide(side teamSide) usecase.LineupSide {
	out := usecase.LineupSide{TeamName: strings.TrimSpace(side.Name)}

	flagged := make([]usecase.LineupEntry, 0, 11)
	all := make([]usecase.LineupEntry, 0, len(side.Squads))
	for _, entry := range side.Squads {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		row := usecase.LineupEntry{PlayerName: name, ProviderPlayerID: entry.PlayerID}
		all = append(all, row)
		if strings.EqualFold(strings.TrimSpace(entry.Playing), "true") {
			flagged = append(flagged, row)
		}
	}
	if len(flagged) > 0 {
		out.Players = flagged
		return out
	}
	out.Players = all
	return out
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "entitysport circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: circuit open", usecase.ErrProviderUnavailable)
		}
	}

	credential, ok := c.keys.Select(ProviderName)
	if !ok {
		c.logger.WarnContext(ctx, "entitysport has no eligible credential this cycle")
		return fmt.Errorf("%w: all credential tiers exhausted", usecase.ErrProviderUnavailable)
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("token", credential.Key)
	fullURL := c.baseURL + path + "?" + values.Encode()

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL, credential.Key)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrProviderUnavailable, err)
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("%w: unexpected payload type %T", usecase.ErrProviderUnavailable, out)
	}

	var probe struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("%w: decode envelope: %v", usecase.ErrProviderUnavailable, err)
	}
	if !strings.EqualFold(probe.Status, "ok") {
		if keyring.IsQuotaReason(probe.Message) {
			c.keys.MarkExhausted(ProviderName, credential.Key)
			c.logger.WarnContext(ctx, "entitysport credential tier exhausted",
				"priority", credential.Priority,
				"reason", probe.Message,
			)
			return fmt.Errorf("%w: %s", usecase.ErrQuotaExhausted, probe.Message)
		}
		c.logger.DebugContext(ctx, "entitysport returned no data", "path", path, "reason", probe.Message)
		return nil
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode payload: %v", usecase.ErrProviderUnavailable, err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL, secret string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, redactSecret(err.Error(), secret))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				lastErr = fmt.Errorf("%w: provider status=%d", errTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
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
	c.logger.WarnContext(ctx, "entitysport request failed", "url", tokenParamRegex.ReplaceAllString(fullURL, "token=REDACTED"), "error", lastErr)
	return nil, lastErr
}

func redactSecret(value, secret string) string {
	if secret != "" {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	return tokenParamRegex.ReplaceAllString(value, "token=REDACTED")
}
