// Package roanuz is the secondary provider adapter. Its match detail carries
// confirmed starting elevens once the toss happens, which makes it the
// fallback source for Playing-XI resolution when the primary scorecard has
// no appearances yet.
package roanuz

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/platform/keyring"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"github.com/pitchside/fantasy-cricket/internal/platform/resilience"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

const ProviderName = "roanuz"

const defaultBaseURL = "https://api.sports.roanuz.com/v5/cricket"

var tokenHeaderRegex = regexp.MustCompile(`rs-token:\s*\S+`)
var errTransient = crerr.New("roanuz transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	ProjectKey     string
	Keys           *keyring.Router
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	projectKey     string
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
		projectKey:     strings.TrimSpace(cfg.ProjectKey),
		keys:           cfg.Keys,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

func (c *Client) Name() string { return ProviderName }

func (c *Client) ListMatches(ctx context.Context, from, to time.Time) ([]usecase.ProviderMatch, error) {
	var out fixturesEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/%s/fixtures/", c.projectKey), &out); err != nil {
		return nil, err
	}

	items := make([]usecase.ProviderMatch, 0, len(out.Data.Matches))
	for _, item := range out.Data.Matches {
		if strings.TrimSpace(item.Key) == "" {
			continue
		}
		startAt := time.Time{}
		if item.StartAt > 0 {
			startAt = time.Unix(item.StartAt, 0).UTC()
		}
		if !startAt.IsZero() && (startAt.Before(from) || startAt.After(to)) {
			continue
		}
		items = append(items, usecase.ProviderMatch{
			Key:        item.Key,
			SeriesKey:  item.TournamentKey,
			Name:       strings.TrimSpace(item.Name),
			TeamA:      strings.TrimSpace(item.Teams.A.Name),
			TeamAShort: strings.TrimSpace(item.Teams.A.Code),
			TeamB:      strings.TrimSpace(item.Teams.B.Name),
			TeamBShort: strings.TrimSpace(item.Teams.B.Code),
			Venue:      strings.TrimSpace(item.Venue.Name),
			StartAt:    startAt,
			Status:     mapStatus(item.Status, item.PlayStatus),
			StatusNote: strings.TrimSpace(item.PlayStatus),
		})
	}
	return items, nil
}

func (c *Client) FetchMatchStatus(ctx context.Context, matchKey string) (usecase.MatchStatus, error) {
	var out matchDetailEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/%s/match/%s/", c.projectKey, matchKey), &out); err != nil {
		return usecase.MatchStatus{}, err
	}

	status := usecase.MatchStatus{
		Status: mapStatus(out.Data.Status, out.Data.PlayStatus),
		Note:   strings.TrimSpace(out.Data.PlayStatus),
	}
	for _, side := range []squadSide{out.Data.Squad.A, out.Data.Squad.B} {
		eleven := elevenFromSquad(side)
		if len(eleven.Players) > 0 {
			status.StartingElevens = append(status.StartingElevens, eleven)
		}
	}
	return status, nil
}

// elevenFromSquad resolves the playing_xi key list against player_details.
// An empty playing_xi means the toss has not happened; the side is omitted
// rather than padded with squad members.
func elevenFromSquad(side squadSide) usecase.LineupSide {
	byKey := make(map[string]string, len(side.PlayerDetails))
	for _, entry := range side.PlayerDetails {
		byKey[entry.Key] = strings.TrimSpace(entry.Name)
	}

	out := usecase.LineupSide{TeamName: strings.TrimSpace(side.Team.Name)}
	for _, key := range side.PlayingXI {
		name := byKey[key]
		if name == "" {
			continue
		}
		out.Players = append(out.Players, usecase.LineupEntry{
			PlayerName:       name,
			ProviderPlayerID: key,
		})
	}
	return out
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "roanuz circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: circuit open", usecase.ErrProviderUnavailable)
		}
	}

	credential, ok := c.keys.Select(ProviderName)
	if !ok {
		c.logger.WarnContext(ctx, "roanuz has no eligible credential this cycle")
		return fmt.Errorf("%w: all credential tiers exhausted", usecase.ErrProviderUnavailable)
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
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
		if crerr.Is(err, errQuota) {
			c.keys.MarkExhausted(ProviderName, credential.Key)
			c.logger.WarnContext(ctx, "roanuz credential tier exhausted", "priority", credential.Priority)
			return fmt.Errorf("%w: http 402", usecase.ErrQuotaExhausted)
		}
		return fmt.Errorf("%w: %v", usecase.ErrProviderUnavailable, err)
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("%w: unexpected payload type %T", usecase.ErrProviderUnavailable, out)
	}

	// In-band API errors still come back with a 2xx. Quota messages block
	// the tier that made the call; anything else reads as unavailable.
	var probe struct {
		Error *apiError `json:"error"`
	}
	if err := sonic.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("%w: decode envelope: %v", usecase.ErrProviderUnavailable, err)
	}
	if probe.Error != nil && strings.TrimSpace(probe.Error.Message) != "" {
		if keyring.IsQuotaReason(probe.Error.Message) {
			c.keys.MarkExhausted(ProviderName, credential.Key)
			c.logger.WarnContext(ctx, "roanuz credential tier exhausted",
				"priority", credential.Priority,
				"reason", probe.Error.Message,
			)
			return fmt.Errorf("%w: %s", usecase.ErrQuotaExhausted, probe.Error.Message)
		}
		return fmt.Errorf("%w: %s", usecase.ErrProviderUnavailable, probe.Error.Message)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode payload: %v", usecase.ErrProviderUnavailable, err)
	}
	return nil
}

var errQuota = crerr.New("roanuz quota rejection")

func (c *Client) executeRequest(ctx context.Context, fullURL, token string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("rs-token", token)
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, redactToken(err.Error(), token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusPaymentRequired:
				// Roanuz signals exhausted quota with a 402.
				return nil, errQuota
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
	c.logger.WarnContext(ctx, "roanuz request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func redactToken(value, token string) string {
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return tokenHeaderRegex.ReplaceAllString(value, "rs-token: REDACTED")
}

func mapStatus(status, playStatus string) match.Status {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed":
		return match.StatusCompleted
	case "started":
		if strings.EqualFold(strings.TrimSpace(playStatus), "rain_delay") {
			return match.StatusDelayed
		}
		return match.StatusLive
	case "not_started":
		if strings.Contains(strings.ToLower(playStatus), "delay") {
			return match.StatusDelayed
		}
		return match.StatusUpcoming
	default:
		return match.StatusUpcoming
	}
}
