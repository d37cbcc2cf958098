// Package cricketdata is the adapter for the primary cricket API. It has the
// richest scorecards, so it is the preferred source for points and for
// deriving the Playing XI from appearance.
package cricketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/scorecard"
	"github.com/pitchside/fantasy-cricket/internal/platform/keyring"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"github.com/pitchside/fantasy-cricket/internal/platform/resilience"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

const ProviderName = "cricketdata"

const defaultBaseURL = "https://api.cricapi.com/v1"

var apiKeyParamRegex = regexp.MustCompile(`apikey=[^&\s"']+`)
var errTransient = crerr.New("cricketdata transient failure")

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

func (c *Client) ListMatches(ctx context.Context, from, to time.Time) ([]usecase.ProviderMatch, error) {
	var out matchListEnvelope
	if err := c.doJSON(ctx, "/matches", nil, &out); err != nil {
		return nil, err
	}

	items := make([]usecase.ProviderMatch, 0, len(out.Data))
	for _, item := range out.Data {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		startAt := parseGMT(item.DateTime)
		if !startAt.IsZero() && (startAt.Before(from) || startAt.After(to)) {
			continue
		}
		row := usecase.ProviderMatch{
			Key:        item.ID,
			SeriesKey:  item.SeriesID,
			Name:       strings.TrimSpace(item.Name),
			Venue:      strings.TrimSpace(item.Venue),
			StartAt:    startAt,
			StatusNote: strings.TrimSpace(item.Status),
		}
		row.Status = mapStatus(item.Status)
		if len(item.Teams) > 0 {
			row.TeamA = strings.TrimSpace(item.Teams[0])
		}
		if len(item.Teams) > 1 {
			row.TeamB = strings.TrimSpace(item.Teams[1])
		}
		for i, info := range item.TeamInfo {
			short := strings.TrimSpace(info.ShortName)
			if i == 0 {
				row.TeamAShort = short
			} else if i == 1 {
				row.TeamBShort = short
			}
		}
		items = append(items, row)
	}
	return items, nil
}

func (c *Client) FetchMatchStatus(ctx context.Context, matchKey string) (usecase.MatchStatus, error) {
	var out matchInfoEnvelope
	query := map[string]string{"id": matchKey}
	if err := c.doJSON(ctx, "/match_info", query, &out); err != nil {
		return usecase.MatchStatus{}, err
	}

	status := mapStatus(out.Data.Status)
	if out.Data.MatchEnded {
		status = match.StatusCompleted
	} else if out.Data.MatchStart && status == match.StatusUpcoming {
		status = match.StatusLive
	}
	return usecase.MatchStatus{
		Status: status,
		Note:   strings.TrimSpace(out.Data.Status),
	}, nil
}

func (c *Client) FetchScorecard(ctx context.Context, matchKey string) (scorecard.Snapshot, error) {
	var out scorecardEnvelope
	query := map[string]string{"id": matchKey}
	if err := c.doJSON(ctx, "/match_scorecard", query, &out); err != nil {
		return scorecard.Snapshot{}, err
	}

	snapshot := scorecard.Snapshot{
		MatchKey: matchKey,
		Innings:  make([]scorecard.Innings, 0, len(out.Data.Scorecard)),
	}
	for _, block := range out.Data.Scorecard {
		innings := scorecard.Innings{Label: strings.TrimSpace(block.Inning)}
		for _, row := range block.Batting {
			name := strings.TrimSpace(row.Batsman.Name)
			if name == "" {
				continue
			}
			dismissalText := strings.TrimSpace(row.DismissalText)
			innings.Batting = append(innings.Batting, scorecard.BattingRow{
				PlayerName: name,
				PlayerKey:  strings.TrimSpace(row.Batsman.ID),
				Runs:       asInt(row.Runs),
				Balls:      asInt(row.Balls),
				Fours:      asInt(row.Fours),
				Sixes:      asInt(row.Sixes),
				StrikeRate: asFloat(row.StrikeRate),
				Dismissal:  dismissalText,
				Out:        isOutMarker(row.Dismissal, dismissalText),
			})
		}
		for _, row := range block.Bowling {
			name := strings.TrimSpace(row.Bowler.Name)
			if name == "" {
				continue
			}
			innings.Bowling = append(innings.Bowling, scorecard.BowlingRow{
				PlayerName: name,
				PlayerKey:  strings.TrimSpace(row.Bowler.ID),
				Overs:      asFloat(row.Overs),
				Maidens:    asInt(row.Maidens),
				Runs:       asInt(row.Runs),
				Wickets:    asInt(row.Wickets),
				Economy:    asFloat(row.Economy),
			})
		}
		for _, row := range block.Catching {
			name := strings.TrimSpace(row.Catcher.Name)
			if name == "" {
				continue
			}
			// The catching section repeats what dismissal texts already say,
			// so it is only kept as a hint; scoring derives fielding credits
			// from dismissals to avoid double counting.
			if strings.EqualFold(strings.TrimSpace(row.Effort), "stumping") {
				innings.Fielding = append(innings.Fielding, scorecard.FieldingEvent{
					Kind:       scorecard.FieldingStumping,
					PlayerName: name,
				})
				continue
			}
			innings.Fielding = append(innings.Fielding, scorecard.FieldingEvent{
				Kind:       scorecard.FieldingCatch,
				PlayerName: name,
			})
		}
		snapshot.Innings = append(snapshot.Innings, innings)
	}
	return snapshot, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "cricketdata circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: circuit open", usecase.ErrProviderUnavailable)
		}
	}

	credential, ok := c.keys.Select(ProviderName)
	if !ok {
		c.logger.WarnContext(ctx, "cricketdata has no eligible credential this cycle")
		return fmt.Errorf("%w: all credential tiers exhausted", usecase.ErrProviderUnavailable)
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("apikey", credential.Key)
	fullURL := c.baseURL + path + "?" + values.Encode()

	flightKey := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(flightKey, func() (any, error) {
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

	var probe envelope
	if err := sonic.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("%w: decode envelope: %v", usecase.ErrProviderUnavailable, err)
	}
	if !strings.EqualFold(probe.Status, "success") {
		if keyring.IsQuotaReason(probe.Reason) {
			c.keys.MarkExhausted(ProviderName, credential.Key)
			c.logger.WarnContext(ctx, "cricketdata credential tier exhausted",
				"priority", credential.Priority,
				"reason", probe.Reason,
			)
			return fmt.Errorf("%w: %s", usecase.ErrQuotaExhausted, probe.Reason)
		}
		// Non-quota failure statuses mean the provider has nothing for this
		// query yet; callers treat the zero value as an empty result.
		c.logger.DebugContext(ctx, "cricketdata returned no data", "path", path, "reason", probe.Reason)
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
			case isRetryableStatus(resp.StatusCode):
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
	c.logger.WarnContext(ctx, "cricketdata request failed", "url", apiKeyParamRegex.ReplaceAllString(fullURL, "apikey=REDACTED"), "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= 500
}

func redactSecret(value, secret string) string {
	if secret != "" {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apikey=REDACTED")
}

func mapStatus(raw string) match.Status {
	text := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(text, "won by"),
		strings.Contains(text, "match tied"),
		strings.Contains(text, "abandon"),
		strings.Contains(text, "no result"),
		strings.Contains(text, "drawn"):
		return match.StatusCompleted
	case strings.Contains(text, "delay"),
		strings.Contains(text, "rain"),
		strings.Contains(text, "wet outfield"):
		return match.StatusDelayed
	case strings.Contains(text, "live"),
		strings.Contains(text, "innings break"),
		strings.Contains(text, "opt to"),
		strings.Contains(text, "elected to"),
		strings.Contains(text, "need"),
		strings.Contains(text, "require"):
		return match.StatusLive
	default:
		return match.StatusUpcoming
	}
}

func isOutMarker(marker, dismissalText string) bool {
	if strings.EqualFold(strings.TrimSpace(marker), "out") {
		return true
	}
	parsed := scorecard.ParseDismissal(dismissalText)
	return parsed.Kind != scorecard.DismissalNotOut && dismissalText != ""
}

func parseGMT(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func asInt(value any) int {
	switch typed := value.(type) {
	case nil:
		return 0
	case float64:
		return int(typed)
	case int:
		return typed
	case int64:
		return int(typed)
	case string:
		v, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

func asFloat(value any) float64 {
	switch typed := value.(type) {
	case nil:
		return 0
	case float64:
		return typed
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}
