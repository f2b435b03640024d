package tba

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BrennanB/TBAscripts/internal/domain/event"
	"github.com/BrennanB/TBAscripts/internal/domain/team"
	"github.com/BrennanB/TBAscripts/internal/platform/logging"
	"github.com/BrennanB/TBAscripts/internal/platform/resilience"
	"github.com/BrennanB/TBAscripts/internal/usecase"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL   = "https://www.thebluealliance.com/api/v3"
	authHeader       = "X-TBA-Auth-Key"
	maxResponseBytes = 16 << 20
	// maxRosterPages bounds /teams/{year}/{page}/keys paging; 500 keys per page.
	maxRosterPages = 100
)

var errTBATransient = crerr.New("tba transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	AuthKey    string
	Timeout    time.Duration
	// MaxRetries counts transport-level retries after the first attempt.
	MaxRetries int
	// RetryBase is the first transport backoff; it doubles per retry.
	RetryBase      time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads teams, events and event sub-resources from The Blue Alliance API v3.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authKey    string
	maxRetries int
	retryBase  time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

var (
	_ event.Reader = (*Client)(nil)
	_ team.Reader  = (*Client)(nil)
)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Component("tba_client")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	retryBase := cfg.RetryBase
	if retryBase <= 0 {
		retryBase = 500 * time.Millisecond
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnTransition(func(from, to resilience.CircuitState) {
		logger.Warn("tba circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		authKey:    strings.TrimSpace(cfg.AuthKey),
		maxRetries: max(cfg.MaxRetries, 0),
		retryBase:  retryBase,
		logger:     logger,
		breaker:    breaker,
	}
}

func (c *Client) Team(ctx context.Context, teamKey string) (team.Team, error) {
	var payload teamPayload
	if err := c.doJSON(ctx, "/team/"+url.PathEscape(teamKey), &payload); err != nil {
		return team.Team{}, fmt.Errorf("fetch team %s: %w", teamKey, err)
	}
	out := payload.toDomain()
	if out.Key == "" {
		out.Key = teamKey
	}
	if err := out.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("fetch team %s: %w", teamKey, err)
	}
	return out, nil
}

func (c *Client) TeamEvents(ctx context.Context, teamKey string, year int) ([]event.Event, error) {
	path := fmt.Sprintf("/team/%s/events/%d", url.PathEscape(teamKey), year)
	var payload []eventPayload
	if err := c.doJSON(ctx, path, &payload); err != nil {
		return nil, fmt.Errorf("fetch events team=%s year=%d: %w", teamKey, year, err)
	}

	out := make([]event.Event, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) EventDistrictPoints(ctx context.Context, eventKey string) (map[string]event.DistrictPoints, error) {
	var payload *districtPointsEnvelope
	if err := c.doJSON(ctx, "/event/"+url.PathEscape(eventKey)+"/district_points", &payload); err != nil {
		return nil, fmt.Errorf("fetch district points event=%s: %w", eventKey, err)
	}

	out := make(map[string]event.DistrictPoints)
	if payload == nil {
		return out, nil
	}
	for teamKey, p := range payload.Points {
		out[teamKey] = event.DistrictPoints{AlliancePoints: p.AlliancePoints, QualPoints: p.QualPoints}
	}
	return out, nil
}

func (c *Client) EventMatches(ctx context.Context, eventKey string) ([]event.Match, error) {
	var payload []matchPayload
	if err := c.doJSON(ctx, "/event/"+url.PathEscape(eventKey)+"/matches", &payload); err != nil {
		return nil, fmt.Errorf("fetch matches event=%s: %w", eventKey, err)
	}

	out := make([]event.Match, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) EventAwards(ctx context.Context, eventKey string) ([]event.Award, error) {
	var payload []awardPayload
	if err := c.doJSON(ctx, "/event/"+url.PathEscape(eventKey)+"/awards", &payload); err != nil {
		return nil, fmt.Errorf("fetch awards event=%s: %w", eventKey, err)
	}

	out := make([]event.Award, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) EventAlliances(ctx context.Context, eventKey string) ([]event.Alliance, error) {
	var payload []alliancePayload
	if err := c.doJSON(ctx, "/event/"+url.PathEscape(eventKey)+"/alliances", &payload); err != nil {
		return nil, fmt.Errorf("fetch alliances event=%s: %w", eventKey, err)
	}

	out := make([]event.Alliance, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// ActiveTeamKeys pages through every team key registered for year, sorted.
func (c *Client) ActiveTeamKeys(ctx context.Context, year int) ([]string, error) {
	keys := make([]string, 0, 4096)
	for page := 0; page < maxRosterPages; page++ {
		var payload []string
		path := fmt.Sprintf("/teams/%d/%d/keys", year, page)
		if err := c.doJSON(ctx, path, &payload); err != nil {
			return nil, fmt.Errorf("fetch team keys year=%d page=%d: %w", year, page, err)
		}
		if len(payload) == 0 {
			break
		}
		keys = append(keys, payload...)
	}
	sort.Strings(keys)
	return keys, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "tba circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return fmt.Errorf("%w: statistics provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	raw, err := c.executeRequest(ctx, c.baseURL+path)
	if err != nil {
		if crerr.Is(err, errTBATransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return err
	}
	c.breaker.RecordSuccess()

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload path=%s: %w", path, err)
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
		req.Header.Set(authHeader, c.authKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = crerr.Wrapf(errTBATransient, "send request: %s", sanitizeSensitiveText(err.Error(), c.authKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errTBATransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, crerr.Wrapf(usecase.ErrNotFound, "provider status=%d url=%s", resp.StatusCode, fullURL)
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errTBATransient, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.retryBase << attempt)
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
	c.logger.WarnContext(ctx, "tba request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

// IsTransient reports whether err came from rate limiting, a 5xx, or a
// network failure that exhausted transport retries.
func IsTransient(err error) bool {
	return crerr.Is(err, errTBATransient)
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func sanitizeSensitiveText(value, secret string) string {
	value = strings.TrimSpace(value)
	if value == "" || secret == "" {
		return value
	}
	return strings.ReplaceAll(value, secret, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..." + " (" + strconv.Itoa(len(text)) + " bytes)"
}
