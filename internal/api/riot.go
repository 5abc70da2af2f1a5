package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"summoner-tracker/internal/config"
	"summoner-tracker/internal/constants"
	"summoner-tracker/internal/metrics"
	"summoner-tracker/internal/ratelimit"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type RiotClient struct {
	apiKey     string
	baseURL    string
	client     *fasthttp.Client
	limiter    ratelimit.Limiter
	metrics    *metrics.Service
	logger     zerolog.Logger
	retryUnit  time.Duration
	maxRetries int

	// sleep waits out a Retry-After; swapped in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// UpstreamError is a non-2xx answer from the Riot API, including a 429 that
// is still rate limited after the retry budget is spent.
type UpstreamError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: %d on %s", e.StatusCode, e.Endpoint)
}

func NewRiotClient(cfg *config.Config, limiter ratelimit.Limiter, m *metrics.Service, logger zerolog.Logger) *RiotClient {
	return &RiotClient{
		apiKey:  cfg.RiotAPIKey,
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter:    limiter,
		metrics:    m,
		logger:     logger.With().Str("component", "riot_client").Logger(),
		retryUnit:  cfg.RetryUnit,
		maxRetries: cfg.MaxRetries,
		sleep:      sleepContext,
	}
}

// Fetch performs a GET on {base}/lol/<endpoint> for the given region and
// decodes the JSON body into out. Every physical request, retries included,
// waits on the shared limiter first.
func (c *RiotClient) Fetch(ctx context.Context, region, endpoint string, params url.Values, out any) error {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.apiKey)

	host := strings.ReplaceAll(c.baseURL, "{region}", region)
	uri := fmt.Sprintf("%s/lol/%s?%s", host, endpoint, query.Encode())
	class := endpointClass(endpoint)

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for rate limiter: %w", err)
		}

		retryAfter, err := doRequest(ctx, c, uri, class, out)
		if err == nil {
			return nil
		}

		if retryAfter == 0 || attempt >= c.maxRetries {
			return err
		}

		delay := time.Duration(retryAfter) * c.retryUnit
		c.metrics.IncRateLimitRetry(class)
		c.logger.Warn().
			Str("endpoint", class).
			Int("attempt", attempt+1).
			Dur("retry_after", delay).
			Msg("rate limited by upstream, retrying")

		if err := c.sleep(ctx, delay); err != nil {
			return fmt.Errorf("failed to wait for retry-after: %w", err)
		}
	}
}

// doRequest runs one GET. On a 429 it returns the Retry-After value (in
// units) alongside the UpstreamError; zero otherwise.
func doRequest(ctx context.Context, c *RiotClient, uri, class string, out any) (int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return 0, fmt.Errorf("failed to request %s: %w", class, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, constants.ExternalAPITimeout); err != nil {
			return 0, fmt.Errorf("failed to request %s: %w", class, err)
		}
	}

	status := resp.StatusCode()
	c.metrics.ObserveUpstreamRequest(class, status)

	if status == fasthttp.StatusTooManyRequests {
		return parseRetryAfter(resp.Header.Peek("Retry-After")), &UpstreamError{
			StatusCode: status,
			Endpoint:   class,
			Body:       string(resp.Body()),
		}
	}
	if status < 200 || status >= 300 {
		return 0, &UpstreamError{
			StatusCode: status,
			Endpoint:   class,
			Body:       string(resp.Body()),
		}
	}

	if out == nil {
		return 0, nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return 0, fmt.Errorf("failed to decode %s response: %w", class, err)
	}
	return 0, nil
}

func parseRetryAfter(v []byte) int {
	n, err := strconv.Atoi(strings.TrimSpace(string(v)))
	if err != nil || n <= 0 {
		return constants.DefaultRetryAfter
	}
	return n
}

// endpointClass strips identifiers from an endpoint path so it can be used
// as a metric label: "match/v5/matches/EUW1_1" becomes "match/v5/matches".
func endpointClass(endpoint string) string {
	parts := strings.Split(strings.Trim(endpoint, "/"), "/")
	if len(parts) > 3 {
		class := strings.Join(parts[:3], "/")
		if parts[len(parts)-1] == "ids" {
			class += "/ids"
		}
		return class
	}
	return strings.Join(parts, "/")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
