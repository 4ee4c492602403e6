package fetcher

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/andybalholm/brotli"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/cdfisher/osrs-tools/internal/apperr"
)

const (
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 5
	// DefaultTimeout bounds a single HTTP attempt.
	DefaultTimeout = 10 * time.Second
)

// RetryPolicy decides which failure statuses are retried and how exhaustion is reported.
type RetryPolicy struct {
	Name      string
	Retryable func(status int) bool
	Exhausted error
}

var (
	// HighscoresPolicy retries only 404, which the highscores service returns
	// transiently around its scoring-cycle boundary.
	HighscoresPolicy = RetryPolicy{
		Name:      "highscores",
		Retryable: func(status int) bool { return status == http.StatusNotFound },
		Exhausted: apperr.ErrNotFound,
	}

	// PricingPolicy retries every client or server error from the pricing API.
	PricingPolicy = RetryPolicy{
		Name:      "pricing",
		Retryable: func(status int) bool { return status >= http.StatusBadRequest },
		Exhausted: apperr.ErrUpstream,
	}
)

// Options parameterise the retrying client.
type Options struct {
	Timeout time.Duration
	// MaxRetries of zero selects DefaultMaxRetries; a negative value disables retries.
	MaxRetries int
	// RetryDelay is zero by default: retries are immediate.
	RetryDelay time.Duration
	// RateLimit is in requests per second; zero disables throttling.
	RateLimit  float64
	Burst      int
	HTTPClient *http.Client
}

// Request describes one logical fetch.
type Request struct {
	URL     string
	Header  http.Header
	Subject string
	Policy  RetryPolicy
}

// Client performs bounded-retry GETs and decodes JSON bodies.
type Client struct {
	opts    Options
	client  *http.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// New constructs a retrying client.
func New(opts Options, logger zerolog.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	switch {
	case opts.MaxRetries == 0:
		opts.MaxRetries = DefaultMaxRetries
	case opts.MaxRetries < 0:
		opts.MaxRetries = 0
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = 0
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Client{
		opts:    opts,
		client:  client,
		limiter: limiter,
		logger:  logger.With().Str("component", "fetcher").Logger(),
	}
}

// Attempts reports the total number of attempts made per request.
func (c *Client) Attempts() int {
	return c.opts.MaxRetries + 1
}

// Get fetches req.URL and decodes the JSON body into a new T.
func Get[T any](ctx context.Context, c *Client, req Request) (*T, error) {
	body, err := c.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: %s: body is not valid utf-8", apperr.ErrMalformedResponse, req.URL)
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrMalformedResponse, req.URL, err)
	}
	return &result, nil
}

func (c *Client) fetch(ctx context.Context, req Request) ([]byte, error) {
	policy := req.Policy
	if policy.Retryable == nil {
		policy = PricingPolicy
	}

	attempts := c.Attempts()
	lastStatus := 0
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 && c.opts.RetryDelay > 0 {
			if err := sleep(ctx, c.opts.RetryDelay); err != nil {
				return nil, err
			}
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		status, body, err := c.do(ctx, req)
		if err != nil {
			return nil, err
		}

		if status < http.StatusBadRequest {
			return body, nil
		}

		lastStatus = status
		if !policy.Retryable(status) {
			return nil, &apperr.StatusError{
				Kind:     apperr.ErrUpstream,
				Status:   status,
				Subject:  req.Subject,
				URL:      req.URL,
				Attempts: attempt,
			}
		}

		c.logger.Debug().
			Str("policy", policy.Name).
			Str("url", req.URL).
			Int("status", status).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("retryable status")
	}

	c.logger.Warn().
		Str("policy", policy.Name).
		Str("subject", req.Subject).
		Int("status", lastStatus).
		Int("attempts", attempts).
		Msg("retries exhausted")

	return nil, &apperr.StatusError{
		Kind:     policy.Exhausted,
		Status:   lastStatus,
		Subject:  req.Subject,
		URL:      req.URL,
		Attempts: attempts,
	}
}

func (c *Client) do(ctx context.Context, r Request) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range r.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "br, gzip")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: get %s: %w", apperr.ErrUpstream, r.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, nil
	}

	reader, err := bodyReader(resp)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s: %v", apperr.ErrMalformedResponse, r.URL, err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return 0, nil, fmt.Errorf("read body %s: %w", r.URL, err)
	}
	return resp.StatusCode, body, nil
}

func bodyReader(resp *http.Response) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		return brotli.NewReader(resp.Body), nil
	case "gzip":
		return gzip.NewReader(resp.Body)
	default:
		return resp.Body, nil
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
