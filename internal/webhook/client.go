// Package webhook talks to the challenge service: it fetches the challenge
// envelope and delivers the computed result back to the issued webhook.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SunilKividor/bfhl-webhook-client/internal/metrics"
)

// RequestIDHeader carries the run id on every outbound request.
const RequestIDHeader = "X-Request-ID"

// Client performs the two outbound calls of a run.
type Client struct {
	httpClient     *http.Client
	log            *logrus.Logger
	metrics        *metrics.Recorder
	sleeper        Sleeper
	runID          string
	maxAttempts    int
	retryDelay     time.Duration
	attemptTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithSleeper replaces the clock used between submission attempts.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) { c.sleeper = s }
}

// WithRetry sets the total number of submission attempts and the fixed
// delay before each retry.
func WithRetry(maxAttempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = maxAttempts
		c.retryDelay = delay
	}
}

// WithAttemptTimeout bounds each individual submission attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Client) { c.attemptTimeout = d }
}

// WithRunID sets the value sent in the X-Request-ID header.
func WithRunID(id string) Option {
	return func(c *Client) { c.runID = id }
}

// WithMetrics records submission attempts on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// New creates a Client. Without options it makes four submission attempts
// one second apart.
func New(log *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		log:         log,
		sleeper:     timerSleeper{},
		maxAttempts: 4,
		retryDelay:  time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// post sends body as JSON and returns the status code and response body.
// A non-nil error means no usable response arrived.
func (c *Client) post(ctx context.Context, url string, body []byte, header http.Header) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.runID != "" {
		req.Header.Set(RequestIDHeader, c.runID)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return data, nil
}
