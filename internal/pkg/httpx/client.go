// Package httpx holds the JSON-over-HTTP plumbing shared by outbound adapters:
// request construction, bounded error bodies and retries with exponential backoff.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultBackoff    = 200 * time.Millisecond
	maxAttempts       = 4
	maxErrorBodyBytes = 4 << 10
)

// StatusError is returned for responses with a 4xx or 5xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// Client sends requests with fixed headers and retries transient failures.
// The zero value is not usable, use NewClient.
type Client struct {
	http    *http.Client
	logger  *slog.Logger
	headers map[string]string
	backoff time.Duration
}

// NewClient fills in a client with DefaultTimeout, slog.Default and
// DefaultBackoff where the arguments are zero.
func NewClient(httpClient *http.Client, logger *slog.Logger, headers map[string]string, backoff time.Duration) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	return Client{
		http:    httpClient,
		logger:  logger,
		headers: headers,
		backoff: backoff,
	}
}

// NewRequest builds a request accepting JSON. A non-nil body is sent as JSON.
func (c Client) NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		resp.Body.Close()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// DoWithRetry retries network errors, 429 and 5xx responses with exponential
// backoff. makeReq is called for every attempt so request bodies are fresh.
func (c Client) DoWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	backoff := c.backoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !Retryable(err) || attempt == maxAttempts {
			return nil, lastErr
		}

		c.logger.WarnContext(ctx, "request failed, retrying",
			"host", req.URL.Host,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// Retryable reports whether err is worth another attempt.
func Retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// Timed logs the duration and outcome of an outbound call.
//
//	defer httpx.Timed(ctx, logger, "google.Quote")(&err)
func Timed(ctx context.Context, logger *slog.Logger, op string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		elapsed := time.Since(start)
		if errp != nil && *errp != nil {
			logger.WarnContext(ctx, "outbound call failed", "op", op, "duration_ms", elapsed.Milliseconds(), "error", *errp)
			return
		}
		logger.DebugContext(ctx, "outbound call", "op", op, "duration_ms", elapsed.Milliseconds())
	}
}
