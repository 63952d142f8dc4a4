package routing

import (
	"log/slog"
	"net/http"
	"time"

	"shipquote/internal/pkg/httpx"
)

type options struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	backoff    time.Duration
}

// Option configures a remote provider.
type Option func(*options)

// WithBaseURL points the provider at another host, e.g. an httptest server.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithBackoff sets the delay before the first retry; it doubles on every further attempt.
func WithBackoff(d time.Duration) Option {
	return func(o *options) { o.backoff = d }
}

func buildOptions(defaultBaseURL string, opts []Option) options {
	o := options{baseURL: defaultBaseURL, backoff: httpx.DefaultBackoff}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
