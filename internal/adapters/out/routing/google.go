package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shipquote/internal/core/domain/model/route"
	"shipquote/internal/pkg/httpx"
)

const googleBaseURL = "https://maps.googleapis.com"

type googleMatrixValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

type googleMatrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string             `json:"status"`
			Distance *googleMatrixValue `json:"distance"`
			Duration *googleMatrixValue `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// GoogleProvider quotes routes with the Google Distance Matrix API in driving mode.
// The quote keeps Google's display distance, e.g. "540 km".
type GoogleProvider struct {
	apiKey  string
	baseURL string
	client  httpx.Client
	logger  *slog.Logger
	now     func() time.Time
}

func NewGoogleProvider(apiKey string, opts ...Option) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	o := buildOptions(googleBaseURL, opts)
	c := httpx.NewClient(o.httpClient, o.logger, nil, o.backoff)

	return &GoogleProvider{
		apiKey:  apiKey,
		baseURL: o.baseURL,
		client:  c,
		logger:  o.logger,
		now:     time.Now,
	}, nil
}

func (g *GoogleProvider) Quote(ctx context.Context, origin, destination string) (_ route.Quote, err error) {
	defer httpx.Timed(ctx, g.logger, "google.Quote")(&err)

	origin, destination = normalize(origin), normalize(destination)
	if origin == "" || destination == "" {
		return route.Quote{}, errors.New("origin and destination must be non-empty")
	}

	endpoint := g.baseURL + "/maps/api/distancematrix/json"
	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("mode", "driving")
	q.Set("departure_time", strconv.FormatInt(g.now().Unix(), 10))
	q.Set("key", g.apiKey)

	resp, err := g.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return g.client.NewRequest(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	})
	if err != nil {
		return route.Quote{}, fmt.Errorf("distance matrix request: %w", err)
	}
	defer resp.Body.Close()

	var decoded googleMatrixResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return route.Quote{}, fmt.Errorf("decode distance matrix response: %w", err)
	}

	if decoded.Status != "OK" {
		return route.Quote{}, fmt.Errorf("distance matrix status %s: %s", decoded.Status, decoded.ErrorMessage)
	}
	if len(decoded.Rows) == 0 || len(decoded.Rows[0].Elements) == 0 {
		return route.Quote{}, fmt.Errorf("distance matrix returned no elements for %q -> %q", origin, destination)
	}

	element := decoded.Rows[0].Elements[0]
	if element.Status != "OK" {
		return route.Quote{}, fmt.Errorf("no route %q -> %q: %s", origin, destination, element.Status)
	}

	if element.Distance == nil || element.Duration == nil {
		return route.Quote{}, fmt.Errorf("distance matrix element for %q -> %q lacks distance or duration",
			origin, destination)
	}

	duration := time.Duration(element.Duration.Value) * time.Second
	quote, err := route.NewQuote(element.Distance.Text, duration)
	if err != nil {
		// Localised units fall back to the numeric metres.
		if element.Distance.Value <= 0 {
			return route.Quote{}, fmt.Errorf("distance matrix distance %q: %w", element.Distance.Text, err)
		}
		return route.NewQuoteFromMeters(element.Distance.Value, duration)
	}
	return quote, nil
}
