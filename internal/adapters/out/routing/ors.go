package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"shipquote/internal/core/domain/model/route"
	"shipquote/internal/pkg/httpx"
)

const (
	orsBaseURL = "https://api.openrouteservice.org"
	orsProfile = "driving-car"
)

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

type orsMatrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type orsMatrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// ORSProvider quotes routes with OpenRouteService: both addresses are geocoded,
// then a one-row matrix gives driving distance in metres and duration in seconds.
type ORSProvider struct {
	baseURL string
	client  httpx.Client
	logger  *slog.Logger
}

func NewORSProvider(apiKey string, opts ...Option) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	o := buildOptions(orsBaseURL, opts)
	c := httpx.NewClient(o.httpClient, o.logger, map[string]string{"Authorization": apiKey}, o.backoff)

	return &ORSProvider{
		baseURL: o.baseURL,
		client:  c,
		logger:  o.logger,
	}, nil
}

func (p *ORSProvider) Quote(ctx context.Context, origin, destination string) (_ route.Quote, err error) {
	defer httpx.Timed(ctx, p.logger, "ors.Quote")(&err)

	origin, destination = normalize(origin), normalize(destination)
	if origin == "" || destination == "" {
		return route.Quote{}, errors.New("origin and destination must be non-empty")
	}

	from, err := p.geocode(ctx, origin)
	if err != nil {
		return route.Quote{}, err
	}
	to, err := p.geocode(ctx, destination)
	if err != nil {
		return route.Quote{}, err
	}

	meters, seconds, err := p.matrix(ctx, from, to)
	if err != nil {
		return route.Quote{}, err
	}

	return route.NewQuoteFromMeters(meters, time.Duration(seconds*float64(time.Second)).Round(time.Second))
}

// geocode returns [lon, lat] of the best match.
func (p *ORSProvider) geocode(ctx context.Context, address string) ([]float64, error) {
	q := url.Values{}
	q.Set("text", address)
	q.Set("size", "1")
	endpoint := p.baseURL + "/geocode/search?" + q.Encode()

	resp, err := p.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return p.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded orsGeocodeResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return nil, fmt.Errorf("no geocode results for %q", address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return nil, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return coords, nil
}

func (p *ORSProvider) matrix(ctx context.Context, from, to []float64) (float64, float64, error) {
	payload, err := json.Marshal(orsMatrixRequest{
		Locations:    [][]float64{from, to},
		Destinations: []int{1},
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
	})
	if err != nil {
		return 0, 0, fmt.Errorf("marshal matrix request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", p.baseURL, orsProfile)
	resp, err := p.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return p.client.NewRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return 0, 0, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr orsMatrixResponse
	if err = json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return 0, 0, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != 1 || len(mr.Durations) != 1 ||
		len(mr.Distances[0]) != 1 || len(mr.Durations[0]) != 1 {
		return 0, 0, errors.New("matrix response does not have exactly one cell")
	}

	meters, seconds := mr.Distances[0][0], mr.Durations[0][0]
	if meters == nil || seconds == nil {
		return 0, 0, errors.New("matrix returned no route")
	}

	return *meters, *seconds, nil
}
