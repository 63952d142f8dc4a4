package routing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"shipquote/internal/core/domain/model/route"

	"gopkg.in/yaml.v3"
)

// StaticPair is one known route.
type StaticPair struct {
	From, To string
	Meters   float64
	Duration time.Duration
}

// StaticProvider answers from a fixed table and fails for unknown pairs.
// Addresses are matched after whitespace normalisation, in both directions.
type StaticProvider struct {
	m map[string]StaticPair
}

func NewStaticProvider(pairs []StaticPair) *StaticProvider {
	m := make(map[string]StaticPair, 2*len(pairs))
	for _, p := range pairs {
		m[normalize(p.From)+"|"+normalize(p.To)] = p
		reverse := normalize(p.To) + "|" + normalize(p.From)
		if _, ok := m[reverse]; !ok {
			m[reverse] = p
		}
	}
	return &StaticProvider{m: m}
}

func (p *StaticProvider) Quote(ctx context.Context, origin, destination string) (route.Quote, error) {
	if err := ctx.Err(); err != nil {
		return route.Quote{}, err
	}

	pair, ok := p.m[normalize(origin)+"|"+normalize(destination)]
	if !ok {
		return route.Quote{}, fmt.Errorf("missing pair %q -> %q", origin, destination)
	}

	return route.NewQuoteFromMeters(pair.Meters, pair.Duration)
}

type staticPairFile struct {
	From     string        `yaml:"from"`
	To       string        `yaml:"to"`
	Km       float64       `yaml:"km"`
	Duration time.Duration `yaml:"duration"`
}

// LoadStaticPairs reads a YAML list of routes:
//
//	- from: Kyiv
//	  to: Lviv
//	  km: 540
//	  duration: 6h
func LoadStaticPairs(r io.Reader) ([]StaticPair, error) {
	var raw []staticPairFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode static routes: %w", err)
	}

	pairs := make([]StaticPair, 0, len(raw))
	for i, p := range raw {
		if normalize(p.From) == "" || normalize(p.To) == "" {
			return nil, fmt.Errorf("static route %d: from and to are required", i)
		}
		if p.Km < 0 || p.Duration <= 0 {
			return nil, fmt.Errorf("static route %d: km must not be negative and duration must be positive", i)
		}
		pairs = append(pairs, StaticPair{From: p.From, To: p.To, Meters: p.Km * 1000, Duration: p.Duration})
	}
	return pairs, nil
}

// LoadStaticPairsFile is LoadStaticPairs for a file path.
func LoadStaticPairsFile(path string) ([]StaticPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadStaticPairs(f)
}

// DemoPairs is a small table used when the static provider runs without a routes file.
func DemoPairs() []StaticPair {
	return []StaticPair{
		{From: "Kyiv", To: "Lviv", Meters: 540_000, Duration: 6 * time.Hour},
		{From: "Kyiv", To: "Odesa", Meters: 475_000, Duration: 5*time.Hour + 40*time.Minute},
		{From: "Kyiv", To: "Kharkiv", Meters: 480_000, Duration: 5*time.Hour + 50*time.Minute},
		{From: "Lviv", To: "Odesa", Meters: 790_000, Duration: 9*time.Hour + 30*time.Minute},
	}
}
