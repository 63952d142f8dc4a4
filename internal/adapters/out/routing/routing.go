// Package routing implements RouteProvider over third-party routing services.
//
// The package includes:
//   - GoogleProvider: Google Distance Matrix API
//   - ORSProvider: OpenRouteService geocoding and matrix APIs
//   - StaticProvider: a fixed table of address pairs for tests and offline runs
//   - CachedProvider: a decorator that remembers quotes in a QuoteCache
package routing

import (
	"strings"
)

// normalize collapses whitespace so equivalent addresses share cache keys.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
