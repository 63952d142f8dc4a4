// Package route holds the distance and travel time a routing provider returns
// for an origin and destination pair.
package route

import (
	"errors"
	"fmt"
	"math"
	"time"

	"shipquote/internal/pkg/errs"
	"shipquote/internal/pkg/guard"
)

// ErrQuoteIsNotConstructed is returned when validating a zero-value Quote.
var ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote or NewQuoteFromMeters")

// Quote is produced once per completed session and never changes afterwards.
// DistanceText is what the provider displayed ("540 km"); DistanceKm is the
// number parsed from it and is what pricing uses.
type Quote struct {
	distanceText string
	distanceKm   float64
	duration     time.Duration

	guard guard.ConstructorGuard
}

// NewQuote builds a quote from a provider's display distance, e.g. "1,234.5 km".
func NewQuote(distanceText string, duration time.Duration) (Quote, error) {
	km, err := ParseDistanceText(distanceText)
	if err != nil {
		return Quote{}, err
	}
	return newQuote(FormatDistanceText(distanceText), km, duration)
}

// NewQuoteFromMeters builds a quote for providers that report numeric metres.
func NewQuoteFromMeters(meters float64, duration time.Duration) (Quote, error) {
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters < 0 {
		return Quote{}, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%v is not a valid distance", meters))
	}
	return newQuote(FormatDistance(meters), meters/metresPerKm, duration)
}

// RestoreQuote rebuilds a quote from stored fields without re-parsing.
func RestoreQuote(distanceText string, distanceKm float64, duration time.Duration) (Quote, error) {
	return newQuote(distanceText, distanceKm, duration)
}

func newQuote(text string, km float64, duration time.Duration) (Quote, error) {
	if duration <= 0 {
		return Quote{}, errs.NewValueIsInvalidErrorWithCause("duration", fmt.Errorf("%s is not positive", duration))
	}
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return Quote{}, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%v km is not a valid distance", km))
	}
	return Quote{
		distanceText: text,
		distanceKm:   km,
		duration:     duration,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q Quote) Validate() error {
	return q.guard.Validate(ErrQuoteIsNotConstructed)
}

func (q Quote) DistanceText() string {
	return q.distanceText
}

func (q Quote) DistanceKm() float64 {
	return q.distanceKm
}

// Duration is the unadjusted travel time reported by the provider.
func (q Quote) Duration() time.Duration {
	return q.duration
}
