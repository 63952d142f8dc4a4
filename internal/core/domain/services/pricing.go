package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"shipquote/internal/core/domain/model/route"
	"shipquote/internal/core/domain/model/session"
	"shipquote/internal/core/domain/model/tier"
	"shipquote/internal/pkg/errs"
)

const (
	// BaseCost is charged on every quote regardless of tier.
	BaseCost = 5.0

	// WeightRate is the quick-estimate surcharge per kilogram.
	WeightRate = 2.0

	// VolumeDivisor converts cubic centimetres into the quick-estimate volume surcharge.
	VolumeDivisor = 5000.0
)

// Estimate is the priced result of a quote.
type Estimate struct {
	// Cost is in currency units and displayed with two decimals.
	Cost float64
	// Duration is the provider's travel time scaled by the tier's multiplier.
	// It is display data and never feeds into Cost.
	Duration time.Duration
}

// PricingModel prices quotes. It holds no state.
//
// Two formulas exist, selected by session mode:
//
//	standard-quote: cost = 5.0 + km × costPerKm
//	quick-estimate: cost = 5.0 + km × costPerKm + kg × 2.0 + cm³ / 5000
//
// Example:
//
//	pricing := services.NewPricingModel()
//	cost := pricing.Cost(standard, 540) // 1085.0
type PricingModel struct{}

func NewPricingModel() PricingModel {
	return PricingModel{}
}

// Cost is the canonical price: BaseCost plus distance times the tier rate.
// It is non-decreasing in distanceKm.
func (p PricingModel) Cost(t tier.Tier, distanceKm float64) float64 {
	return BaseCost + distanceKm*t.CostPerKm()
}

// QuickEstimateCost adds weight and volume surcharges to Cost.
func (p PricingModel) QuickEstimateCost(t tier.Tier, distanceKm, weightKg, volumeCm3 float64) float64 {
	return p.Cost(t, distanceKm) + weightKg*WeightRate + volumeCm3/VolumeDivisor
}

// AdjustedDuration scales a provider duration by the tier multiplier, rounded to the second.
func (p PricingModel) AdjustedDuration(t tier.Tier, d time.Duration) time.Duration {
	return time.Duration(math.Round(float64(d) * t.DurationMultiplier())).Round(time.Second)
}

// Estimate prices a complete draft using the formula of the given mode.
func (p PricingModel) Estimate(mode session.Mode, t tier.Tier, draft session.Draft, quote route.Quote) (Estimate, error) {
	if err := errors.Join(mode.Validate(), t.Validate(), quote.Validate()); err != nil {
		return Estimate{}, err
	}

	var cost float64
	switch mode {
	case session.ModeStandardQuote:
		cost = p.Cost(t, quote.DistanceKm())
	case session.ModeQuickEstimate:
		weight, hasWeight := draft.Weight()
		dims, hasDims := draft.Dimensions()
		if !hasWeight || !hasDims {
			return Estimate{}, fmt.Errorf("%w: quick estimate needs weight and dimensions", session.ErrDraftIsIncomplete)
		}
		cost = p.QuickEstimateCost(t, quote.DistanceKm(), weight.Kilograms(), dims.Volume())
	default:
		return Estimate{}, errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%s is not priced", mode))
	}

	return Estimate{
		Cost:     cost,
		Duration: p.AdjustedDuration(t, quote.Duration()),
	}, nil
}
