package tier

import (
	"errors"
	"fmt"
	"slices"

	"shipquote/internal/core/domain/model/kernel"
)

var (
	ErrEmptyCatalog      = errors.New("tier catalog must contain at least one tier")
	ErrNoSuitableVehicle = errors.New("no suitable transport found")
)

// Catalog is the closed, ordered set of tiers offered to users. The order is the
// order of the prompt options. A Catalog is read-only once built and safe for
// concurrent use.
type Catalog struct {
	tiers []Tier
	byID  map[ID]Tier
}

// NewCatalog builds a catalog. Identifiers must be unique.
func NewCatalog(tiers ...Tier) (*Catalog, error) {
	if len(tiers) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		tiers: make([]Tier, 0, len(tiers)),
		byID:  make(map[ID]Tier, len(tiers)),
	}
	for _, t := range tiers {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[t.ID()]; exists {
			return nil, fmt.Errorf("duplicate tier id %q", t.ID())
		}
		c.tiers = append(c.tiers, t)
		c.byID[t.ID()] = t
	}

	return c, nil
}

// DefaultCatalog returns the canonical Premium, Standard and Economy tiers.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		mustTier(Premium, "Premium", "For very large or heavy loads", 3.0, 1.0, Vehicle{
			Class:       "Express",
			Description: "For Express delivery, we use trucks and vans for fast and efficient transportation.",
			MaxWeightKg: 3000, MaxLengthM: 5, MaxWidthM: 2.5, MaxHeightM: 2.5,
		}),
		mustTier(Standard, "Standard", "For medium load", 2.0, 1.3, Vehicle{
			Class:       "Standard",
			Description: "For Standard delivery, we use buses and trucks suitable for general transportation needs.",
			MaxWeightKg: 1000, MaxLengthM: 3, MaxWidthM: 2, MaxHeightM: 2,
		}),
		mustTier(Economy, "Economy", "For small parcels up to 50 kg", 0.5, 1.5, Vehicle{
			Class:       "Economy",
			Description: "For Economy delivery, we use small cars and vans for cost-effective transportation.",
			MaxWeightKg: 500, MaxLengthM: 2, MaxWidthM: 1.5, MaxHeightM: 1.5,
		}),
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup finds a tier by its exact identifier.
func (c *Catalog) Lookup(identifier string) (Tier, bool) {
	t, ok := c.byID[ID(identifier)]
	return t, ok
}

// Options returns the identifiers users may answer with, in prompt order.
func (c *Catalog) Options() []string {
	options := make([]string, 0, len(c.tiers))
	for _, t := range c.tiers {
		options = append(options, string(t.ID()))
	}
	return options
}

// Tiers returns a copy of the catalog in prompt order.
func (c *Catalog) Tiers() []Tier {
	return slices.Clone(c.tiers)
}

// RecommendVehicle returns the tier with the smallest vehicle whose cargo space
// fits the shipment, or ErrNoSuitableVehicle.
func (c *Catalog) RecommendVehicle(d kernel.Dimensions) (Tier, error) {
	if err := d.Validate(); err != nil {
		return Tier{}, err
	}

	bySize := c.Tiers()
	slices.SortStableFunc(bySize, func(a, b Tier) int {
		switch {
		case a.vehicle.capacity() < b.vehicle.capacity():
			return -1
		case a.vehicle.capacity() > b.vehicle.capacity():
			return 1
		default:
			return 0
		}
	})

	for _, t := range bySize {
		if t.vehicle.Fits(d) {
			return t, nil
		}
	}
	return Tier{}, ErrNoSuitableVehicle
}

func mustTier(id ID, name, summary string, costPerKm, durationMultiplier float64, v Vehicle) Tier {
	t, err := NewTier(id, name, summary, costPerKm, durationMultiplier, v)
	if err != nil {
		panic(err)
	}
	return t
}
