package session

import (
	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/tier"
)

// Draft is the shipment being collected. Fields are filled in dialogue order
// and each can be set only once.
type Draft struct {
	weight      kernel.Weight
	dimensions  kernel.Dimensions
	origin      string
	destination string
	tier        tier.Tier

	hasWeight, hasDimensions, hasOrigin, hasDestination, hasTier bool
}

func (d Draft) Weight() (kernel.Weight, bool) {
	return d.weight, d.hasWeight
}

func (d Draft) Dimensions() (kernel.Dimensions, bool) {
	return d.dimensions, d.hasDimensions
}

func (d Draft) Origin() (string, bool) {
	return d.origin, d.hasOrigin
}

func (d Draft) Destination() (string, bool) {
	return d.destination, d.hasDestination
}

func (d Draft) Tier() (tier.Tier, bool) {
	return d.tier, d.hasTier
}

// IsComplete reports whether every field is present.
func (d Draft) IsComplete() bool {
	return d.hasWeight && d.hasDimensions && d.hasOrigin && d.hasDestination && d.hasTier
}

func (d *Draft) setWeight(w kernel.Weight) error {
	if d.hasWeight {
		return ErrFieldAlreadySet
	}
	d.weight, d.hasWeight = w, true
	return nil
}

func (d *Draft) setDimensions(dims kernel.Dimensions) error {
	if d.hasDimensions {
		return ErrFieldAlreadySet
	}
	d.dimensions, d.hasDimensions = dims, true
	return nil
}

func (d *Draft) setOrigin(origin string) error {
	if d.hasOrigin {
		return ErrFieldAlreadySet
	}
	d.origin, d.hasOrigin = origin, true
	return nil
}

func (d *Draft) setDestination(destination string) error {
	if d.hasDestination {
		return ErrFieldAlreadySet
	}
	d.destination, d.hasDestination = destination, true
	return nil
}

func (d *Draft) setTier(t tier.Tier) error {
	if !d.hasOrigin || !d.hasDestination {
		return ErrDraftIsIncomplete
	}
	if d.hasTier {
		return ErrFieldAlreadySet
	}
	d.tier, d.hasTier = t, true
	return nil
}
