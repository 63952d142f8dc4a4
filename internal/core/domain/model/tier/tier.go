package tier

import (
	"errors"
	"fmt"
	"strings"

	"shipquote/internal/pkg/errs"
	"shipquote/internal/pkg/guard"
)

// ErrTierIsNotConstructed is returned when validating a zero-value Tier.
var ErrTierIsNotConstructed = errors.New("Tier must be created via NewTier constructor")

// ID is the business key of a tier, matched exactly and case-sensitively.
type ID string

const (
	Premium  ID = "Premium"
	Standard ID = "Standard"
	Economy  ID = "Economy"
)

// Tier is an immutable delivery service level.
type Tier struct { //nolint:recvcheck //using for validation
	id                 ID
	displayName        string
	summary            string
	costPerKm          float64
	durationMultiplier float64
	vehicle            Vehicle

	guard guard.ConstructorGuard
}

// NewTier validates a tier definition. costPerKm and durationMultiplier must be positive.
func NewTier(
	id ID,
	displayName string,
	summary string,
	costPerKm float64,
	durationMultiplier float64,
	vehicle Vehicle,
) (Tier, error) {
	t := Tier{
		summary: strings.TrimSpace(summary),
		vehicle: vehicle,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setDisplayName(displayName),
		t.setCostPerKm(costPerKm),
		t.setDurationMultiplier(durationMultiplier),
		vehicle.Validate(),
	); err != nil {
		return Tier{}, fmt.Errorf("tier %q: %w", id, err)
	}

	return t, nil
}

func (t Tier) Validate() error {
	return t.guard.Validate(ErrTierIsNotConstructed)
}

func (t Tier) ID() ID {
	return t.id
}

func (t Tier) DisplayName() string {
	return t.displayName
}

// Summary is the one-line description shown next to the tier in prompts.
func (t Tier) Summary() string {
	return t.summary
}

func (t Tier) CostPerKm() float64 {
	return t.costPerKm
}

func (t Tier) DurationMultiplier() float64 {
	return t.durationMultiplier
}

func (t Tier) Vehicle() Vehicle {
	return t.vehicle
}

func (t *Tier) setID(id ID) error {
	if strings.TrimSpace(string(id)) == "" {
		return errs.NewValueIsRequiredError("tier id")
	}
	t.id = id
	return nil
}

func (t *Tier) setDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("display name")
	}
	t.displayName = name
	return nil
}

func (t *Tier) setCostPerKm(v float64) error {
	if !(v > 0) {
		return errs.NewValueIsInvalidErrorWithCause("cost per km", fmt.Errorf("%v is not greater than 0", v))
	}
	t.costPerKm = v
	return nil
}

func (t *Tier) setDurationMultiplier(v float64) error {
	if !(v > 0) {
		return errs.NewValueIsInvalidErrorWithCause("duration multiplier", fmt.Errorf("%v is not greater than 0", v))
	}
	t.durationMultiplier = v
	return nil
}
