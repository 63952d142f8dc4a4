package tier

import (
	"fmt"
	"strconv"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/pkg/errs"
)

const centimetresPerMetre = 100

// Vehicle describes the transport class that serves a tier and its load limits.
// Limits are in kilograms and metres.
type Vehicle struct {
	Class       string
	Description string
	MaxWeightKg float64
	MaxLengthM  float64
	MaxWidthM   float64
	MaxHeightM  float64
}

func (v Vehicle) Validate() error {
	if v.Class == "" {
		return errs.NewValueIsRequiredError("vehicle class")
	}
	limits := []struct {
		name  string
		value float64
	}{
		{"max weight", v.MaxWeightKg},
		{"max length", v.MaxLengthM},
		{"max width", v.MaxWidthM},
		{"max height", v.MaxHeightM},
	}
	for _, limit := range limits {
		if !(limit.value > 0) {
			return errs.NewValueIsInvalidErrorWithCause(limit.name, fmt.Errorf("%v is not greater than 0", limit.value))
		}
	}
	return nil
}

// Fits reports whether a shipment measured in centimetres fits the vehicle's cargo space.
func (v Vehicle) Fits(d kernel.Dimensions) bool {
	return d.FitsWithin(
		v.MaxLengthM*centimetresPerMetre,
		v.MaxWidthM*centimetresPerMetre,
		v.MaxHeightM*centimetresPerMetre,
	)
}

// Limitations renders the limits the way they are shown to users.
func (v Vehicle) Limitations() string {
	return fmt.Sprintf("Maximum weight: %s kg, Maximum dimensions: %sm x %sm x %sm",
		num(v.MaxWeightKg), num(v.MaxLengthM), num(v.MaxWidthM), num(v.MaxHeightM))
}

func (v Vehicle) capacity() float64 {
	return v.MaxLengthM * v.MaxWidthM * v.MaxHeightM
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
