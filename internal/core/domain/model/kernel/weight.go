package kernel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"shipquote/internal/pkg/errs"
	"shipquote/internal/pkg/guard"
)

// ErrWeightIsNotConstructed is returned when validating a zero-value Weight.
var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError("weight must be created via NewWeight or ParseWeight")

// Weight is the shipment mass in kilograms. It is always a positive finite number.
type Weight struct {
	kg    float64
	guard guard.ConstructorGuard
}

// NewWeight validates a mass in kilograms.
func NewWeight(kg float64) (Weight, error) {
	if err := validatePositive("weight", kg); err != nil {
		return Weight{}, err
	}
	return Weight{kg: kg, guard: guard.NewConstructorGuard()}, nil
}

// ParseWeight reads a user reply such as "12.5". Surrounding whitespace is ignored.
//
// Example:
//
//	w, err := kernel.ParseWeight(" 12.5 ")
//	// w.Kilograms() == 12.5
func ParseWeight(text string) (Weight, error) {
	kg, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%q is not a number", text))
	}
	return NewWeight(kg)
}

func (w Weight) Kilograms() float64 {
	return w.kg
}

func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}

func (w Weight) String() string {
	return strconv.FormatFloat(w.kg, 'f', -1, 64) + " kg"
}

func validatePositive(param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%v is not a finite number", v))
	}
	if v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%v is not greater than 0", v))
	}
	return nil
}
