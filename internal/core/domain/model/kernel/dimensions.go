package kernel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"shipquote/internal/pkg/errs"
	"shipquote/internal/pkg/guard"
)

// ErrDimensionsAreNotConstructed is returned when validating zero-value Dimensions.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions or ParseDimensions")

// Dimensions is the length x width x height of a shipment in centimetres.
// Every side is a positive finite number.
type Dimensions struct { //nolint:recvcheck //using for validation
	length float64
	width  float64
	height float64
	guard  guard.ConstructorGuard
}

// NewDimensions validates the three sides, in centimetres.
func NewDimensions(length, width, height float64) (Dimensions, error) {
	d := Dimensions{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setLength(length),
		d.setWidth(width),
		d.setHeight(height),
	); err != nil {
		return Dimensions{}, err
	}

	return d, nil
}

// ParseDimensions reads a reply of exactly three x-separated numbers, e.g. "30x20x15"
// or "30 X 20 X 15". Any other token count, a non-numeric token or a non-positive
// side is rejected.
func ParseDimensions(text string) (Dimensions, error) {
	tokens := strings.Split(strings.ToLower(strings.TrimSpace(text)), "x")
	if len(tokens) != 3 {
		return Dimensions{}, errs.NewValueIsInvalidErrorWithCause(
			"dimensions", fmt.Errorf("%q does not have the form length x width x height", text))
	}

	var sides [3]float64
	for i, token := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
		if err != nil {
			return Dimensions{}, errs.NewValueIsInvalidErrorWithCause(
				"dimensions", fmt.Errorf("%q is not a number", token))
		}
		sides[i] = v
	}

	return NewDimensions(sides[0], sides[1], sides[2])
}

func (d Dimensions) Length() float64 {
	return d.length
}

func (d Dimensions) Width() float64 {
	return d.width
}

func (d Dimensions) Height() float64 {
	return d.height
}

// Volume returns length*width*height in cubic centimetres.
func (d Dimensions) Volume() float64 {
	return d.length * d.width * d.height
}

// FitsWithin reports whether every side is within the corresponding limit, in centimetres.
func (d Dimensions) FitsWithin(maxLength, maxWidth, maxHeight float64) bool {
	return d.length <= maxLength && d.width <= maxWidth && d.height <= maxHeight
}

func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

// String renders the dimensions the way users type them, e.g. "30x20x15".
func (d Dimensions) String() string {
	return fmt.Sprintf("%sx%sx%s", formatSide(d.length), formatSide(d.width), formatSide(d.height))
}

func (d *Dimensions) setLength(v float64) error {
	if err := validatePositive("length", v); err != nil {
		return err
	}
	d.length = v
	return nil
}

func (d *Dimensions) setWidth(v float64) error {
	if err := validatePositive("width", v); err != nil {
		return err
	}
	d.width = v
	return nil
}

func (d *Dimensions) setHeight(v float64) error {
	if err := validatePositive("height", v); err != nil {
		return err
	}
	d.height = v
	return nil
}

func formatSide(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
