package route

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"shipquote/internal/pkg/errs"
)

const (
	metresPerKm = 1000.0
	kmPerMile   = 1.609344
)

// ParseDistanceText converts a provider's display distance to kilometres.
// Thousands separators are stripped and the leading number is read; the unit
// that follows may be "km" (or absent), "m" or "mi".
//
//	ParseDistanceText("12.3 km")    // 12.3
//	ParseDistanceText("1,234.5 km") // 1234.5
//	ParseDistanceText("850 m")      // 0.85
func ParseDistanceText(text string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", "")

	end := 0
	for end < len(s) && (s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	if end == 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%q does not start with a number", text))
	}

	value, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%q: %w", text, err))
	}

	switch unit := strings.ToLower(strings.TrimSpace(s[end:])); unit {
	case "", "km":
		return value, nil
	case "m":
		return value / metresPerKm, nil
	case "mi":
		return value * kmPerMile, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("unknown unit %q in %q", unit, text))
	}
}

// FormatDistanceText normalises whitespace in a provider's display distance.
func FormatDistanceText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// FormatDistance renders metres the way routing providers display them:
// "850 m" below one kilometre, otherwise kilometres with one decimal when needed.
func FormatDistance(meters float64) string {
	if meters < metresPerKm {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}

	km := math.Round(meters/metresPerKm*10) / 10
	return formatThousands(km) + " km"
}

func formatThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
