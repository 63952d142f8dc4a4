package session

import (
	"fmt"

	"shipquote/internal/pkg/errs"
)

// Mode selects how a finished session is priced and whether it is recorded.
type Mode int

const (
	ModeUnknown Mode = iota
	// ModeStandardQuote prices by distance only and records an Order.
	ModeStandardQuote
	// ModeQuickEstimate adds weight and volume terms and records nothing.
	ModeQuickEstimate
)

func (m Mode) String() string {
	switch m {
	case ModeStandardQuote:
		return "standard-quote"
	case ModeQuickEstimate:
		return "quick-estimate"
	default:
		return "unknown"
	}
}

func (m Mode) Validate() error {
	if m != ModeStandardQuote && m != ModeQuickEstimate {
		return errs.NewValueIsInvalidErrorWithCause("mode is invalid", fmt.Errorf("%d is not a valid mode", m))
	}
	return nil
}

// RecordsOrder reports whether completion appends an Order.
func (m Mode) RecordsOrder() bool {
	return m == ModeStandardQuote
}
