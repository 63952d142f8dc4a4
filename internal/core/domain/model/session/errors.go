package session

import (
	"errors"
	"fmt"
)

var (
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")
	ErrInvalidTransition       = errors.New("invalid session transition")
	ErrFieldAlreadySet         = errors.New("draft field is already set")
	ErrDraftIsIncomplete       = errors.New("draft is incomplete")
)

// Reason classifies a rejected reply.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonWeightFormat
	ReasonDimensionsFormat
	ReasonEmptyField
	ReasonUnknownTier
)

func (r Reason) String() string {
	switch r {
	case ReasonWeightFormat:
		return "WeightFormat"
	case ReasonDimensionsFormat:
		return "DimensionsFormat"
	case ReasonEmptyField:
		return "EmptyField"
	case ReasonUnknownTier:
		return "UnknownTier"
	default:
		return "Unknown"
	}
}

// ValidationError is returned for a reply that cannot be accepted in the
// current state. The session is left unchanged.
type ValidationError struct {
	Reason Reason
	State  State
	Cause  error
}

func newValidationError(reason Reason, state State, cause error) *ValidationError {
	return &ValidationError{Reason: reason, State: state, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation failed in %s: %s (cause: %v)", e.State, e.Reason, e.Cause)
	}
	return fmt.Sprintf("validation failed in %s: %s", e.State, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// ReasonOf extracts the validation reason from err, if any.
func ReasonOf(err error) (Reason, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	return ReasonUnknown, false
}
