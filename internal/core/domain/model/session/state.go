package session

import (
	"fmt"

	"shipquote/internal/pkg/errs"
)

// State is the position of a session in the intake dialogue.
//
// Transitions:
//
//	AwaitingWeight ─> AwaitingDimensions ─> AwaitingOrigin ─> AwaitingDestination ─> AwaitingTier ─> Quoting ─┬─> Completed
//	      │                  │                    │                    │                   │                 └─> Failed
//	      └──────────────────┴────────────────────┴────────────────────┴───────────────────┴──> Cancelled
type State int

const (
	// Unknown catches uninitialised State values.
	Unknown State = iota
	AwaitingWeight
	AwaitingDimensions
	AwaitingOrigin
	AwaitingDestination
	AwaitingTier
	// Quoting waits for the routing provider. It is not user-driven.
	Quoting
	Completed
	Cancelled
	Failed
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:             "Unknown",
		AwaitingWeight:      "AwaitingWeight",
		AwaitingDimensions:  "AwaitingDimensions",
		AwaitingOrigin:      "AwaitingOrigin",
		AwaitingDestination: "AwaitingDestination",
		AwaitingTier:        "AwaitingTier",
		Quoting:             "Quoting",
		Completed:           "Completed",
		Cancelled:           "Cancelled",
		Failed:              "Failed",
	}
}

// getSuccessors returns the forward edge of every user-driven state.
func getSuccessors() map[State]State {
	//nolint:exhaustive // terminal and quoting states have no user-driven successor
	return map[State]State{
		AwaitingWeight:      AwaitingDimensions,
		AwaitingDimensions:  AwaitingOrigin,
		AwaitingOrigin:      AwaitingDestination,
		AwaitingDestination: AwaitingTier,
		AwaitingTier:        Quoting,
	}
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects Unknown and out-of-range values, e.g. from a corrupted snapshot.
func (s State) Validate() error {
	if s <= Unknown || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// IsTerminal reports whether the dialogue is over.
func (s State) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Failed
}

// Next returns the successor of a user-driven state.
func (s State) Next() (State, error) {
	next, ok := getSuccessors()[s]
	if !ok {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to advance", s),
		)
	}
	return next, nil
}

// Cancel moves any non-terminal state to Cancelled. Cancelled stays Cancelled.
func (s State) Cancel() (State, error) {
	if s == Cancelled {
		return Cancelled, nil
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to cancel", s),
		)
	}
	return Cancelled, nil
}

// Complete moves Quoting to Completed.
func (s State) Complete() (State, error) {
	if s != Quoting {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to complete", s),
		)
	}
	return Completed, nil
}

// Fail moves Quoting to Failed.
func (s State) Fail() (State, error) {
	if s != Quoting {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to fail", s),
		)
	}
	return Failed, nil
}
