// Package session implements the intake dialogue of one conversation as an
// explicit finite-state machine.
//
// A Session walks strictly forward through
//
//	AwaitingWeight -> AwaitingDimensions -> AwaitingOrigin -> AwaitingDestination -> AwaitingTier -> Quoting
//
// and ends in one of the terminal states Completed, Cancelled or Failed.
// Quoting is entered as soon as a valid tier is chosen; the application layer
// then asks the routing provider for a quote and moves the session to Completed
// or Failed.
//
// Every reply is applied through Submit, a transition table keyed by the
// current state. A reply that fails validation returns a *ValidationError and
// leaves the session exactly as it was, so the caller can re-prompt with the
// same instructions. Each Draft field is written once, when its state is left,
// and never overwritten.
//
// Sessions are not safe for concurrent use. The caller must serialise access
// per conversation.
package session
