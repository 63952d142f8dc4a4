package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/tier"
)

// Session is the live intake dialogue of one conversation.
//
// Example:
//
//	s, _ := session.NewSession(conversationID, session.ModeStandardQuote, catalog)
//	_ = s.Submit("12.5")      // AwaitingDimensions
//	_ = s.Submit("30x20x15")  // AwaitingOrigin
//	_ = s.Submit("Kyiv")      // AwaitingDestination
//	_ = s.Submit("Lviv")      // AwaitingTier
//	err := s.Submit("Deluxe") // *ValidationError{Reason: ReasonUnknownTier}, still AwaitingTier
//	_ = s.Submit("Standard")  // Quoting
type Session struct {
	conversation kernel.ConversationID
	mode         Mode
	catalog      *tier.Catalog
	state        State
	draft        Draft
	startedAt    time.Time
	updatedAt    time.Time
	version      uint64

	isConstructed bool
}

// Revision identifies one state of one session. Stores compare revisions to
// refuse writes based on a session that changed or ended after it was read.
type Revision struct {
	startedAt time.Time
	version   uint64
}

// Matches reports whether s is the same session, unchanged since r was taken.
func (r Revision) Matches(s *Session) bool {
	return s != nil && s.version == r.version && s.startedAt.Equal(r.startedAt)
}

// NewSession starts a dialogue in AwaitingWeight. The catalog provides the
// tiers a user may choose from.
func NewSession(conversation kernel.ConversationID, mode Mode, catalog *tier.Catalog) (*Session, error) {
	if catalog == nil {
		return nil, errors.New("tier catalog is required")
	}
	if err := errors.Join(conversation.Validate(), mode.Validate()); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Session{
		conversation:  conversation,
		mode:          mode,
		catalog:       catalog,
		state:         AwaitingWeight,
		startedAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

func (s *Session) Conversation() kernel.ConversationID {
	return s.conversation
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) State() State {
	return s.state
}

// Draft returns a copy of the collected fields.
func (s *Session) Draft() Draft {
	return s.draft
}

// Catalog returns the tiers offered in this dialogue.
func (s *Session) Catalog() *tier.Catalog {
	return s.catalog
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// UpdatedAt is the time of the last accepted reply or state change.
func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// Revision is the token a store checks before accepting a changed copy.
func (s *Session) Revision() Revision {
	return Revision{startedAt: s.startedAt, version: s.version}
}

// Clone returns an independent copy. The catalog is shared; it never changes.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}

// IsIdle reports whether the session has been waiting on the user for longer
// than timeout. A session that is being quoted is never idle.
func (s *Session) IsIdle(now time.Time, timeout time.Duration) bool {
	return !s.state.IsTerminal() && s.state != Quoting && now.Sub(s.updatedAt) > timeout
}

type step func(s *Session, text string) error

func getTransitions() map[State]step {
	//nolint:exhaustive // only user-driven states accept replies
	return map[State]step{
		AwaitingWeight:      (*Session).SubmitWeight,
		AwaitingDimensions:  (*Session).SubmitDimensions,
		AwaitingOrigin:      (*Session).SubmitOrigin,
		AwaitingDestination: (*Session).SubmitDestination,
		AwaitingTier:        (*Session).SubmitTier,
	}
}

// Submit applies a free-text reply to whatever the session is waiting for.
func (s *Session) Submit(text string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	apply, ok := getTransitions()[s.state]
	if !ok {
		return fmt.Errorf("%w: %s does not accept replies", ErrInvalidTransition, s.state)
	}
	return apply(s, text)
}

// SubmitWeight accepts a positive real number of kilograms.
func (s *Session) SubmitWeight(text string) error {
	if err := s.expect(AwaitingWeight); err != nil {
		return err
	}

	w, err := kernel.ParseWeight(text)
	if err != nil {
		return newValidationError(ReasonWeightFormat, s.state, err)
	}

	return s.advance(func() error { return s.draft.setWeight(w) })
}

// SubmitDimensions accepts exactly three x-separated positive reals.
func (s *Session) SubmitDimensions(text string) error {
	if err := s.expect(AwaitingDimensions); err != nil {
		return err
	}

	d, err := kernel.ParseDimensions(text)
	if err != nil {
		return newValidationError(ReasonDimensionsFormat, s.state, err)
	}

	return s.advance(func() error { return s.draft.setDimensions(d) })
}

// SubmitOrigin accepts any text that is not blank. Addresses are not geocoded here.
func (s *Session) SubmitOrigin(text string) error {
	if err := s.expect(AwaitingOrigin); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return newValidationError(ReasonEmptyField, s.state, errors.New("origin is blank"))
	}

	return s.advance(func() error { return s.draft.setOrigin(text) })
}

// SubmitDestination accepts any text that is not blank.
func (s *Session) SubmitDestination(text string) error {
	if err := s.expect(AwaitingDestination); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return newValidationError(ReasonEmptyField, s.state, errors.New("destination is blank"))
	}

	return s.advance(func() error { return s.draft.setDestination(text) })
}

// SubmitTier accepts an identifier from the catalog. Matching is exact and
// case-sensitive; only surrounding whitespace is ignored. On success the
// session enters Quoting.
func (s *Session) SubmitTier(identifier string) error {
	if err := s.expect(AwaitingTier); err != nil {
		return err
	}

	t, ok := s.catalog.Lookup(strings.TrimSpace(identifier))
	if !ok {
		return newValidationError(ReasonUnknownTier, s.state, fmt.Errorf("%q is not one of %v", identifier, s.catalog.Options()))
	}

	return s.advance(func() error { return s.draft.setTier(t) })
}

// Complete records that a quote was produced.
func (s *Session) Complete() error {
	return s.moveTo(State.Complete)
}

// Fail records that no quote could be produced. The draft is discarded.
func (s *Session) Fail() error {
	if err := s.moveTo(State.Fail); err != nil {
		return err
	}
	s.draft = Draft{}
	return nil
}

// Cancel discards the draft. Cancelling a cancelled session is a no-op.
func (s *Session) Cancel() error {
	if s.state == Cancelled {
		return nil
	}
	if err := s.moveTo(State.Cancel); err != nil {
		return err
	}
	s.draft = Draft{}
	return nil
}

func (s *Session) expect(want State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.state != want {
		return fmt.Errorf("%w: expected %s, session is %s", ErrInvalidTransition, want, s.state)
	}
	return nil
}

// advance stores a field and moves to the next state, or changes nothing.
func (s *Session) advance(store func() error) error {
	next, err := s.state.Next()
	if err != nil {
		return err
	}

	saved := s.draft
	if err = store(); err != nil {
		s.draft = saved
		return err
	}

	s.state = next
	s.updatedAt = time.Now()
	s.version++
	return nil
}

func (s *Session) moveTo(transition func(State) (State, error)) error {
	if err := s.Validate(); err != nil {
		return err
	}

	next, err := transition(s.state)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}

	s.state = next
	s.updatedAt = time.Now()
	s.version++
	return nil
}
