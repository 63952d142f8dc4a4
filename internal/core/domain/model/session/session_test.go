package session_test

import (
	"testing"
	"time"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/session"
	"shipquote/internal/core/domain/model/tier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()

	conversation, err := kernel.NewConversationID(42)
	require.NoError(t, err)
	s, err := session.NewSession(conversation, session.ModeStandardQuote, tier.DefaultCatalog())
	require.NoError(t, err)
	return s
}

func sessionAt(t *testing.T, state session.State) *session.Session {
	t.Helper()

	s := newSession(t)
	replies := []string{"12.5", "30x20x15", "Kyiv", "Lviv", "Standard"}
	for _, reply := range replies {
		if s.State() == state {
			break
		}
		require.NoError(t, s.Submit(reply))
	}
	require.Equal(t, state, s.State())
	return s
}

func assertReason(t *testing.T, err error, expected session.Reason) {
	t.Helper()

	require.Error(t, err)
	reason, ok := session.ReasonOf(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.Equal(t, expected, reason)
}

func TestNewSession(t *testing.T) {
	t.Run("should start awaiting the weight", func(t *testing.T) {
		s := newSession(t)

		assert.Equal(t, session.AwaitingWeight, s.State())
		assert.Equal(t, session.ModeStandardQuote, s.Mode())
		assert.Equal(t, int64(42), s.Conversation().Int64())
		assert.False(t, s.Draft().IsComplete())
		require.NoError(t, s.Validate())
	})

	t.Run("should reject an unknown mode", func(t *testing.T) {
		conversation, _ := kernel.NewConversationID(42)

		_, err := session.NewSession(conversation, session.ModeUnknown, tier.DefaultCatalog())

		require.Error(t, err)
	})

	t.Run("should reject a missing conversation", func(t *testing.T) {
		_, err := session.NewSession(kernel.ConversationID{}, session.ModeStandardQuote, tier.DefaultCatalog())

		require.ErrorIs(t, err, kernel.ErrConversationIDIsNotConstructed)
	})

	t.Run("should reject a zero value", func(t *testing.T) {
		var s session.Session

		require.ErrorIs(t, s.Submit("12"), session.ErrSessionIsNotConstructed)
	})
}

func TestSession_HappyPath(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.Submit("12.5"))
	assert.Equal(t, session.AwaitingDimensions, s.State())
	require.NoError(t, s.Submit("30x20x15"))
	assert.Equal(t, session.AwaitingOrigin, s.State())
	require.NoError(t, s.Submit("Kyiv"))
	assert.Equal(t, session.AwaitingDestination, s.State())
	require.NoError(t, s.Submit("Lviv"))
	assert.Equal(t, session.AwaitingTier, s.State())
	require.NoError(t, s.Submit("Standard"))
	assert.Equal(t, session.Quoting, s.State())

	draft := s.Draft()
	require.True(t, draft.IsComplete())
	w, _ := draft.Weight()
	assert.InDelta(t, 12.5, w.Kilograms(), 1e-9)
	d, _ := draft.Dimensions()
	assert.Equal(t, "30x20x15", d.String())
	origin, _ := draft.Origin()
	assert.Equal(t, "Kyiv", origin)
	destination, _ := draft.Destination()
	assert.Equal(t, "Lviv", destination)
	chosen, _ := draft.Tier()
	assert.Equal(t, tier.Standard, chosen.ID())

	require.NoError(t, s.Complete())
	assert.Equal(t, session.Completed, s.State())
	assert.True(t, s.State().IsTerminal())
}

func TestSession_SubmitWeight(t *testing.T) {
	t.Run("should advance exactly once and store the parsed value", func(t *testing.T) {
		for input, expected := range map[string]float64{"12.5": 12.5, "1": 1, " 0.25 ": 0.25, "3e2": 300} {
			s := newSession(t)

			require.NoError(t, s.SubmitWeight(input))

			assert.Equal(t, session.AwaitingDimensions, s.State())
			w, ok := s.Draft().Weight()
			require.True(t, ok)
			assert.InDelta(t, expected, w.Kilograms(), 1e-9)
			require.ErrorIs(t, s.SubmitWeight(input), session.ErrInvalidTransition)
			assert.Equal(t, session.AwaitingDimensions, s.State())
		}
	})

	t.Run("should stay awaiting the weight on bad input", func(t *testing.T) {
		for _, input := range []string{"", "heavy", "0", "-1", "12 kg"} {
			s := newSession(t)

			assertReason(t, s.Submit(input), session.ReasonWeightFormat)

			assert.Equal(t, session.AwaitingWeight, s.State())
			_, ok := s.Draft().Weight()
			assert.False(t, ok)
		}
	})
}

func TestSession_SubmitDimensions(t *testing.T) {
	t.Run("should leave state unchanged for malformed dimensions", func(t *testing.T) {
		for _, input := range []string{"30x20", "30x20x15x5", "30xtwentyx15", "30x0x15", "30x-2x15", "", "30,20,15"} {
			s := sessionAt(t, session.AwaitingDimensions)
			before := s.Draft()

			assertReason(t, s.Submit(input), session.ReasonDimensionsFormat)

			assert.Equal(t, session.AwaitingDimensions, s.State(), input)
			assert.Equal(t, before, s.Draft(), input)
		}
	})
}

func TestSession_SubmitOriginAndDestination(t *testing.T) {
	t.Run("should reject blank text", func(t *testing.T) {
		s := sessionAt(t, session.AwaitingOrigin)

		assertReason(t, s.Submit("   "), session.ReasonEmptyField)
		assert.Equal(t, session.AwaitingOrigin, s.State())

		require.NoError(t, s.Submit("Kyiv, Khreshchatyk 1"))
		assertReason(t, s.Submit(""), session.ReasonEmptyField)
		assert.Equal(t, session.AwaitingDestination, s.State())
	})

	t.Run("should accept text verbatim", func(t *testing.T) {
		s := sessionAt(t, session.AwaitingOrigin)

		require.NoError(t, s.Submit("somewhere that is not geocoded ✈"))

		origin, _ := s.Draft().Origin()
		assert.Equal(t, "somewhere that is not geocoded ✈", origin)
	})
}

func TestSession_SubmitTier(t *testing.T) {
	t.Run("should keep rejecting an unknown tier until a valid one arrives", func(t *testing.T) {
		s := sessionAt(t, session.AwaitingTier)

		for range 3 {
			assertReason(t, s.Submit("Deluxe"), session.ReasonUnknownTier)
			assert.Equal(t, session.AwaitingTier, s.State())
		}
		assertReason(t, s.Submit("standard"), session.ReasonUnknownTier)

		require.NoError(t, s.Submit(" Economy "))
		assert.Equal(t, session.Quoting, s.State())
		chosen, _ := s.Draft().Tier()
		assert.Equal(t, tier.Economy, chosen.ID())
	})

	t.Run("should not accept a tier out of order", func(t *testing.T) {
		s := sessionAt(t, session.AwaitingOrigin)

		require.ErrorIs(t, s.SubmitTier("Standard"), session.ErrInvalidTransition)
		assert.Equal(t, session.AwaitingOrigin, s.State())
	})
}

func TestSession_Cancel(t *testing.T) {
	for _, state := range []session.State{
		session.AwaitingWeight,
		session.AwaitingDimensions,
		session.AwaitingOrigin,
		session.AwaitingDestination,
		session.AwaitingTier,
		session.Quoting,
	} {
		t.Run("should cancel from "+state.String(), func(t *testing.T) {
			s := sessionAt(t, state)

			require.NoError(t, s.Cancel())
			assert.Equal(t, session.Cancelled, s.State())
			assert.Equal(t, session.Draft{}, s.Draft())
		})
	}

	t.Run("should be idempotent", func(t *testing.T) {
		once := sessionAt(t, session.AwaitingOrigin)
		twice := sessionAt(t, session.AwaitingOrigin)

		require.NoError(t, once.Cancel())
		require.NoError(t, twice.Cancel())
		require.NoError(t, twice.Cancel())

		assert.Equal(t, once.State(), twice.State())
		assert.Equal(t, once.Draft(), twice.Draft())
	})

	t.Run("should not reopen a completed session", func(t *testing.T) {
		s := sessionAt(t, session.Quoting)
		require.NoError(t, s.Complete())

		require.ErrorIs(t, s.Cancel(), session.ErrInvalidTransition)
		assert.Equal(t, session.Completed, s.State())
	})

	t.Run("should ignore replies after cancellation", func(t *testing.T) {
		s := sessionAt(t, session.AwaitingWeight)
		require.NoError(t, s.Cancel())

		require.ErrorIs(t, s.Submit("12"), session.ErrInvalidTransition)
	})
}

func TestSession_Fail(t *testing.T) {
	t.Run("should discard the draft", func(t *testing.T) {
		s := sessionAt(t, session.Quoting)

		require.NoError(t, s.Fail())

		assert.Equal(t, session.Failed, s.State())
		assert.False(t, s.Draft().IsComplete())
	})

	t.Run("should only fail while quoting", func(t *testing.T) {
		s := sessionAt(t, session.AwaitingTier)

		require.ErrorIs(t, s.Fail(), session.ErrInvalidTransition)
		assert.Equal(t, session.AwaitingTier, s.State())
	})
}

func TestSession_IsIdle(t *testing.T) {
	s := newSession(t)

	assert.False(t, s.IsIdle(time.Now(), time.Hour))
	assert.True(t, s.IsIdle(time.Now().Add(2*time.Hour), time.Hour))

	require.NoError(t, s.Cancel())
	assert.False(t, s.IsIdle(time.Now().Add(2*time.Hour), time.Hour))
}

func TestSession_IsIdle_NeverWhileQuoting(t *testing.T) {
	s := sessionAt(t, session.Quoting)

	assert.False(t, s.IsIdle(time.Now().Add(2*time.Hour), time.Hour))
}

func TestSession_Revision(t *testing.T) {
	t.Run("should match an unchanged copy", func(t *testing.T) {
		s := newSession(t)

		assert.True(t, s.Revision().Matches(s.Clone()))
	})

	t.Run("should not match after a change", func(t *testing.T) {
		s := newSession(t)
		read := s.Revision()

		require.NoError(t, s.Submit("12.5"))

		assert.False(t, read.Matches(s))
	})

	t.Run("should ignore rejected replies", func(t *testing.T) {
		s := newSession(t)
		read := s.Revision()

		require.Error(t, s.Submit("heavy"))

		assert.True(t, read.Matches(s))
	})

	t.Run("should not match another session of the same conversation", func(t *testing.T) {
		s := newSession(t)
		time.Sleep(time.Millisecond)
		restarted := newSession(t)

		assert.False(t, s.Revision().Matches(restarted))
		assert.False(t, s.Revision().Matches(nil))
	})
}
