package kernel_test

import (
	"testing"

	"shipquote/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConversationID(t *testing.T) {
	t.Run("should accept private and group chat identifiers", func(t *testing.T) {
		for _, input := range []string{"42", "-1001234567890", " 7 "} {
			id, err := kernel.ParseConversationID(input)

			require.NoError(t, err, input)
			require.NoError(t, id.Validate())
		}
	})

	t.Run("should reject zero and non-numeric identifiers", func(t *testing.T) {
		for _, input := range []string{"0", "", "chat-1", "1.5"} {
			_, err := kernel.ParseConversationID(input)

			assert.Error(t, err, input)
		}
	})

	t.Run("should compare by value", func(t *testing.T) {
		a, _ := kernel.NewConversationID(42)
		b, _ := kernel.ParseConversationID("42")

		assert.True(t, a.IsEqual(b))
		assert.Equal(t, int64(42), b.Int64())
		assert.Equal(t, "42", b.String())
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		var id kernel.ConversationID

		assert.Equal(t, kernel.ErrConversationIDIsNotConstructed, id.Validate())
	})
}
