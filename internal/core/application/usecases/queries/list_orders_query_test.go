package queries_test

import (
	"testing"

	"shipquote/internal/core/application/usecases/queries"
	"shipquote/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	conversation, _ := kernel.NewConversationID(42)

	query, err := queries.NewListOrdersQuery(conversation)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, conversation, query.Conversation())

	_, err = queries.NewListOrdersQuery(kernel.ConversationID{})
	require.ErrorIs(t, err, kernel.ErrConversationIDIsNotConstructed)

	require.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
}
