package ports

import (
	"context"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/order"
)

// OrderRepository is an append-only log of completed quotes keyed by conversation.
type OrderRepository interface {
	// Add persists a new order. The order must be valid and must not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// ListByConversation returns every order of the conversation in insertion order.
	// An empty slice, not an error, is returned when there are none.
	ListByConversation(ctx context.Context, conversation kernel.ConversationID) ([]*order.Order, error)
}
