// Package queries contains read-only operations over recorded orders.
package queries

import (
	"errors"
	"time"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves every order recorded for a conversation.
//
// Example:
//
//	query, err := NewListOrdersQuery(conversation)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := NewListOrdersQueryHandler(db).Handle(ctx, query)
//	if len(orders) == 0 {
//	    // "No orders found."
//	}
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	conversation kernel.ConversationID

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(conversation kernel.ConversationID) (ListOrdersQuery, error) {
	if err := conversation.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		conversation: conversation,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Conversation() kernel.ConversationID {
	return q.conversation
}

// ListOrdersQueryResponse is the display form of one recorded order.
// Duration is the tier-adjusted travel time.
type ListOrdersQueryResponse struct {
	ID          kernel.UUID
	Weight      float64
	Length      float64
	Width       float64
	Height      float64
	Origin      string
	Destination string
	Tier        string
	Distance    string
	Duration    string
	Cost        float64
	CreatedAt   time.Time
}
