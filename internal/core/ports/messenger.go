package ports

import (
	"context"

	"shipquote/internal/core/domain/model/kernel"
)

// Reply is one outbound chat message. Options, when present, are offered as
// one-tap answers; the user may still type anything.
type Reply struct {
	Text    string
	Options []string
}

// Messenger delivers replies to a conversation.
type Messenger interface {
	Send(ctx context.Context, conversation kernel.ConversationID, reply Reply) error
}
