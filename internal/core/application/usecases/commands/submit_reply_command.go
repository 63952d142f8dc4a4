package commands

import (
	"errors"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/pkg/guard"
)

var ErrSubmitReplyCommandIsNotConstructed = errors.New(
	"SubmitReplyCommand must be created via NewSubmitReplyCommand constructor",
)

// SubmitReplyCommand carries one free-text answer from the user. The text is
// passed to the session untouched; blank answers are rejected by the session,
// not here.
type SubmitReplyCommand struct { //nolint:recvcheck //using for validation
	conversation kernel.ConversationID
	text         string

	guard guard.ConstructorGuard
}

func NewSubmitReplyCommand(conversation kernel.ConversationID, text string) (SubmitReplyCommand, error) {
	if err := conversation.Validate(); err != nil {
		return SubmitReplyCommand{}, err
	}

	return SubmitReplyCommand{
		conversation: conversation,
		text:         text,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitReplyCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReplyCommandIsNotConstructed)
}

func (c SubmitReplyCommand) Conversation() kernel.ConversationID {
	return c.conversation
}

func (c SubmitReplyCommand) Text() string {
	return c.text
}
