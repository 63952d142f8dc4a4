package commands

import (
	"errors"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/pkg/guard"
)

var ErrCancelIntakeCommandIsNotConstructed = errors.New(
	"CancelIntakeCommand must be created via NewCancelIntakeCommand constructor",
)

// CancelIntakeCommand abandons the live session of a conversation.
type CancelIntakeCommand struct { //nolint:recvcheck //using for validation
	conversation kernel.ConversationID

	guard guard.ConstructorGuard
}

func NewCancelIntakeCommand(conversation kernel.ConversationID) (CancelIntakeCommand, error) {
	if err := conversation.Validate(); err != nil {
		return CancelIntakeCommand{}, err
	}

	return CancelIntakeCommand{
		conversation: conversation,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CancelIntakeCommand) Validate() error {
	return c.guard.Validate(ErrCancelIntakeCommandIsNotConstructed)
}

func (c CancelIntakeCommand) Conversation() kernel.ConversationID {
	return c.conversation
}
