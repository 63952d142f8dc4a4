package commands

import (
	"errors"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/session"
	"shipquote/internal/pkg/guard"
)

var ErrStartIntakeCommandIsNotConstructed = errors.New(
	"StartIntakeCommand must be created via NewStartIntakeCommand constructor",
)

// StartIntakeCommand opens a new dialogue for a conversation. Any live
// session of the same conversation is discarded.
//
// Example:
//
//	cmd, err := NewStartIntakeCommand(conversation, session.ModeStandardQuote)
//	if err != nil {
//	    return err
//	}
//	state, err := handler.Handle(ctx, cmd) // session.AwaitingWeight
type StartIntakeCommand struct { //nolint:recvcheck //using for validation
	conversation kernel.ConversationID
	mode         session.Mode

	guard guard.ConstructorGuard
}

func NewStartIntakeCommand(conversation kernel.ConversationID, mode session.Mode) (StartIntakeCommand, error) {
	cmd := StartIntakeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConversation(conversation),
		cmd.setMode(mode),
	); err != nil {
		return StartIntakeCommand{}, err
	}

	return cmd, nil
}

func (c StartIntakeCommand) Validate() error {
	return c.guard.Validate(ErrStartIntakeCommandIsNotConstructed)
}

func (c StartIntakeCommand) Conversation() kernel.ConversationID {
	return c.conversation
}

func (c StartIntakeCommand) Mode() session.Mode {
	return c.mode
}

func (c *StartIntakeCommand) setConversation(conversation kernel.ConversationID) error {
	if err := conversation.Validate(); err != nil {
		return err
	}
	c.conversation = conversation
	return nil
}

func (c *StartIntakeCommand) setMode(mode session.Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	c.mode = mode
	return nil
}
