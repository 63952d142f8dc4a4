// Package console provides a Messenger that logs replies instead of sending
// them, for local runs without a bot token.
package console

import (
	"context"
	"log/slog"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/ports"
)

type Messenger struct {
	logger *slog.Logger
}

var _ ports.Messenger = (*Messenger)(nil)

func NewMessenger(logger *slog.Logger) *Messenger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Messenger{logger: logger.With("component", "console_messenger")}
}

func (m *Messenger) Send(ctx context.Context, conversation kernel.ConversationID, reply ports.Reply) error {
	if err := conversation.Validate(); err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "reply",
		"conversation_id", conversation.String(),
		"text", reply.Text,
		"options", reply.Options,
	)
	return nil
}
