package commands

import (
	"context"
	"errors"

	"shipquote/internal/core/ports"
	"shipquote/internal/pkg/errs"
)

// CancelIntakeCommandHandler discards live sessions. Cancelling a conversation
// without a live session is not an error.
type CancelIntakeCommandHandler struct {
	sessions ports.SessionRepository
}

func NewCancelIntakeCommandHandler(sessions ports.SessionRepository) CancelIntakeCommandHandler {
	return CancelIntakeCommandHandler{
		sessions: sessions,
	}
}

// Handle reports whether a live session was discarded.
func (h *CancelIntakeCommandHandler) Handle(ctx context.Context, cmd CancelIntakeCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	s, err := h.sessions.Get(ctx, cmd.Conversation())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err = s.Cancel(); err != nil {
		return false, err
	}

	return h.sessions.Remove(ctx, cmd.Conversation())
}
