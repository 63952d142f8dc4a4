package commands

import (
	"context"
	"errors"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/ports"
)

// ExpireIdleSessionsCommandHandler applies the cancel path to abandoned sessions,
// so a forgotten dialogue cannot hold a draft forever.
type ExpireIdleSessionsCommandHandler struct {
	sessions ports.SessionRepository
}

func NewExpireIdleSessionsCommandHandler(sessions ports.SessionRepository) ExpireIdleSessionsCommandHandler {
	return ExpireIdleSessionsCommandHandler{
		sessions: sessions,
	}
}

// Handle returns the conversations whose session was cancelled. Sessions that
// fail to cancel are skipped and reported in the joined error.
func (h *ExpireIdleSessionsCommandHandler) Handle(
	ctx context.Context,
	cmd ExpireIdleSessionsCommand,
) ([]kernel.ConversationID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	idle, err := h.sessions.ListIdle(ctx, cmd.Now(), cmd.Timeout())
	if err != nil {
		return nil, err
	}

	var (
		expired []kernel.ConversationID
		errList []error
	)
	for _, s := range idle {
		read := s.Revision()
		if err = s.Cancel(); err != nil {
			errList = append(errList, err)
			continue
		}

		// A reply handled since ListIdle makes the session active again.
		removed, removeErr := h.sessions.RemoveIf(ctx, s.Conversation(), read)
		if removeErr != nil {
			errList = append(errList, removeErr)
			continue
		}
		if removed {
			expired = append(expired, s.Conversation())
		}
	}

	return expired, errors.Join(errList...)
}
