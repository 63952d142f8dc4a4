package commands

import (
	"context"

	"shipquote/internal/core/domain/model/session"
	"shipquote/internal/core/domain/model/tier"
	"shipquote/internal/core/ports"
)

// StartIntakeCommandHandler creates sessions offering the tiers of its catalog.
type StartIntakeCommandHandler struct {
	sessions ports.SessionRepository
	catalog  *tier.Catalog
}

func NewStartIntakeCommandHandler(sessions ports.SessionRepository, catalog *tier.Catalog) StartIntakeCommandHandler {
	return StartIntakeCommandHandler{
		sessions: sessions,
		catalog:  catalog,
	}
}

// Handle stores a fresh session and returns the state it waits in.
func (h *StartIntakeCommandHandler) Handle(ctx context.Context, cmd StartIntakeCommand) (session.State, error) {
	if err := cmd.Validate(); err != nil {
		return session.Unknown, err
	}

	s, err := session.NewSession(cmd.Conversation(), cmd.Mode(), h.catalog)
	if err != nil {
		return session.Unknown, err
	}

	if err = h.sessions.Put(ctx, s); err != nil {
		return session.Unknown, err
	}

	return s.State(), nil
}
