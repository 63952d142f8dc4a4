package ports

import (
	"context"
	"errors"
	"time"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/session"
)

// ErrSessionChanged is returned when a session was changed, replaced or removed
// after the caller read it.
var ErrSessionChanged = errors.New("session changed since it was read")

// SessionRepository holds the live, non-terminal session of each conversation.
// At most one session exists per conversation.
type SessionRepository interface {
	// Put stores the session, replacing any session of the same conversation.
	Put(ctx context.Context, s *session.Session) error

	// Update stores s only while the stored session still matches read, the
	// revision s had when it was loaded. Otherwise ErrSessionChanged is returned.
	Update(ctx context.Context, s *session.Session, read session.Revision) error

	// Get returns the live session. errs.ErrObjectNotFound is returned when there is none.
	Get(ctx context.Context, conversation kernel.ConversationID) (*session.Session, error)

	// Remove drops the session and reports whether one was present.
	Remove(ctx context.Context, conversation kernel.ConversationID) (bool, error)

	// RemoveIf drops the session only while it still matches read and reports
	// whether it did.
	RemoveIf(ctx context.Context, conversation kernel.ConversationID, read session.Revision) (bool, error)

	// ListIdle returns the sessions that have not changed for longer than timeout.
	ListIdle(ctx context.Context, now time.Time, timeout time.Duration) ([]*session.Session, error)
}
