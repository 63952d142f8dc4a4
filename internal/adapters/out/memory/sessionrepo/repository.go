// Package sessionrepo keeps live intake sessions in process memory. Sessions
// are not durable: a restart drops every dialogue in progress.
package sessionrepo

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/session"
	"shipquote/internal/core/ports"
	"shipquote/internal/pkg/errs"
)

// Repository stores copies, so a caller mutating a session it obtained from
// Get never races with another goroutine; changes become visible on Put.
type Repository struct {
	mu       sync.RWMutex
	sessions map[int64]*session.Session
}

func NewRepository() *Repository {
	return &Repository{
		sessions: make(map[int64]*session.Session),
	}
}

func (r *Repository) Put(_ context.Context, s *session.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.Conversation().Int64()] = s.Clone()
	return nil
}

func (r *Repository) Update(_ context.Context, s *session.Session, read session.Revision) error {
	if err := s.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := s.Conversation().Int64()
	if !read.Matches(r.sessions[key]) {
		return fmt.Errorf("%w: conversation %s", ports.ErrSessionChanged, s.Conversation())
	}

	r.sessions[key] = s.Clone()
	return nil
}

func (r *Repository) Get(_ context.Context, conversation kernel.ConversationID) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[conversation.Int64()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("conversation", conversation.String())
	}

	return s.Clone(), nil
}

func (r *Repository) Remove(_ context.Context, conversation kernel.ConversationID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[conversation.Int64()]
	delete(r.sessions, conversation.Int64())
	return ok, nil
}

func (r *Repository) RemoveIf(
	_ context.Context,
	conversation kernel.ConversationID,
	read session.Revision,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !read.Matches(r.sessions[conversation.Int64()]) {
		return false, nil
	}
	delete(r.sessions, conversation.Int64())
	return true, nil
}

// ListIdle returns copies ordered by conversation.
func (r *Repository) ListIdle(_ context.Context, now time.Time, timeout time.Duration) ([]*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*session.Session
	for _, s := range r.sessions {
		if s.IsIdle(now, timeout) {
			result = append(result, s.Clone())
		}
	}

	slices.SortFunc(result, func(a, b *session.Session) int {
		return cmp.Compare(a.Conversation().Int64(), b.Conversation().Int64())
	})
	return result, nil
}

// Len is the number of live sessions.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
