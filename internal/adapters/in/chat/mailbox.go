package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrMailboxClosed is returned by Post after Close.
var ErrMailboxClosed = errors.New("mailbox is closed")

// HandleFunc processes one update.
type HandleFunc func(ctx context.Context, u Update) error

// Mailbox queues updates per conversation. A conversation with queued updates
// owns exactly one goroutine that handles them in arrival order and exits once
// the queue is empty, so a slow route quote holds up only its own conversation.
type Mailbox struct {
	ctx    context.Context
	handle HandleFunc
	logger *slog.Logger

	mu     sync.Mutex
	queues map[int64][]Update
	closed bool
	wg     sync.WaitGroup
}

// NewMailbox creates a mailbox whose handlers run with ctx.
func NewMailbox(ctx context.Context, handle HandleFunc, logger *slog.Logger) *Mailbox {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailbox{
		ctx:    ctx,
		handle: handle,
		logger: logger.With("component", "chat_mailbox"),
		queues: make(map[int64][]Update),
	}
}

// Post enqueues u behind earlier updates of the same conversation.
func (m *Mailbox) Post(u Update) error {
	if err := u.Conversation.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrMailboxClosed
	}

	key := u.Conversation.Int64()
	queue, running := m.queues[key]
	m.queues[key] = append(queue, u)

	if !running {
		m.wg.Add(1)
		go m.drain(key)
	}
	return nil
}

// Active returns the number of conversations with a running worker.
func (m *Mailbox) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues)
}

// Close stops accepting updates and waits until every queued update was handled.
func (m *Mailbox) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.wg.Wait()
}

// drain runs while the conversation's queue is non-empty. The map entry exists
// exactly as long as the worker does.
func (m *Mailbox) drain(key int64) {
	defer m.wg.Done()

	for {
		m.mu.Lock()
		queue := m.queues[key]
		if len(queue) == 0 {
			delete(m.queues, key)
			m.mu.Unlock()
			return
		}
		u := queue[0]
		queue[0] = Update{}
		m.queues[key] = queue[1:]
		m.mu.Unlock()

		m.handleOne(u)
	}
}

func (m *Mailbox) handleOne(u Update) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.ErrorContext(m.ctx, "update handler panicked",
				"conversation_id", u.Conversation.String(),
				"panic", fmt.Sprint(r),
			)
		}
	}()

	if err := m.handle(m.ctx, u); err != nil {
		m.logger.ErrorContext(m.ctx, "update not handled",
			"conversation_id", u.Conversation.String(),
			"error", err,
		)
	}
}
