package commands_test

import (
	"context"
	"time"

	"shipquote/internal/core/application/usecases/commands"
	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/order"
	"shipquote/internal/core/domain/model/route"
	"shipquote/internal/core/domain/model/session"
	"shipquote/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByConversation(
	ctx context.Context,
	conversation kernel.ConversationID,
) ([]*order.Order, error) {
	args := m.Called(ctx, conversation)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Put(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *session.Session, read session.Revision) error {
	args := m.Called(ctx, s, read)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, conversation kernel.ConversationID) (*session.Session, error) {
	args := m.Called(ctx, conversation)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *MockSessionRepository) Remove(ctx context.Context, conversation kernel.ConversationID) (bool, error) {
	args := m.Called(ctx, conversation)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) RemoveIf(
	ctx context.Context,
	conversation kernel.ConversationID,
	read session.Revision,
) (bool, error) {
	args := m.Called(ctx, conversation, read)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) ListIdle(
	ctx context.Context,
	now time.Time,
	timeout time.Duration,
) ([]*session.Session, error) {
	args := m.Called(ctx, now, timeout)
	sessions, _ := args.Get(0).([]*session.Session)
	return sessions, args.Error(1)
}

type MockRouteProvider struct{ mock.Mock }

func (m *MockRouteProvider) Quote(ctx context.Context, origin, destination string) (route.Quote, error) {
	args := m.Called(ctx, origin, destination)
	q, _ := args.Get(0).(route.Quote)
	return q, args.Error(1)
}

func inState(state session.State) any {
	return mock.MatchedBy(func(s *session.Session) bool { return s.State() == state })
}
