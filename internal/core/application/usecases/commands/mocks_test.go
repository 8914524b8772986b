package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(_ context.Context, _ int64) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetOrFail(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Exists(_ context.Context, _ int64) (bool, error) {
	return false, errors.New("not implemented in mock")
}

type MockOrderEventRepository struct{ mock.Mock }

func (m *MockOrderEventRepository) Add(ctx context.Context, e *order.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockOrderEventRepository) Update(ctx context.Context, e *order.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockOrderEventRepository) FindUnpublished(ctx context.Context) ([]*order.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Event), args.Error(1)
}

func (m *MockOrderEventRepository) FindByOrderID(_ context.Context, _ int64) ([]*order.Event, error) {
	return nil, errors.New("not implemented in mock")
}

// MockUoW satisfies both commands.UoW and commands.OutboxUoW. Atomic records
// the call and runs the callback directly, mirroring the savepoint wrapper's
// pass-through of the callback's error.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OrderEventRepository() ports.OrderEventRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderEventRepository)
}

func (m *MockUoW) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, e *order.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockOrderMetrics struct{ mock.Mock }

func (m *MockOrderMetrics) PendingEvents(ctx context.Context, count int) {
	m.Called(ctx, count)
}

func (m *MockOrderMetrics) IncrementFailedEvents(ctx context.Context) {
	m.Called(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type countingTrigger struct{ notified int }

func (t *countingTrigger) Notify() { t.notified++ }

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
