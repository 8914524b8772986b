package commands_test

import (
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartTransitCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cmd, err := commands.NewStartTransitCommand(42)
	require.NoError(t, err)

	existing := restoredOrder(t, 42, order.Picking)

	orderRepo := new(MockOrderRepository)
	eventRepo := new(MockOrderEventRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetOrFail", mock.Anything, int64(42)).Return(existing, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, existing).Return(nil).Once(),
		uow.On("OrderEventRepository").Return(eventRepo).Once(),
		eventRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *order.Event) bool {
			return e.OrderID() == 42 &&
				e.Type() == order.EventTransitStarted &&
				e.CreatedAt().Equal(now)
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	trigger := new(countingTrigger)

	h := commands.NewStartTransitCommandHandler(factory, fixedClock{now: now}, trigger, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.InTransit, existing.Status())
	require.Equal(t, 1, trigger.notified)
	uow.AssertExpectations(t)
}

func TestStartTransitCommandHandler_Handle_SkipsIncompatibleStatus(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewStartTransitCommand(42)
	require.NoError(t, err)

	for _, status := range []order.Status{order.Created, order.InTransit, order.Delivered} {
		t.Run(status.String(), func(t *testing.T) {
			existing := restoredOrder(t, 42, status)

			orderRepo := new(MockOrderRepository)
			uow := new(MockUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(orderRepo).Once(),
				orderRepo.On("GetOrFail", mock.Anything, int64(42)).Return(existing, nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockUoWFactory)
			factory.On("Create").Return(uow).Once()
			trigger := new(countingTrigger)

			h := commands.NewStartTransitCommandHandler(factory, fixedClock{now: time.Now()}, trigger, discardLogger())
			require.NoError(t, h.Handle(ctx, cmd))
			require.Equal(t, status, existing.Status())
			require.Zero(t, trigger.notified)
			uow.AssertExpectations(t)
		})
	}
}
