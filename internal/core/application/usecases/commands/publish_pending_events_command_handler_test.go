package commands_test

import (
	"errors"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func unpublishedEvent(t *testing.T, id, orderID int64, eventType order.EventType) *order.Event {
	t.Helper()
	e, err := order.RestoreEvent(id, orderID, eventType, time.Now(), false)
	require.NoError(t, err)
	return e
}

func TestPublishPendingEventsCommandHandler_Handle_EmptyOutbox(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPublishPendingEventsCommand()
	require.NoError(t, err)

	eventRepo := new(MockOrderEventRepository)
	uow := new(MockUoW)
	metrics := new(MockOrderMetrics)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderEventRepository").Return(eventRepo).Once(),
		eventRepo.On("FindUnpublished", mock.Anything).Return([]*order.Event{}, nil).Once(),
		metrics.On("PendingEvents", mock.Anything, 0).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewPublishPendingEventsCommandHandler(factory, publisher, metrics, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	metrics.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPublishPendingEventsCommandHandler_Handle_PublishesAll(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPublishPendingEventsCommand()
	require.NoError(t, err)

	first := unpublishedEvent(t, 1, 10, order.EventCreated)
	second := unpublishedEvent(t, 2, 10, order.EventPickingStarted)

	eventRepo := new(MockOrderEventRepository)
	uow := new(MockUoW)
	metrics := new(MockOrderMetrics)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderEventRepository").Return(eventRepo).Once(),
		eventRepo.On("FindUnpublished", mock.Anything).
			Return([]*order.Event{first, second}, nil).Once(),
		metrics.On("PendingEvents", mock.Anything, 2).Once(),
		uow.On("Atomic", mock.Anything).Once(),
		uow.On("OrderEventRepository").Return(eventRepo).Once(),
		eventRepo.On("Update", mock.Anything, first).Return(nil).Once(),
		publisher.On("Publish", mock.Anything, first).Return(nil).Once(),
		uow.On("Atomic", mock.Anything).Once(),
		uow.On("OrderEventRepository").Return(eventRepo).Once(),
		eventRepo.On("Update", mock.Anything, second).Return(nil).Once(),
		publisher.On("Publish", mock.Anything, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPublishPendingEventsCommandHandler(factory, publisher, metrics, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	require.True(t, first.Published())
	require.True(t, second.Published())
	metrics.AssertNotCalled(t, "IncrementFailedEvents", mock.Anything)
	eventRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPublishPendingEventsCommandHandler_Handle_FailureDoesNotAbortSweep(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPublishPendingEventsCommand()
	require.NoError(t, err)

	failing := unpublishedEvent(t, 1, 10, order.EventCreated)
	healthy := unpublishedEvent(t, 2, 11, order.EventCreated)

	eventRepo := new(MockOrderEventRepository)
	uow := new(MockUoW)
	metrics := new(MockOrderMetrics)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderEventRepository").Return(eventRepo)
	eventRepo.On("FindUnpublished", mock.Anything).
		Return([]*order.Event{failing, healthy}, nil).Once()
	metrics.On("PendingEvents", mock.Anything, 2).Once()
	uow.On("Atomic", mock.Anything).Twice()
	eventRepo.On("Update", mock.Anything, failing).Return(nil).Once()
	publisher.On("Publish", mock.Anything, failing).Return(errors.New("broker unavailable")).Once()
	metrics.On("IncrementFailedEvents", mock.Anything).Once()
	eventRepo.On("Update", mock.Anything, healthy).Return(nil).Once()
	publisher.On("Publish", mock.Anything, healthy).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPublishPendingEventsCommandHandler(factory, publisher, metrics, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	require.True(t, healthy.Published())
	// The failed claim was rolled back, so the entity must match its row.
	require.False(t, failing.Published())
	metrics.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPublishPendingEventsCommandHandler_Handle_UpdateFailureCountsAsFailed(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPublishPendingEventsCommand()
	require.NoError(t, err)

	events := []*order.Event{
		unpublishedEvent(t, 1, 10, order.EventCreated),
		unpublishedEvent(t, 2, 10, order.EventPickingStarted),
		unpublishedEvent(t, 3, 11, order.EventCreated),
	}

	eventRepo := new(MockOrderEventRepository)
	uow := new(MockUoW)
	metrics := new(MockOrderMetrics)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderEventRepository").Return(eventRepo)
	eventRepo.On("FindUnpublished", mock.Anything).Return(events, nil).Once()
	metrics.On("PendingEvents", mock.Anything, 3).Once()
	uow.On("Atomic", mock.Anything).Times(3)
	eventRepo.On("Update", mock.Anything, events[0]).Return(nil).Once()
	publisher.On("Publish", mock.Anything, events[0]).Return(nil).Once()
	eventRepo.On("Update", mock.Anything, events[1]).Return(errors.New("row already published")).Once()
	metrics.On("IncrementFailedEvents", mock.Anything).Once()
	eventRepo.On("Update", mock.Anything, events[2]).Return(nil).Once()
	publisher.On("Publish", mock.Anything, events[2]).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPublishPendingEventsCommandHandler(factory, publisher, metrics, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, events[1])
	require.True(t, events[0].Published())
	require.False(t, events[1].Published())
	require.True(t, events[2].Published())
	metrics.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPublishPendingEventsCommandHandler_Handle_FindError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPublishPendingEventsCommand()
	require.NoError(t, err)

	eventRepo := new(MockOrderEventRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderEventRepository").Return(eventRepo).Once(),
		eventRepo.On("FindUnpublished", mock.Anything).
			Return(nil, errors.New("lock timeout")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPublishPendingEventsCommandHandler(factory, new(MockEventPublisher), new(MockOrderMetrics), discardLogger())
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}
