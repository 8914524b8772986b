package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Persists the new order and its CREATED outbox event in one transaction,
// then nudges the outbox publisher so the event goes out without waiting for
// the next periodic sweep.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	trigger    ports.PublishTrigger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	trigger ports.PublishTrigger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		trigger:    trigger,
	}
}

// Handle processes the order creation command and returns the assigned order id.
// The order row and the CREATED event row commit atomically; if either write
// fails the whole transaction rolls back and no event can leak.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	newOrder, err := order.NewOrder(cmd.Details())
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return 0, err
	}

	event, err := newOrder.CreatedEvent(h.clock.Now())
	if err != nil {
		return 0, err
	}

	if err = uow.OrderEventRepository().Add(ctx, event); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.trigger.Notify()
	return newOrder.ID(), nil
}
