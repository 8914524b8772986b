package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// PublishPendingEventsCommandHandler drains the outbox.
//
// One sweep opens a transaction and claims every unpublished event with a row
// lock, so concurrent sweeps never pick up the same events. Each claimed
// event is then handled in its own savepoint: flip the published flag, write
// it back, push the message to the broker. A failure rolls back only that
// event's savepoint; the sweep carries on and the event stays claimed until
// the outer transaction ends, after which the next sweep retries it.
type PublishPendingEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	metrics    ports.OrderMetrics
	logger     *slog.Logger
}

// NewPublishPendingEventsCommandHandler creates a handler for outbox sweeps.
func NewPublishPendingEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	metrics ports.OrderMetrics,
	logger *slog.Logger,
) PublishPendingEventsCommandHandler {
	return PublishPendingEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger.With("component", "publish_pending_events_handler"),
	}
}

// Handle runs one outbox sweep. Per-event failures are logged and counted but
// never abort the sweep; only claiming or committing the sweep itself can
// return an error.
func (h *PublishPendingEventsCommandHandler) Handle(ctx context.Context, cmd PublishPendingEventsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	events, err := uow.OrderEventRepository().FindUnpublished(ctx)
	if err != nil {
		return err
	}

	h.metrics.PendingEvents(ctx, len(events))

	if len(events) > 0 {
		h.logger.InfoContext(ctx, "Publishing pending events", "count", len(events))
	}

	for _, event := range events {
		if err = h.publishOne(ctx, uow, event); err != nil {
			h.logger.ErrorContext(ctx, "Failed to publish event",
				"eventId", event.ID(),
				"orderId", event.OrderID(),
				"type", event.Type().String(),
				"error", err)
			h.metrics.IncrementFailedEvents(ctx)
		}
	}

	return uow.Commit(ctx)
}

func (h *PublishPendingEventsCommandHandler) publishOne(
	ctx context.Context,
	uow OutboxUoW,
	event *order.Event,
) error {
	claimed := false

	err := uow.Atomic(ctx, func(ctx context.Context) error {
		if err := event.MarkPublished(); err != nil {
			return err
		}
		claimed = true

		if err := uow.OrderEventRepository().Update(ctx, event); err != nil {
			return err
		}

		return h.publisher.Publish(ctx, event)
	})

	if err != nil && claimed {
		// The savepoint rolled the row back; revert the entity to match.
		_ = event.UnmarkPublished()
	}

	return err
}
