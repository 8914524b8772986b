package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// MarkDeliveredCommandHandler handles completion of an order.
type MarkDeliveredCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	trigger    ports.PublishTrigger
	logger     *slog.Logger
}

// NewMarkDeliveredCommandHandler creates a handler for the delivered transition.
func NewMarkDeliveredCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	trigger ports.PublishTrigger,
	logger *slog.Logger,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		trigger:    trigger,
		logger:     logger.With("component", "mark_delivered_handler"),
	}
}

// Handle moves the order to DELIVERED and records a DELIVERED event.
// Redelivered or out-of-order requests are skipped without error.
func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyTransition(ctx, h.uowFactory, h.clock, h.trigger, h.logger,
		cmd.OrderID(), (*order.Order).MarkDelivered)
}
