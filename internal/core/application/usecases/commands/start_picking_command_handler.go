package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// StartPickingCommandHandler handles the transition of an order into picking.
type StartPickingCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	trigger    ports.PublishTrigger
	logger     *slog.Logger
}

// NewStartPickingCommandHandler creates a handler for the picking transition.
func NewStartPickingCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	trigger ports.PublishTrigger,
	logger *slog.Logger,
) StartPickingCommandHandler {
	return StartPickingCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		trigger:    trigger,
		logger:     logger.With("component", "start_picking_handler"),
	}
}

// Handle moves the order to PICKING and records a PICKING_STARTED event.
// Redelivered or out-of-order requests are skipped without error.
func (h *StartPickingCommandHandler) Handle(ctx context.Context, cmd StartPickingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyTransition(ctx, h.uowFactory, h.clock, h.trigger, h.logger,
		cmd.OrderID(), (*order.Order).StartPicking)
}
