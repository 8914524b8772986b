package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// StartTransitCommandHandler handles the transition of an order into transit.
type StartTransitCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	trigger    ports.PublishTrigger
	logger     *slog.Logger
}

// NewStartTransitCommandHandler creates a handler for the transit transition.
func NewStartTransitCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	trigger ports.PublishTrigger,
	logger *slog.Logger,
) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		trigger:    trigger,
		logger:     logger.With("component", "start_transit_handler"),
	}
}

// Handle moves the order to IN_TRANSIT and records a TRANSIT_STARTED event.
// Redelivered or out-of-order requests are skipped without error.
func (h *StartTransitCommandHandler) Handle(ctx context.Context, cmd StartTransitCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyTransition(ctx, h.uowFactory, h.clock, h.trigger, h.logger,
		cmd.OrderID(), (*order.Order).StartTransit)
}
