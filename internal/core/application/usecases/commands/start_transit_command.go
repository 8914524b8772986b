package commands

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrStartTransitCommandIsNotConstructed = errors.New(
	"StartTransitCommand must be created via NewStartTransitCommand constructor",
)

// StartTransitCommand represents a request to move an order into transit.
type StartTransitCommand struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewStartTransitCommand creates a command to start transit for the given order.
func NewStartTransitCommand(orderID int64) (StartTransitCommand, error) {
	if orderID <= 0 {
		return StartTransitCommand{}, errs.NewValueIsRequiredError("orderID")
	}

	return StartTransitCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartTransitCommand) Validate() error {
	return c.guard.Validate(ErrStartTransitCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c StartTransitCommand) OrderID() int64 {
	return c.orderID
}
