package commands

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrStartPickingCommandIsNotConstructed = errors.New(
	"StartPickingCommand must be created via NewStartPickingCommand constructor",
)

// StartPickingCommand represents a request to move an order into picking.
type StartPickingCommand struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewStartPickingCommand creates a command to start picking the given order.
func NewStartPickingCommand(orderID int64) (StartPickingCommand, error) {
	if orderID <= 0 {
		return StartPickingCommand{}, errs.NewValueIsRequiredError("orderID")
	}

	return StartPickingCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPickingCommand) Validate() error {
	return c.guard.Validate(ErrStartPickingCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c StartPickingCommand) OrderID() int64 {
	return c.orderID
}
