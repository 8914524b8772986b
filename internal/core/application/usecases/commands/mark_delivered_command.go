package commands

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand represents a request to complete an order.
type MarkDeliveredCommand struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to mark the given order delivered.
func NewMarkDeliveredCommand(orderID int64) (MarkDeliveredCommand, error) {
	if orderID <= 0 {
		return MarkDeliveredCommand{}, errs.NewValueIsRequiredError("orderID")
	}

	return MarkDeliveredCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c MarkDeliveredCommand) OrderID() int64 {
	return c.orderID
}
