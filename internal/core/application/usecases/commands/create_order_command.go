package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new order.
// Encapsulates the validated order details: customer, address, line items.
//
// Example:
//
//	item, _ := order.NewItem(7, 2, 5000)
//	details, _ := order.NewDetails("Alice", "1 Main St", []order.Item{item})
//	cmd, err := commands.NewCreateOrderCommand(details)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	details order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// The details must have been built through order.NewDetails, so all field
// validation has already happened.
func NewCreateOrderCommand(details order.Details) (CreateOrderCommand, error) {
	if err := details.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Details returns the validated order contents.
func (c CreateOrderCommand) Details() order.Details {
	return c.details
}
