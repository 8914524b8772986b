package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All reads take a row-level exclusive lock (read-before-mutate discipline),
// so a transition use case and a concurrent redelivery racing on the same
// order cannot lose updates.
type OrderRepository interface {
	// Add persists a new order aggregate and assigns its database-generated
	// identity back onto the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id under a row lock.
	// Returns nil without error when the order does not exist.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetOrFail retrieves an order by id under a row lock.
	// Returns an ObjectNotFoundError when the order does not exist.
	GetOrFail(ctx context.Context, id int64) (*order.Order, error)

	// Exists reports whether an order with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)
}
