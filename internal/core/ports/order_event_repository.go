package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// OrderEventRepository defines the persistence contract for the event outbox.
// The outbox is append-only: events are added once, their published flag flips
// exactly once, and they are never deleted.
type OrderEventRepository interface {
	// Add persists a new unpublished event and assigns its database-generated
	// identity back onto the entity.
	Add(ctx context.Context, event *order.Event) error

	// Update persists the published flag of an existing event. It fails when
	// the stored flag is already true, preserving the exactly-once flip even
	// if the in-memory entity went stale.
	Update(ctx context.Context, event *order.Event) error

	// FindUnpublished returns all unpublished events ordered by insertion id,
	// acquired under an exclusive row lock scoped to the caller's transaction.
	// Concurrent publish cycles, on this instance or another, block on the
	// lock instead of claiming the same events twice.
	FindUnpublished(ctx context.Context) ([]*order.Event, error)

	// FindByOrderID returns the event history of one order, ordered by
	// insertion id. Read-only; takes no lock.
	FindByOrderID(ctx context.Context, orderID int64) ([]*order.Event, error)
}
