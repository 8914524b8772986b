// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// EventRepoFactory provides access to the outbox repository within a transaction.
	EventRepoFactory interface {
		OrderEventRepository() ports.OrderEventRepository
	}

	// UoW manages transactions spanning the order aggregate and its outbox.
	// Every transition command writes both in one transaction: that is the
	// outbox pattern's whole guarantee, so there is no order-only variant.
	UoW interface {
		TxManager
		OrderRepoFactory
		EventRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}

	// OutboxUoW additionally exposes savepoint-scoped execution for the
	// publish loop, which isolates each event's publish attempt inside the
	// sweep's claiming transaction.
	OutboxUoW interface {
		UoW
		Atomic(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// OutboxUoWFactory creates unit of work instances for the publish loop.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
