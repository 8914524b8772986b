package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and transaction-bound repositories.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction. Calling Begin while a
	// transaction is already active is a no-op, so nested use cases can share
	// the caller's transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// Atomic runs fn as an isolated unit of work, aware of whether a
	// transaction is already active on this UnitOfWork. With no open
	// transaction it wraps fn in a full transaction. With one open it runs fn
	// under a savepoint: an error rolls back only fn's writes while the outer
	// transaction, and any row locks it holds, stay intact.
	Atomic(ctx context.Context, fn func(ctx context.Context) error) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction started by Begin().
	OrderRepository() OrderRepository

	// OrderEventRepository returns an OrderEventRepository bound to the
	// current transaction started by Begin().
	OrderEventRepository() OrderEventRepository
}
