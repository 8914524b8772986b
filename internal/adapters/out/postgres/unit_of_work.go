// Package postgres provides the GORM-based Unit of Work implementation.
//
// A unit of work owns at most one database transaction. Repositories obtained
// from it route through that transaction while it is active and through the
// shared connection otherwise, so command handlers never care which mode they
// run in.
//
// Atomic adds one level of nesting for the outbox publish loop: when a
// transaction is already active it runs the callback inside a savepoint, so a
// failed publish attempt rolls back only its own writes while the outer
// transaction keeps its row locks. Without an active transaction it runs the
// callback in a transaction of its own.
package postgres

import (
	"context"

	"orderflow/internal/adapters/out/postgres/eventrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each business operation gets a fresh instance, so
// concurrent operations never share transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the order and
// outbox repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling Begin on a unit of work that already
// has an active transaction is a no-op, so a handler can be composed into a
// larger transactional flow without nesting checks.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the active transaction.
// Returns gorm.ErrInvalidTransaction when none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the active transaction.
// Returns gorm.ErrInvalidTransaction when none is active, which makes the
// usual `defer uow.Rollback(ctx)` after a successful commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// Atomic runs fn atomically. Inside an active transaction it uses a
// savepoint: fn's writes either all land in the outer transaction or are
// rolled back to the savepoint, leaving the outer transaction and its locks
// intact. Without an active transaction fn gets a transaction of its own.
//
// Repositories obtained from the unit of work during fn operate on the
// savepoint scope.
func (uow *GormUnitOfWork) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	conn := uow.db
	if uow.tx != nil {
		conn = uow.tx
	}

	// gorm's Transaction on an open transaction nests via SAVEPOINT.
	return conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prev := uow.tx
		uow.tx = tx
		defer func() {
			uow.tx = prev
		}()

		return fn(ctx)
	})
}

// OrderRepository returns an order repository bound to the active transaction,
// or to the shared connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// OrderEventRepository returns an outbox repository bound to the active
// transaction, or to the shared connection when none is active.
func (uow *GormUnitOfWork) OrderEventRepository() ports.OrderEventRepository {
	return eventrepo.NewGormOrderEventRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
