// Package queries contains read-only operations for the query side of the
// CQRS architecture. Query handlers read the database directly and return
// plain response structs, bypassing the domain model and its locks.
package queries

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full view of one order: customer data, line
// items and current status.
//
// Example:
//
//	query, err := queries.NewGetOrderQuery(42)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order id.
func NewGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderID")
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// GetOrderItemResponse is one line item in the order view.
type GetOrderItemResponse struct {
	ProductID  int64
	Quantity   int
	PriceCents int64
}

// GetOrderQueryResponse is the read model of one order.
type GetOrderQueryResponse struct {
	ID              int64
	CustomerName    string
	CustomerAddress string
	Items           []GetOrderItemResponse
	Status          string
}
