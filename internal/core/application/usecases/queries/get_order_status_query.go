package queries

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery retrieves only the current status of one order.
// Cheaper than the full order view for polling clients.
type GetOrderStatusQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a status query for the given order id.
func NewGetOrderStatusQuery(orderID int64) (GetOrderStatusQuery, error) {
	if orderID <= 0 {
		return GetOrderStatusQuery{}, errs.NewValueIsRequiredError("orderID")
	}

	return GetOrderStatusQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderStatusQuery) OrderID() int64 {
	return q.orderID
}

// GetOrderStatusQueryResponse carries the order's current status name.
type GetOrderStatusQueryResponse struct {
	ID     int64
	Status string
}
