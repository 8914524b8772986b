package queries

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderEventsQueryIsNotConstructed = errors.New(
	"GetOrderEventsQuery must be created via NewGetOrderEventsQuery constructor",
)

// GetOrderEventsQuery retrieves the recorded event history of one order, in
// the order the events were written to the outbox.
type GetOrderEventsQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderEventsQuery creates an event history query for the given order id.
func NewGetOrderEventsQuery(orderID int64) (GetOrderEventsQuery, error) {
	if orderID <= 0 {
		return GetOrderEventsQuery{}, errs.NewValueIsRequiredError("orderID")
	}

	return GetOrderEventsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderEventsQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose history to fetch.
func (q GetOrderEventsQuery) OrderID() int64 {
	return q.orderID
}

// GetOrderEventsQueryResponse is one recorded lifecycle event.
type GetOrderEventsQueryResponse struct {
	ID        int64
	OrderID   int64
	Type      string
	CreatedAt time.Time
	Published bool
}
