package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler reads the current status of one order.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for order status queries.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle fetches the order status. Returns an ObjectNotFoundError when no
// order with the requested id exists.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	var resp GetOrderStatusQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, status
		FROM orders
		WHERE id = ?
	`, query.OrderID()).Row()

	err := row.Scan(&resp.ID, &resp.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	return resp, nil
}
