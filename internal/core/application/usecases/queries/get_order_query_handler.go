package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// itemRow mirrors the JSON layout of the items column written by the order
// repository.
type itemRow struct {
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

// GetOrderQueryHandler reads one order straight from the database.
//
// Example:
//
//	handler := queries.NewGetOrderQueryHandler(db)
//	query, _ := queries.NewGetOrderQuery(42)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order view queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle fetches the order view. Returns an ObjectNotFoundError when no order
// with the requested id exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		resp      GetOrderQueryResponse
		itemsJSON []byte
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			customer_address,
			items,
			status
		FROM orders
		WHERE id = ?
	`, query.OrderID()).Row()

	err := row.Scan(
		&resp.ID,
		&resp.CustomerName,
		&resp.CustomerAddress,
		&itemsJSON,
		&resp.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var rows []itemRow
	if err = json.Unmarshal(itemsJSON, &rows); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Items = make([]GetOrderItemResponse, 0, len(rows))
	for _, item := range rows {
		resp.Items = append(resp.Items, GetOrderItemResponse{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		})
	}

	return resp, nil
}
