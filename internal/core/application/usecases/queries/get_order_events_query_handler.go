package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrderEventsQueryHandler reads the event history of one order.
// An empty result means the order has no recorded events, which for an
// existing order cannot happen: creation always writes the first event.
type GetOrderEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderEventsQueryHandler creates a handler for event history queries.
func NewGetOrderEventsQueryHandler(db *gorm.DB) GetOrderEventsQueryHandler {
	return GetOrderEventsQueryHandler{db: db}
}

// Handle fetches all events of the order, oldest first.
func (h GetOrderEventsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderEventsQuery,
) ([]GetOrderEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]GetOrderEventsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			event_type,
			created_at,
			published
		FROM order_events
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event GetOrderEventsQueryResponse
		err = rows.Scan(
			&event.ID,
			&event.OrderID,
			&event.Type,
			&event.CreatedAt,
			&event.Published,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
