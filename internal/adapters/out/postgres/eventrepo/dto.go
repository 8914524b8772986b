// Package eventrepo provides data transfer objects and mapping functions for
// the order event outbox. Rows are append-only: the only mutation ever
// applied is flipping the published flag.
package eventrepo

import (
	"time"

	"orderflow/internal/core/domain/model/order"
)

// EventDTO represents one outbox row. The bigserial id doubles as the
// publication order: the publish loop drains rows sorted by id, so consumers
// see one order's events in the sequence they were written. A partial index
// on unpublished rows keeps the drain query cheap as the table grows.
type EventDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   int64     `gorm:"not null;index"`
	EventType string    `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time `gorm:"not null"`
	Published bool      `gorm:"not null;default:false;index:idx_order_events_unpublished,where:published = false"`
}

// TableName specifies the database table name for outbox rows.
func (EventDTO) TableName() string {
	return "order_events"
}

// fromDomain converts an event entity to its database representation.
func fromDomain(event *order.Event) EventDTO {
	return EventDTO{
		ID:        event.ID(),
		OrderID:   event.OrderID(),
		EventType: event.Type().String(),
		CreatedAt: event.CreatedAt(),
		Published: event.Published(),
	}
}

// toDomain converts a database row back to an event entity.
func toDomain(dto EventDTO) (*order.Event, error) {
	eventType := order.EventTypeFromString(dto.EventType)
	if err := eventType.Validate(); err != nil {
		return nil, err
	}

	return order.RestoreEvent(dto.ID, dto.OrderID, eventType, dto.CreatedAt, dto.Published)
}
