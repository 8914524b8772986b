package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// EventPublisher hands a lifecycle event to the message broker.
// Implementations publish synchronously: when Publish returns nil the broker
// has accepted the message, so the caller's surrounding transaction may
// commit the published flag.
type EventPublisher interface {
	Publish(ctx context.Context, event *order.Event) error
}
