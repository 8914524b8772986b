// Package rabbitmq provides the broker adapter: topology declaration, the
// outbox event publisher, and the consumer that advances order lifecycles
// from incoming events.
package rabbitmq

import (
	"encoding/json"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// OrderEventMessage is the wire representation of one order event.
// Timestamps travel as epoch milliseconds so consumers in any language can
// parse them without caring about time zone formatting.
type OrderEventMessage struct {
	ID        *int64 `json:"id"`
	OrderID   int64  `json:"orderId"`
	Type      string `json:"type"`
	CreatedAt int64  `json:"createdAt"`
	Published bool   `json:"published"`
}

// messageFromDomain converts an event entity to its wire representation.
// Events are published only after persistence, so the id is always set here;
// the pointer exists for symmetry with messages from writers that publish
// before persisting.
func messageFromDomain(event *order.Event) OrderEventMessage {
	var id *int64
	if eventID := event.ID(); eventID != 0 {
		id = &eventID
	}

	return OrderEventMessage{
		ID:        id,
		OrderID:   event.OrderID(),
		Type:      event.Type().String(),
		CreatedAt: event.CreatedAt().UnixMilli(),
		Published: event.Published(),
	}
}

// decodeMessage parses an incoming message body.
func decodeMessage(body []byte) (OrderEventMessage, error) {
	var msg OrderEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return OrderEventMessage{}, errs.NewValueIsInvalidErrorWithCause("messageBody", err)
	}

	if msg.OrderID <= 0 {
		return OrderEventMessage{}, errs.NewValueIsRequiredError("orderId")
	}

	return msg, nil
}
