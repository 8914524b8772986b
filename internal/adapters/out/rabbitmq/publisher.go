package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PublishChannel is the subset of AMQP channel operations the publisher needs.
type PublishChannel interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
}

// EventPublisher implements ports.EventPublisher against RabbitMQ.
//
// Publish is synchronous from the caller's point of view: the outbox loop
// flips the published flag in the same savepoint, so an error returned here
// rolls that flip back and the event is retried on the next sweep. Messages
// are persistent, surviving a broker restart once routed to the durable
// queue.
type EventPublisher struct {
	ch PublishChannel
}

// NewEventPublisher creates a publisher on the given channel.
func NewEventPublisher(ch PublishChannel) *EventPublisher {
	return &EventPublisher{ch: ch}
}

// Publish sends one order event to the order events exchange.
func (p *EventPublisher) Publish(ctx context.Context, event *order.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(messageFromDomain(event))
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx, ExchangeName, RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish event %d: %w", event.ID(), err)
	}

	return nil
}
