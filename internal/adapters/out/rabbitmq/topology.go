package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Broker topology. One durable direct exchange carries all order events; the
// error queue receives messages the consumer gave up on, enriched with
// diagnostic headers, and is bound to the same exchange under its own routing
// key.
const (
	ExchangeName    = "order-events-exchange"
	RoutingKey      = "order-events"
	QueueName       = "order-events-queue"
	ErrorQueueName  = "order-events-queue.error"
	ErrorRoutingKey = "order-events-queue.error"
)

// TopologyChannel is the subset of AMQP channel operations needed to declare
// the broker topology.
type TopologyChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// DeclareTopology declares the exchange, the main queue and the error queue,
// and binds both queues. Declarations are idempotent: every instance declares
// the same topology at startup and the broker deduplicates.
func DeclareTopology(ch TopologyChannel) error {
	if err := ch.ExchangeDeclare(
		ExchangeName,
		"direct",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(
		QueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(QueueName, RoutingKey, ExchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	if _, err := ch.QueueDeclare(
		ErrorQueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("declare error queue: %w", err)
	}

	if err := ch.QueueBind(ErrorQueueName, ErrorRoutingKey, ExchangeName, false, nil); err != nil {
		return fmt.Errorf("bind error queue: %w", err)
	}

	return nil
}
