package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// DefaultMaxAttempts is how many times a delivery is dispatched before it
	// is parked in the error queue.
	DefaultMaxAttempts = 10

	// DefaultRetryDelay is the fixed pause between dispatch attempts.
	DefaultRetryDelay = 5 * time.Second
)

// HandlerFunc processes one order event. Handlers must be idempotent: the
// broker delivers at least once, so the same event can arrive again after a
// crash between processing and acknowledgement.
type HandlerFunc func(ctx context.Context, orderID int64) error

// ConsumeChannel is the subset of AMQP channel operations the consumer needs.
type ConsumeChannel interface {
	Consume(
		queue, consumer string,
		autoAck, exclusive, noLocal, noWait bool,
		args amqp.Table,
	) (<-chan amqp.Delivery, error)
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
}

// Consumer reads order events from the main queue and dispatches them by
// event type.
//
// Acknowledgement is manual and happens only after the delivery reached a
// terminal outcome: handled, skipped (no handler registered), or parked in
// the error queue. Retries run in-process with a fixed delay; the delivery is
// never rejected back to the broker, which would redeliver it immediately and
// spin on a persistent failure.
type Consumer struct {
	ch          ConsumeChannel
	handlers    map[order.EventType]HandlerFunc
	metrics     ports.OrderMetrics
	clock       ports.Clock
	logger      *slog.Logger
	maxAttempts int
	retryDelay  time.Duration
}

// NewConsumer creates a consumer dispatching to the given handlers.
// Event types without a handler are acknowledged untouched.
func NewConsumer(
	ch ConsumeChannel,
	handlers map[order.EventType]HandlerFunc,
	metrics ports.OrderMetrics,
	clock ports.Clock,
	logger *slog.Logger,
) *Consumer {
	return &Consumer{
		ch:          ch,
		handlers:    handlers,
		metrics:     metrics,
		clock:       clock,
		logger:      logger.With("component", "event_consumer"),
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
}

// WithRetryPolicy overrides the dispatch retry policy. Intended for tests and
// environments where the default five second pause is too slow or too fast.
func (c *Consumer) WithRetryPolicy(maxAttempts int, retryDelay time.Duration) *Consumer {
	if maxAttempts > 0 {
		c.maxAttempts = maxAttempts
	}
	if retryDelay > 0 {
		c.retryDelay = retryDelay
	}
	return c
}

// Start begins consuming from the main queue. Processing runs on a dedicated
// goroutine until ctx is cancelled or the delivery channel closes.
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.ch.Consume(
		QueueName,
		"",    // consumer tag, broker-generated
		false, // autoAck, acknowledgement is manual
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", QueueName, err)
	}

	go c.run(ctx, deliveries)
	return nil
}

func (c *Consumer) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "Consumer stopping", "reason", ctx.Err())
			return
		case delivery, ok := <-deliveries:
			if !ok {
				c.logger.WarnContext(ctx, "Delivery channel closed, consumer stopping")
				return
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	msg, err := decodeMessage(delivery.Body)
	if err != nil {
		// Malformed payloads park immediately; retrying cannot fix them.
		c.logger.ErrorContext(ctx, "Failed to decode message",
			"messageId", delivery.MessageId,
			"error", err)
		c.metrics.IncrementFailedEvents(ctx)
		c.park(ctx, delivery, err)
		return
	}

	eventType := order.EventTypeFromString(msg.Type)
	handler, ok := c.handlers[eventType]
	if !ok {
		c.logger.InfoContext(ctx, "No handler for event type, acknowledging",
			"type", msg.Type,
			"orderId", msg.OrderID)
		c.ack(ctx, delivery)
		return
	}

	if err = c.dispatchWithRetry(ctx, handler, msg); err != nil {
		c.park(ctx, delivery, err)
		return
	}

	c.ack(ctx, delivery)
}

func (c *Consumer) dispatchWithRetry(ctx context.Context, handler HandlerFunc, msg OrderEventMessage) error {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		lastErr = handler(ctx, msg.OrderID)
		if lastErr == nil {
			return nil
		}

		// Every failed dispatch counts, including ones a later attempt recovers.
		c.metrics.IncrementFailedEvents(ctx)
		c.logger.WarnContext(ctx, "Event dispatch failed",
			"orderId", msg.OrderID,
			"type", msg.Type,
			"attempt", attempt,
			"maxAttempts", c.maxAttempts,
			"error", lastErr)

		if attempt == c.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(c.retryDelay):
		}
	}

	return lastErr
}

// park moves an exhausted delivery to the error queue with diagnostic headers
// and acknowledges the original. If even the error-queue publish fails, the
// delivery is nacked with requeue as a last resort so the message is not
// lost.
func (c *Consumer) park(ctx context.Context, delivery amqp.Delivery, cause error) {
	publishing := deadLetterPublishing(delivery, cause, c.clock.Now())
	if err := c.ch.PublishWithContext(ctx, ExchangeName, ErrorRoutingKey, false, false, publishing); err != nil {
		c.logger.ErrorContext(ctx, "Failed to move message to error queue, requeueing",
			"messageId", delivery.MessageId,
			"error", err)
		if nackErr := delivery.Nack(false, true); nackErr != nil {
			c.logger.ErrorContext(ctx, "Failed to nack message", "error", nackErr)
		}
		return
	}

	c.logger.ErrorContext(ctx, "Moved message to error queue",
		"messageId", delivery.MessageId,
		"cause", cause.Error())
	c.ack(ctx, delivery)
}

func (c *Consumer) ack(ctx context.Context, delivery amqp.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.logger.ErrorContext(ctx, "Failed to ack message",
			"messageId", delivery.MessageId,
			"error", err)
	}
}
