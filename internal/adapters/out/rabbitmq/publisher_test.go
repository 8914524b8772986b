package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"orderflow/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublishChannel struct {
	exchange   string
	routingKey string
	publishing amqp.Publishing
	err        error
	calls      int
}

func (c *capturingPublishChannel) PublishWithContext(
	_ context.Context,
	exchange, key string,
	_, _ bool,
	msg amqp.Publishing,
) error {
	c.calls++
	c.exchange = exchange
	c.routingKey = key
	c.publishing = msg
	return c.err
}

func publishedEvent(t *testing.T) *order.Event {
	t.Helper()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	event, err := order.RestoreEvent(5, 42, order.EventPickingStarted, createdAt, true)
	require.NoError(t, err)
	return event
}

func TestEventPublisher_Publish(t *testing.T) {
	t.Run("sends persistent json to the order events exchange", func(t *testing.T) {
		ch := &capturingPublishChannel{}
		publisher := NewEventPublisher(ch)
		event := publishedEvent(t)

		err := publisher.Publish(t.Context(), event)
		require.NoError(t, err)

		assert.Equal(t, ExchangeName, ch.exchange)
		assert.Equal(t, RoutingKey, ch.routingKey)
		assert.Equal(t, "application/json", ch.publishing.ContentType)
		assert.Equal(t, amqp.Persistent, ch.publishing.DeliveryMode)
		assert.NotEmpty(t, ch.publishing.MessageId)

		var msg OrderEventMessage
		require.NoError(t, json.Unmarshal(ch.publishing.Body, &msg))
		require.NotNil(t, msg.ID)
		assert.Equal(t, int64(5), *msg.ID)
		assert.Equal(t, int64(42), msg.OrderID)
		assert.Equal(t, "PICKING_STARTED", msg.Type)
		assert.Equal(t, event.CreatedAt().UnixMilli(), msg.CreatedAt)
		assert.True(t, msg.Published)
	})

	t.Run("propagates broker errors", func(t *testing.T) {
		ch := &capturingPublishChannel{err: errors.New("channel closed")}
		publisher := NewEventPublisher(ch)

		err := publisher.Publish(t.Context(), publishedEvent(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "channel closed")
	})

	t.Run("rejects unconstructed events", func(t *testing.T) {
		ch := &capturingPublishChannel{}
		publisher := NewEventPublisher(ch)

		err := publisher.Publish(t.Context(), &order.Event{})
		require.Error(t, err)
		assert.Zero(t, ch.calls)
	})
}
