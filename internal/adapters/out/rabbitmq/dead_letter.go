package rabbitmq

import (
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Diagnostic headers attached to messages parked in the error queue.
const (
	headerErrorRoot  = "x-error-root"
	headerErrorTrace = "x-error-trace"
	headerErrorTime  = "x-error-time"
)

// deadLetterPublishing builds the error-queue copy of a failed delivery.
// The original body and headers are preserved; three headers are added so an
// operator inspecting the error queue sees what failed and when without
// digging through logs.
func deadLetterPublishing(delivery amqp.Delivery, cause error, now time.Time) amqp.Publishing {
	headers := amqp.Table{}
	for key, value := range delivery.Headers {
		headers[key] = value
	}

	headers[headerErrorRoot] = rootCauseMessage(cause)
	headers[headerErrorTrace] = cause.Error()
	headers[headerErrorTime] = now.UTC().Format(time.RFC3339)

	return amqp.Publishing{
		ContentType:  delivery.ContentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    delivery.MessageId,
		Timestamp:    now,
		Headers:      headers,
		Body:         delivery.Body,
	}
}

// rootCauseMessage walks the error chain to its innermost error.
func rootCauseMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
