// Package otelmetrics implements the order metrics port on top of the
// OpenTelemetry metric API. With no meter provider configured the global
// no-op provider is used, so the pipeline runs unchanged with metrics off.
package otelmetrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// OrderMetrics records outbox pipeline measurements.
type OrderMetrics struct {
	pendingEvents metric.Int64Gauge
	failedEvents  metric.Int64Counter
}

// NewOrderMetrics creates the outbox instruments on the given provider, or on
// the global provider when nil.
func NewOrderMetrics(provider metric.MeterProvider) (*OrderMetrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}

	meter := provider.Meter("orderflow.outbox")

	pendingEvents, err := meter.Int64Gauge(
		"outbox.events.pending",
		metric.WithDescription("Number of unpublished events observed at the start of a publish cycle"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create outbox.events.pending gauge: %w", err)
	}

	failedEvents, err := meter.Int64Counter(
		"outbox.events.failed",
		metric.WithDescription("Number of failed publish attempts and consumer dispatch failures"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create outbox.events.failed counter: %w", err)
	}

	return &OrderMetrics{
		pendingEvents: pendingEvents,
		failedEvents:  failedEvents,
	}, nil
}

// PendingEvents records the outbox backlog observed by one publish cycle.
func (m *OrderMetrics) PendingEvents(ctx context.Context, count int) {
	m.pendingEvents.Record(ctx, int64(count))
}

// IncrementFailedEvents counts one failed publish or dispatch.
func (m *OrderMetrics) IncrementFailedEvents(ctx context.Context) {
	m.failedEvents.Add(ctx, 1)
}
