package ports

import "context"

// OrderMetrics is the observability sink for the outbox pipeline.
type OrderMetrics interface {
	// PendingEvents records the number of unpublished events observed at the
	// start of a publish cycle. Reported every cycle, including zero.
	PendingEvents(ctx context.Context, count int)

	// IncrementFailedEvents counts one failed publish attempt or consumer
	// dispatch failure.
	IncrementFailedEvents(ctx context.Context)
}
