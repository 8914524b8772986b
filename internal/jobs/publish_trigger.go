package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
)

// AsyncPublishTrigger runs an outbox sweep whenever a transition commits,
// without making the committing request wait for the broker.
//
// Notify never blocks: signals funnel through a one-slot buffered channel,
// so any number of notifications arriving during a sweep collapse into a
// single follow-up sweep. A dropped signal is harmless because the next
// sweep drains every pending event regardless of which commit asked for it.
type AsyncPublishTrigger struct {
	handler commands.PublishPendingEventsCommandHandler
	signals chan struct{}
	stop    chan struct{}
	stopped chan struct{}
	logger  *slog.Logger
}

// NewAsyncPublishTrigger creates a trigger backed by the given sweep handler.
// Call Start before Notify.
func NewAsyncPublishTrigger(
	handler commands.PublishPendingEventsCommandHandler,
	logger *slog.Logger,
) *AsyncPublishTrigger {
	return &AsyncPublishTrigger{
		handler: handler,
		signals: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  logger.With("component", "async_publish_trigger"),
	}
}

// Start launches the worker goroutine that serializes triggered sweeps.
func (t *AsyncPublishTrigger) Start() {
	go t.run()
}

// Notify schedules a sweep. Safe to call from any goroutine; never blocks.
func (t *AsyncPublishTrigger) Notify() {
	select {
	case t.signals <- struct{}{}:
	default:
	}
}

// Stop shuts the worker down and waits for an in-flight sweep to finish.
func (t *AsyncPublishTrigger) Stop() {
	close(t.stop)
	<-t.stopped
}

func (t *AsyncPublishTrigger) run() {
	defer close(t.stopped)

	for {
		select {
		case <-t.stop:
			return
		case <-t.signals:
			t.sweep()
		}
	}
}

func (t *AsyncPublishTrigger) sweep() {
	ctx := context.Background()

	cmd, err := commands.NewPublishPendingEventsCommand()
	if err != nil {
		t.logger.ErrorContext(ctx, "Failed to build publish command", "error", err)
		return
	}

	if err = t.handler.Handle(ctx, cmd); err != nil {
		t.logger.ErrorContext(ctx, "Triggered outbox sweep failed", "error", err)
	}
}
