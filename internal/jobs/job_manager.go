package jobs

import (
	"fmt"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
)

// JobManager coordinates the background workers of the outbox pipeline:
// the periodic sweep and the commit-time trigger.
type JobManager struct {
	publishEventsJob *PublishEventsJob
	publishTrigger   *AsyncPublishTrigger
}

// NewJobManager creates a job manager owning both outbox workers.
// Both share one sweep handler; the row locks taken by a running sweep keep
// overlapping runs from double-publishing.
func NewJobManager(
	publishHandler commands.PublishPendingEventsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		publishEventsJob: NewPublishEventsJob(publishHandler, logger),
		publishTrigger:   NewAsyncPublishTrigger(publishHandler, logger),
	}
}

// PublishTrigger exposes the commit-time trigger for command handlers.
func (jm *JobManager) PublishTrigger() *AsyncPublishTrigger {
	return jm.publishTrigger
}

// StartAll starts the trigger worker and the sweep schedule.
func (jm *JobManager) StartAll() error {
	jm.publishTrigger.Start()

	if err := jm.publishEventsJob.Start(); err != nil {
		jm.publishTrigger.Stop()
		return fmt.Errorf("failed to start publish events job: %w", err)
	}

	return nil
}

// StopAll stops both workers gracefully.
func (jm *JobManager) StopAll() {
	jm.publishEventsJob.Stop()
	jm.publishTrigger.Stop()
}
