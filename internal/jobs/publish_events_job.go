package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PublishEventsJob runs the outbox sweep every ten seconds.
//
// The schedule is the safety net: transition handlers nudge the trigger for
// immediate publishing, and this job picks up anything those nudges missed,
// such as events left behind by a crash or a broker outage.
type PublishEventsJob struct {
	handler commands.PublishPendingEventsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPublishEventsJob creates the periodic outbox sweep job.
func NewPublishEventsJob(
	handler commands.PublishPendingEventsCommandHandler,
	logger *slog.Logger,
) *PublishEventsJob {
	return &PublishEventsJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "publish_events_job"),
	}
}

// Start begins the sweep schedule.
func (j *PublishEventsJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewPublishPendingEventsCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build publish command", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Outbox sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Publish events job started (running every ten seconds)")
	return nil
}

// Stop stops the sweep schedule.
func (j *PublishEventsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Publish events job stopped")
}
