// Package jobs provides the background workers of the outbox pipeline.
//
// This package implements cron-based scheduling using github.com/robfig/cron/v3
// plus a channel-based trigger for low-latency publishing.
//
// # Available Workers
//
// 1. PublishEventsJob - Runs every ten seconds to drain unpublished outbox events
// 2. AsyncPublishTrigger - Runs a sweep immediately after a transition commits
//
// # Usage
//
// Workers are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(publishHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
//	// Wire the trigger into command handlers:
//	trigger := jobManager.PublishTrigger()
//
// # Delivery latency
//
// The trigger gives sub-second latency on the happy path; the cron sweep
// bounds worst-case latency at roughly ten seconds after a crash, missed
// signal, or broker outage. Both paths run the same command handler, and the
// row locks it takes make overlapping runs safe.
package jobs
