// Package jobs provides scheduled background tasks for the booking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field format with seconds.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Publishes pending booking status events from the outbox to Kafka (every 5 seconds by default)
// 2. BookingMetricsJob - Refreshes the bookings_by_status gauge from storage (every 30 seconds by default)
//
// # Usage
//
//	relay, err := jobs.NewOutboxRelayJob(publishHandler, cfg.OutboxBatchSize, cfg.OutboxRelaySchedule, logger)
//	if err != nil {
//		return err
//	}
//	jobManager := jobs.NewJobManager(relay, jobs.NewBookingMetricsJob(countHandler, cfg.MetricsSchedule, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Job failures are logged and retried on the next tick
// - A tick that fires while the previous run is still going is skipped
// - Failed job starts will stop any already running jobs
package jobs
