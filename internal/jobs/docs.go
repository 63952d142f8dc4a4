// Package jobs provides scheduled background tasks for the quote service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SessionSweepJob - cancels intake sessions idle longer than the configured timeout
// and notifies their conversations. The schedule is configurable (SESSION_SWEEP_SCHEDULE).
// 2. RouteCachePurgeJob - deletes expired route quotes once an hour. Only runs when
// the route cache is enabled.
//
// # Usage
//
//	sweep := jobs.NewSessionSweepJob(&expireHandler, messenger, "0 * * * * *", 30*time.Minute, logger)
//	jobManager := jobs.NewJobManager(sweep)
//
//	if err := jobManager.StartAll(); err != nil {
//		return fmt.Errorf("start jobs: %w", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Sweep failures are logged and retried on the next tick
// - Undelivered expiry notices are logged as warnings; the session is gone either way
// - Failed job starts will stop any already running jobs
package jobs
