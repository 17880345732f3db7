// Package jobs provides scheduled background tasks for the staffing system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. OrderExpiryJob - Sweeps staffing orders whose exact scheduled time has passed and expires them
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(refreshHandler, "0 * * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiry job's schedule comes from configuration as a six-field cron
// expression (seconds included). Orders scheduled as "soon" are never expired,
// so the sweep only ever touches orders with an exact timestamp.
//
// # Error Handling
//
// - A sweep that expires nothing is a normal outcome and stays out of the logs
// - Sweep failures are logged and retried on the next tick
// - A job that fails to start aborts application startup
package jobs
