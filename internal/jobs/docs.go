// Package jobs provides scheduled background tasks for the logistics system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the order workflow depends on.
//
// # Available Jobs
//
// 1. AssignmentRetryJob - retries hub, vehicle and agent binding for orders
// that were accepted without network resources
// 2. TransitProgressionJob - advances shipped orders through the line-haul
// statuses once they have dwelt long enough at their current waypoint
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(assignNetworkHandler, progressTransitHandler, schedules, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions (with a seconds column) supplied
// through configuration, so operators can tune how aggressively the system
// retries assignment and simulates transit scans.
//
// # Error Handling
//
// Both jobs log failures and keep running; a failed tick is retried on the
// next schedule fire. Failed job starts stop any already running jobs.
package jobs
