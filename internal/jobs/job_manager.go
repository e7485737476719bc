package jobs

import (
	"fmt"
	"log/slog"

	"logistics/internal/core/application/usecases/commands"
)

// Schedules carries the cron expressions for all background jobs.
// Both use the six-field form with a seconds column.
type Schedules struct {
	AssignmentRetry    string
	TransitProgression string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	assignmentRetryJob    *AssignmentRetryJob
	transitProgressionJob *TransitProgressionJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	assignNetworkHandler *commands.AssignNetworkCommandHandler,
	progressTransitHandler *commands.ProgressTransitCommandHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		assignmentRetryJob: NewAssignmentRetryJob(
			assignNetworkHandler, schedules.AssignmentRetry, logger),
		transitProgressionJob: NewTransitProgressionJob(
			progressTransitHandler, schedules.TransitProgression, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment retry job: %w", err)
	}

	if err := jm.transitProgressionJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.assignmentRetryJob.Stop()
		return fmt.Errorf("failed to start transit progression job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.transitProgressionJob.Stop()
	jm.assignmentRetryJob.Stop()
}
