package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AssignmentRetryJob periodically retries network binding for orders
// that were stored unassigned because no hub, vehicle or agent could be
// resolved when they were created.
type AssignmentRetryJob struct {
	handler  *commands.AssignNetworkCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAssignmentRetryJob creates the retry job. The schedule is a
// six-field cron expression with a seconds column.
func NewAssignmentRetryJob(
	handler *commands.AssignNetworkCommandHandler,
	schedule string,
	logger *slog.Logger,
) *AssignmentRetryJob {
	return &AssignmentRetryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "assignment_retry_job"),
	}
}

// Start begins the assignment retry job on its schedule.
func (j *AssignmentRetryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewAssignNetworkCommand()

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment retry job failed", "error", err)
			return
		}
		if result.Assigned > 0 {
			j.logger.InfoContext(ctx, "Assignment retry bound pending orders",
				"processed", result.Processed, "assigned", result.Assigned)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Assignment retry job started", "schedule", j.schedule)
	return nil
}

// Stop stops the assignment retry job.
func (j *AssignmentRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment retry job stopped")
}
