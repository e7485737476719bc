package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TransitProgressionJob periodically advances shipped orders that have
// dwelt long enough at their current waypoint to the next line-haul
// status, standing in for hub scan events.
type TransitProgressionJob struct {
	handler  *commands.ProgressTransitCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewTransitProgressionJob creates the transit progression job. The
// schedule is a six-field cron expression with a seconds column.
func NewTransitProgressionJob(
	handler *commands.ProgressTransitCommandHandler,
	schedule string,
	logger *slog.Logger,
) *TransitProgressionJob {
	return &TransitProgressionJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "transit_progression_job"),
	}
}

// Start begins the transit progression job on its schedule.
func (j *TransitProgressionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewProgressTransitCommand()

		advanced, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Transit progression job failed", "error", err)
			return
		}
		if advanced > 0 {
			j.logger.InfoContext(ctx, "Transit progression advanced orders",
				"advanced", advanced)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Transit progression job started", "schedule", j.schedule)
	return nil
}

// Stop stops the transit progression job.
func (j *TransitProgressionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Transit progression job stopped")
}
