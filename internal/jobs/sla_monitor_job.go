package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"parcels/internal/core/application/usecases/commands"
)

// slaMonitorSchedule sweeps every ten minutes. Thresholds are measured in
// hours, so tighter scheduling would only re-read the same shipments.
const slaMonitorSchedule = "0 */10 * * * *"

// SLAMonitorJob manages the scheduled SLA sweep over active shipments.
// Overlapping runs are safe: the breach marker picks a single winner.
type SLAMonitorJob struct {
	handler commands.SweepSLACommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSLAMonitorJob creates a new job for SLA sweep passes.
func NewSLAMonitorJob(handler commands.SweepSLACommandHandler, logger *slog.Logger) *SLAMonitorJob {
	return &SLAMonitorJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "sla_monitor_job"),
	}
}

// Start begins the SLA monitor job.
func (j *SLAMonitorJob) Start() error {
	_, err := j.cron.AddFunc(slaMonitorSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewSweepSLACommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "SLA monitor job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "SLA monitor job started")
	return nil
}

// Stop stops the SLA monitor job.
func (j *SLAMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "SLA monitor job stopped")
}
