package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"parcels/internal/core/application/usecases/commands"
)

// consolidationLockSchedule sweeps once a minute so a batch is closed within
// a minute of its cutoff.
const consolidationLockSchedule = "0 * * * * *"

// ConsolidationLockJob manages the scheduled auto-lock of consolidation
// batches past their cutoff.
type ConsolidationLockJob struct {
	handler commands.LockConsolidationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewConsolidationLockJob creates a new job for auto-lock passes.
func NewConsolidationLockJob(
	handler commands.LockConsolidationsCommandHandler, logger *slog.Logger,
) *ConsolidationLockJob {
	return &ConsolidationLockJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "consolidation_lock_job"),
	}
}

// Start begins the consolidation lock job.
func (j *ConsolidationLockJob) Start() error {
	_, err := j.cron.AddFunc(consolidationLockSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewLockConsolidationsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Consolidation lock job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Consolidation lock job started")
	return nil
}

// Stop stops the consolidation lock job.
func (j *ConsolidationLockJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Consolidation lock job stopped")
}
