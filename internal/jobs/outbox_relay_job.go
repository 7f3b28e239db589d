package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"parcels/internal/core/application/usecases/commands"
)

// outboxRelaySchedule runs the relay every five seconds. Most events are
// dispatched inline by their command handler; the relay only picks up
// stragglers, so a tick usually finds nothing.
const outboxRelaySchedule = "*/5 * * * * *"

// OutboxRelayJob manages the scheduled re-dispatch of accepted events whose
// reactions did not all complete.
type OutboxRelayJob struct {
	handler commands.RelayOutboxCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOutboxRelayJob creates a new job for outbox relay passes.
func NewOutboxRelayJob(handler commands.RelayOutboxCommandHandler, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the outbox relay job.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(outboxRelaySchedule, func() {
		ctx := context.Background()
		cmd := commands.NewRelayOutboxCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started")
	return nil
}

// Stop stops the outbox relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
