package jobs

import (
	"fmt"
	"log/slog"

	"parcels/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	webhookDeliveryJob   *WebhookDeliveryJob
	outboxRelayJob       *OutboxRelayJob
	slaMonitorJob        *SLAMonitorJob
	consolidationLockJob *ConsolidationLockJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	deliverWebhooksHandler commands.DeliverWebhooksCommandHandler,
	relayOutboxHandler commands.RelayOutboxCommandHandler,
	sweepSLAHandler commands.SweepSLACommandHandler,
	lockConsolidationsHandler commands.LockConsolidationsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		webhookDeliveryJob:   NewWebhookDeliveryJob(deliverWebhooksHandler, logger),
		outboxRelayJob:       NewOutboxRelayJob(relayOutboxHandler, logger),
		slaMonitorJob:        NewSLAMonitorJob(sweepSLAHandler, logger),
		consolidationLockJob: NewConsolidationLockJob(lockConsolidationsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start, stopping any already running.
func (jm *JobManager) StartAll() error {
	started := make([]interface{ Stop() }, 0, 4)

	jobs := []struct {
		name  string
		start func() error
		stop  interface{ Stop() }
	}{
		{"webhook delivery", jm.webhookDeliveryJob.Start, jm.webhookDeliveryJob},
		{"outbox relay", jm.outboxRelayJob.Start, jm.outboxRelayJob},
		{"SLA monitor", jm.slaMonitorJob.Start, jm.slaMonitorJob},
		{"consolidation lock", jm.consolidationLockJob.Start, jm.consolidationLockJob},
	}

	for _, job := range jobs {
		if err := job.start(); err != nil {
			for _, runningJob := range started {
				runningJob.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", job.name, err)
		}
		started = append(started, job.stop)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.consolidationLockJob.Stop()
	jm.slaMonitorJob.Stop()
	jm.outboxRelayJob.Stop()
	jm.webhookDeliveryJob.Stop()
}
