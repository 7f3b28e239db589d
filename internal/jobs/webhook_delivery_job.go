package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"parcels/internal/core/application/usecases/commands"
)

// webhookDeliverySchedule runs the delivery worker every five seconds, fast
// enough that freshly enqueued records go out promptly without hammering the
// deliveries table.
const webhookDeliverySchedule = "*/5 * * * * *"

// WebhookDeliveryJob manages the scheduled webhook delivery worker.
// Each tick claims and pushes the due delivery records.
type WebhookDeliveryJob struct {
	handler commands.DeliverWebhooksCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewWebhookDeliveryJob creates a new job for webhook delivery passes.
func NewWebhookDeliveryJob(handler commands.DeliverWebhooksCommandHandler, logger *slog.Logger) *WebhookDeliveryJob {
	return &WebhookDeliveryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "webhook_delivery_job"),
	}
}

// Start begins the webhook delivery job.
func (j *WebhookDeliveryJob) Start() error {
	_, err := j.cron.AddFunc(webhookDeliverySchedule, func() {
		ctx := context.Background()
		cmd := commands.NewDeliverWebhooksCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Webhook delivery job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Webhook delivery job started")
	return nil
}

// Stop stops the webhook delivery job.
func (j *WebhookDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Webhook delivery job stopped")
}
