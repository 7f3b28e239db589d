package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"parcels/internal/core/domain/model/webhook"
	"parcels/internal/core/ports"
)

// DeliverWebhooksCommandHandler pushes due delivery records to their
// subscriber endpoints.
//
// A pass selects up to poolSize due records, claims each with a single
// conditional write and processes the claimed ones concurrently, one
// goroutine per delivery. The claim carries a lease; a worker that dies
// mid-attempt releases its records by letting the lease expire. Losing a
// claim race is normal operation, not an error.
type DeliverWebhooksCommandHandler struct {
	uowFactory WebhookUoWFactory
	sender     ports.WebhookSender
	policy     webhook.RetryPolicy
	poolSize   int
	claimTTL   time.Duration
	logger     *slog.Logger
}

// NewDeliverWebhooksCommandHandler creates a handler for delivery passes.
// poolSize bounds both the batch size and the concurrent senders; claimTTL is
// the lease granted on each claimed record and must exceed the sender's
// timeout.
func NewDeliverWebhooksCommandHandler(
	uowFactory WebhookUoWFactory,
	sender ports.WebhookSender,
	policy webhook.RetryPolicy,
	poolSize int,
	claimTTL time.Duration,
	logger *slog.Logger,
) DeliverWebhooksCommandHandler {
	return DeliverWebhooksCommandHandler{
		uowFactory: uowFactory,
		sender:     sender,
		policy:     policy,
		poolSize:   poolSize,
		claimTTL:   claimTTL,
		logger:     logger.With("component", "webhook_delivery_handler"),
	}
}

// Handle runs one delivery pass. Individual send failures are recorded on
// their delivery records, not returned: the pass itself only fails when the
// due set cannot be read.
func (h DeliverWebhooksCommandHandler) Handle(ctx context.Context, cmd DeliverWebhooksCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	repo := uow.WebhookRepository()

	now := time.Now().UTC()

	due, err := repo.GetDueDeliveries(ctx, now, h.poolSize)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, delivery := range due {
		claimed, claimErr := repo.ClaimDelivery(ctx, delivery.ID(), now.Add(h.claimTTL))
		if claimErr != nil {
			h.logger.ErrorContext(ctx, "failed to claim delivery",
				"delivery_id", delivery.ID().String(), "error", claimErr)
			continue
		}
		if !claimed {
			continue
		}

		wg.Add(1)
		go func(d *webhook.Delivery) {
			defer wg.Done()
			h.processDelivery(ctx, repo, d)
		}(delivery)
	}
	wg.Wait()

	return nil
}

// processDelivery attempts one send and persists the outcome, releasing the
// claim either way.
func (h DeliverWebhooksCommandHandler) processDelivery(
	ctx context.Context, repo ports.WebhookRepository, delivery *webhook.Delivery,
) {
	subscriber, err := repo.GetSubscriber(ctx, delivery.SubscriberID())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load subscriber for delivery",
			"delivery_id", delivery.ID().String(),
			"subscriber_id", delivery.SubscriberID().String(),
			"error", err)
		return
	}

	sendErr := h.sender.Send(
		ctx, delivery.Endpoint(), delivery.EventID().String(), delivery.Payload(), subscriber.Secret(),
	)

	now := time.Now().UTC()

	if sendErr == nil {
		err = delivery.RecordSuccess()
	} else {
		err = delivery.RecordFailure(sendErr, now, h.policy)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to record delivery outcome",
			"delivery_id", delivery.ID().String(), "error", err)
		return
	}

	if err = repo.UpdateDelivery(ctx, delivery); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist delivery outcome",
			"delivery_id", delivery.ID().String(), "error", err)
		return
	}

	if sendErr != nil {
		h.logger.WarnContext(ctx, "webhook delivery attempt failed",
			"delivery_id", delivery.ID().String(),
			"endpoint", delivery.Endpoint(),
			"attempts", delivery.Attempts(),
			"status", string(delivery.Status()),
			"error", sendErr)
	}
}
