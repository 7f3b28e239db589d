package commands

import (
	"context"
	"log/slog"
	"time"

	"parcels/internal/core/domain/model/webhook"
	"parcels/internal/core/ports"
)

// RelayOutboxCommandHandler re-runs the reactions for accepted events that
// were not fully dispatched, typically because the process died between
// commit and dispatch or a reaction failed transiently.
//
// Reactions are idempotent, so re-dispatching a partially processed event is
// safe. Each failed pass pushes the next attempt out exponentially; an event
// that exhausts its budget stays visible for reconciliation but is no longer
// selected.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	dispatcher EventDispatcher
	policy     webhook.RetryPolicy
	batchSize  int
	logger     *slog.Logger
}

// NewRelayOutboxCommandHandler creates a handler for relay passes.
func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	dispatcher EventDispatcher,
	policy webhook.RetryPolicy,
	batchSize int,
	logger *slog.Logger,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		policy:     policy,
		batchSize:  batchSize,
		logger:     logger.With("component", "outbox_relay_handler"),
	}
}

// Handle runs one relay pass over the due events, oldest first. Dispatch
// failures are recorded on their outbox rows, not returned: the pass itself
// only fails when the due set cannot be read or the bookkeeping write fails.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	repo := uow.OutboxRepository()

	entries, err := repo.GetDue(ctx, time.Now().UTC(), h.batchSize)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		dispatchErr := h.dispatcher.Dispatch(ctx, entry.Event)
		if dispatchErr == nil {
			continue
		}

		if err = h.recordFailure(ctx, repo, entry, dispatchErr); err != nil {
			return err
		}
	}

	return nil
}

// recordFailure schedules the next attempt, or parks the event as exhausted
// once the attempt counting this pass reaches the budget.
func (h RelayOutboxCommandHandler) recordFailure(
	ctx context.Context, repo ports.OutboxRepository, entry ports.OutboxEntry, cause error,
) error {
	attempt := entry.Attempts + 1

	if attempt >= h.policy.MaxAttempts {
		h.logger.ErrorContext(ctx, "event dispatch exhausted",
			"event_id", entry.Event.EventID.String(),
			"event_type", entry.Event.EventType,
			"attempts", attempt,
			"error", cause)
		return repo.Reschedule(ctx, entry.Event.EventID, cause, nil)
	}

	next := time.Now().UTC().Add(h.policy.Backoff(attempt))

	h.logger.WarnContext(ctx, "event dispatch failed, rescheduled",
		"event_id", entry.Event.EventID.String(),
		"event_type", entry.Event.EventType,
		"attempts", attempt,
		"next_attempt_at", next,
		"error", cause)

	return repo.Reschedule(ctx, entry.Event.EventID, cause, &next)
}
