package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcels/internal/core/domain/model/shipment"
)

// ActorSLAMonitor identifies the SLA sweep in audit entries it causes.
const ActorSLAMonitor = "sla-monitor"

// SweepSLACommandHandler raises alerts for shipments that exceeded their
// elapsed-time budget.
//
// Each breach is recorded with an insert-if-absent marker keyed by shipment
// id, so overlapping sweep runs agree on a single winner and the alert event
// fans out exactly once per shipment. The marker and the alert's outbox row
// commit together; a sweep can therefore crash at any point without losing or
// duplicating an alert.
type SweepSLACommandHandler struct {
	uowFactory SweepUoWFactory
	dispatcher EventDispatcher
	logger     *slog.Logger
}

// NewSweepSLACommandHandler creates a handler for SLA sweep passes.
func NewSweepSLACommandHandler(
	uowFactory SweepUoWFactory,
	dispatcher EventDispatcher,
	logger *slog.Logger,
) SweepSLACommandHandler {
	return SweepSLACommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "sla_sweep_handler"),
	}
}

// Handle examines every active shipment and alerts on the breached ones.
// A failure on one shipment does not stop the sweep; the joined error reports
// every failure for the scheduler's log.
func (h SweepSLACommandHandler) Handle(ctx context.Context, cmd SweepSLACommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	active, err := uow.ShipmentRepository().GetAllActive(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	var sweepErr error
	for _, aggregate := range active {
		if !aggregate.IsSLABreached(now) {
			continue
		}
		if err = h.alertBreach(ctx, aggregate, now); err != nil {
			h.logger.ErrorContext(ctx, "failed to raise SLA breach alert",
				"shipment_id", aggregate.ID().String(), "error", err)
			sweepErr = errors.Join(sweepErr, err)
		}
	}

	return sweepErr
}

// alertBreach records the breach marker and accepts the alert event in one
// transaction, then runs the reactions. Only the run that inserted the marker
// proceeds; everyone else finds the work already done.
func (h SweepSLACommandHandler) alertBreach(
	ctx context.Context, aggregate *shipment.Shipment, now time.Time,
) error {
	uow := h.uowFactory.Create()

	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inserted, err := uow.ShipmentRepository().RecordSLABreachIfAbsent(ctx, aggregate.ID(), now)
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}

	event := shipment.NewSLABreachedEvent(aggregate.ID(), aggregate.Status(), ActorSLAMonitor, now)

	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.dispatcher.Dispatch(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "breach reactions incomplete, outbox relay will retry",
			"shipment_id", aggregate.ID().String(),
			"event_id", event.EventID.String(),
			"error", err)
	}

	return nil
}
