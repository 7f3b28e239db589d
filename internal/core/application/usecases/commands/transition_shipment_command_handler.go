package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcels/internal/core/domain/model/audit"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/pkg/errs"
)

// TransitionResult reports the accepted state after a successful transition.
type TransitionResult struct {
	NewStatus  shipment.Status
	NewVersion int
}

// TransitionShipmentCommandHandler advances a shipment through its lifecycle.
//
// The write path is a read, a domain decision and a single conditional update:
// the shipment row changes only while its version still equals the one the
// caller decided on, and the transition event is accepted into the outbox in
// the same transaction. Side effects run after commit and never roll the
// transition back.
type TransitionShipmentCommandHandler struct {
	uowFactory TransitionUoWFactory
	dispatcher EventDispatcher
	logger     *slog.Logger
}

// NewTransitionShipmentCommandHandler creates a handler for lifecycle
// transitions.
func NewTransitionShipmentCommandHandler(
	uowFactory TransitionUoWFactory,
	dispatcher EventDispatcher,
	logger *slog.Logger,
) TransitionShipmentCommandHandler {
	return TransitionShipmentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "transition_handler"),
	}
}

// Handle validates the requested transition against the current state and
// applies it with a compare-and-swap on the version column.
//
// Returns *errs.VersionConflictError when the stored version no longer equals
// the expected one, and *errs.InvalidTransitionError when the target status
// is not reachable from the current one. A rejected transition leaves an
// audit entry; a version conflict does not, since nothing was decided on
// current state.
func (h TransitionShipmentCommandHandler) Handle(
	ctx context.Context, cmd TransitionShipmentCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return TransitionResult{}, err
	}

	if aggregate.Version() != cmd.ExpectedVersion() {
		return TransitionResult{}, errs.NewVersionConflictError(
			"shipment", cmd.ShipmentID().String(), cmd.ExpectedVersion(),
		)
	}

	now := time.Now().UTC()
	fromStatus := aggregate.Status()

	if err = aggregate.TransitionTo(cmd.TargetStatus(), now); err != nil {
		var invalidErr *errs.InvalidTransitionError
		if errors.As(err, &invalidErr) {
			h.recordRejection(ctx, uow, cmd, fromStatus, now)
		}
		return TransitionResult{}, err
	}

	event := shipment.NewTransitionedEvent(
		aggregate.ID(), fromStatus, aggregate.Status(), cmd.Actor(), cmd.Reason(), now,
	)

	if err = uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().UpdateVersioned(ctx, aggregate, cmd.ExpectedVersion()); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	if err = h.dispatcher.Dispatch(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "transition reactions incomplete, outbox relay will retry",
			"shipment_id", aggregate.ID().String(),
			"event_id", event.EventID.String(),
			"error", err)
	}

	return TransitionResult{NewStatus: aggregate.Status(), NewVersion: aggregate.Version()}, nil
}

// recordRejection appends the audit entry for a structurally invalid request.
// Best effort: a failed append must not mask the rejection itself.
func (h TransitionShipmentCommandHandler) recordRejection(
	ctx context.Context,
	uow TransitionUoW,
	cmd TransitionShipmentCommand,
	fromStatus shipment.Status,
	at time.Time,
) {
	after := map[string]any{"requested_status": cmd.TargetStatus().String()}
	if cmd.Reason() != "" {
		after["reason"] = cmd.Reason()
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.Actor(),
		audit.ActionTransitionRejected,
		cmd.ShipmentID(),
		map[string]any{"status": fromStatus.String()},
		after,
		at,
	)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build rejection audit entry", "error", err)
		return
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		h.logger.ErrorContext(ctx, "failed to record rejected transition",
			"shipment_id", cmd.ShipmentID().String(), "error", err)
	}
}
