package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcels/internal/core/domain/model/audit"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"
)

// AssignWorkerCommandHandler puts a worker in charge of a shipment.
//
// The write goes through the same compare-and-swap as lifecycle transitions,
// at the version the handler just read. A conflict means another writer moved
// the shipment first; the handler reports it and applies nothing, and the
// caller decides whether that matters (the creation reaction does not retry,
// the assignment endpoint surfaces it).
type AssignWorkerCommandHandler struct {
	uowFactory AssignUoWFactory
	picker     *services.WorkerPicker
	logger     *slog.Logger
}

// NewAssignWorkerCommandHandler creates a handler for worker assignment.
func NewAssignWorkerCommandHandler(
	uowFactory AssignUoWFactory,
	picker *services.WorkerPicker,
	logger *slog.Logger,
) AssignWorkerCommandHandler {
	return AssignWorkerCommandHandler{
		uowFactory: uowFactory,
		picker:     picker,
		logger:     logger.With("component", "assign_handler"),
	}
}

// Handle resolves the worker (explicit or engine-picked from the destination
// branch), records the assignment on the shipment and appends the audit entry
// in the same transaction.
//
// Returns services.ErrNoWorkersAvailable when the engine has no candidate and
// *errs.VersionConflictError when the shipment moved between read and write.
func (h AssignWorkerCommandHandler) Handle(ctx context.Context, cmd AssignWorkerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	// Engine-picked assignment is satisfied by any existing assignment, so
	// re-running the creation reaction never reshuffles workers.
	if cmd.WorkerID() == nil && aggregate.AssignedWorker() != nil {
		return nil
	}

	workerID, err := h.resolveWorker(ctx, uow, cmd, aggregate.DestBranchID())
	if err != nil {
		return err
	}

	before := map[string]any{"assigned_worker_id": uuidStringOrNil(aggregate.AssignedWorker())}

	now := time.Now().UTC()
	observedVersion := aggregate.Version()

	if err = aggregate.AssignWorker(workerID, now); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.Actor(),
		audit.ActionShipmentAssigned,
		aggregate.ID(),
		before,
		map[string]any{"assigned_worker_id": workerID.String()},
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().UpdateVersioned(ctx, aggregate, observedVersion); err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resolveWorker returns the explicitly requested worker after checking it is
// active and based at the shipment's destination branch, or asks the
// assignment engine for the least-loaded candidate.
func (h AssignWorkerCommandHandler) resolveWorker(
	ctx context.Context, uow AssignUoW, cmd AssignWorkerCommand, destBranchID kernel.UUID,
) (kernel.UUID, error) {
	if requested := cmd.WorkerID(); requested != nil {
		candidate, err := uow.WorkerRepository().Get(ctx, *requested)
		if err != nil {
			return kernel.UUID{}, err
		}
		if !candidate.IsActive() {
			return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("workerID",
				errors.New("worker is not active"))
		}
		if !candidate.BranchID().IsEqual(destBranchID) {
			return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("workerID",
				errors.New("worker belongs to another branch"))
		}
		return candidate.ID(), nil
	}

	loads, err := uow.WorkerRepository().GetActiveLoadsByBranch(ctx, destBranchID)
	if err != nil {
		return kernel.UUID{}, err
	}

	picked, err := h.picker.Pick(loads)
	if err != nil {
		return kernel.UUID{}, err
	}

	return picked.ID(), nil
}

func uuidStringOrNil(id *kernel.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}
