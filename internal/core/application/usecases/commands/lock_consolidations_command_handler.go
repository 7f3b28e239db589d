package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcels/internal/core/domain/model/audit"
	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
)

// ActorAutolockMonitor identifies the consolidation auto-lock sweep in audit
// entries it causes.
const ActorAutolockMonitor = "autolock-monitor"

// LockConsolidationsCommandHandler closes consolidation batches whose cutoff
// has passed.
//
// The lock is a single conditional write guarded by the lock still being
// unset, so concurrent sweep runs agree on one winner per batch and the audit
// entry is appended once. The lock is monotone: once set it never clears, and
// a second pass simply finds nothing to do.
type LockConsolidationsCommandHandler struct {
	uowFactory SweepUoWFactory
	logger     *slog.Logger
}

// NewLockConsolidationsCommandHandler creates a handler for auto-lock passes.
func NewLockConsolidationsCommandHandler(
	uowFactory SweepUoWFactory,
	logger *slog.Logger,
) LockConsolidationsCommandHandler {
	return LockConsolidationsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "autolock_handler"),
	}
}

// Handle locks every batch past its cutoff. A failure on one batch does not
// stop the pass; the joined error reports every failure for the scheduler's
// log.
func (h LockConsolidationsCommandHandler) Handle(ctx context.Context, cmd LockConsolidationsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	now := time.Now().UTC()

	due, err := uow.ConsolidationRepository().GetUnlockedPastCutoff(ctx, now)
	if err != nil {
		return err
	}

	var sweepErr error
	for _, batch := range due {
		if err = h.lockBatch(ctx, uow, batch, now); err != nil {
			h.logger.ErrorContext(ctx, "failed to lock consolidation",
				"consolidation_id", batch.ID().String(), "error", err)
			sweepErr = errors.Join(sweepErr, err)
		}
	}

	return sweepErr
}

func (h LockConsolidationsCommandHandler) lockBatch(
	ctx context.Context, uow SweepUoW, batch *consolidation.Consolidation, now time.Time,
) error {
	won, err := uow.ConsolidationRepository().LockIfUnlocked(ctx, batch.ID(), now)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		ActorAutolockMonitor,
		audit.ActionConsolidationLocked,
		batch.ID(),
		map[string]any{"locked_at": nil},
		map[string]any{"locked_at": now.Format(time.RFC3339Nano)},
		now,
	)
	if err != nil {
		return err
	}

	return uow.AuditRepository().Append(ctx, entry)
}
