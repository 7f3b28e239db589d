package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
)

// OutboxEntry is an accepted domain event awaiting side-effect dispatch,
// together with its dispatch bookkeeping.
type OutboxEntry struct {
	Event    shipment.TransitionedEvent
	Attempts int
}

// OutboxRepository is the durable acceptance point for domain events. The
// event row is written in the same transaction as the state mutation that
// produced it, so a transition is never committed without its event and an
// event never exists without its transition.
type OutboxRepository interface {
	// Add appends an accepted event. Must run inside the producing
	// transaction.
	Add(ctx context.Context, event shipment.TransitionedEvent) error

	// GetDue retrieves up to limit undispatched events whose next attempt is
	// due, oldest first, so per-shipment dispatch order follows transition
	// order.
	GetDue(ctx context.Context, now time.Time, limit int) ([]OutboxEntry, error)

	// MarkDispatched records that every reaction for the event completed.
	MarkDispatched(ctx context.Context, eventID kernel.UUID, at time.Time) error

	// Reschedule records a failed dispatch pass. A nil nextAttemptAt marks the
	// entry exhausted: kept visible for reconciliation, no longer selected.
	Reschedule(ctx context.Context, eventID kernel.UUID, cause error, nextAttemptAt *time.Time) error
}
