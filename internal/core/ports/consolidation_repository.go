package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
)

// ConsolidationRepository defines the persistence contract for consolidation
// batches and their monotone lock.
type ConsolidationRepository interface {
	// Add persists a new consolidation batch.
	Add(ctx context.Context, aggregate *consolidation.Consolidation) error

	// Get retrieves a consolidation by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*consolidation.Consolidation, error)

	// GetUnlockedPastCutoff retrieves batches whose scheduled cutoff has
	// passed and whose lock is still unset.
	GetUnlockedPastCutoff(ctx context.Context, now time.Time) ([]*consolidation.Consolidation, error)

	// LockIfUnlocked sets locked_at with a single atomic write guarded by
	// locked_at IS NULL. Returns true only for the caller that won the write,
	// so two concurrent sweep runs cannot both fire downstream effects.
	LockIfUnlocked(ctx context.Context, id kernel.UUID, at time.Time) (bool, error)
}
