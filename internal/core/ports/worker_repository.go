package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/worker"
	"parcels/internal/core/domain/services"
)

// WorkerRepository defines the persistence contract for branch-scoped workers.
type WorkerRepository interface {
	// Add persists a new worker.
	Add(ctx context.Context, aggregate *worker.Worker) error

	// Get retrieves a worker by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// GetActiveLoadsByBranch retrieves the active workers of a branch together
	// with their open-shipment counts (assigned, not yet delivered or
	// cancelled). The counts are recomputed by the query on every call so
	// assignment decisions never act on stale load.
	GetActiveLoadsByBranch(ctx context.Context, branchID kernel.UUID) ([]services.WorkerLoad, error)
}
