package ports

import (
	"context"

	"parcels/internal/core/domain/model/branch"
	"parcels/internal/core/domain/model/kernel"
)

// BranchRepository defines persistence for branch nodes. The core only reads
// branches on its write paths; administration owns the records themselves.
type BranchRepository interface {
	// Add saves a new branch to the database.
	Add(ctx context.Context, aggregate *branch.Branch) error

	// Get retrieves a branch by ID. Returns *errs.ObjectNotFoundError when no
	// branch exists for the id.
	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)
}
