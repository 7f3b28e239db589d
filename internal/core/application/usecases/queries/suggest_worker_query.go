package queries

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrSuggestWorkerQueryIsNotConstructed = errors.New(
	"SuggestWorkerQuery must be created via NewSuggestWorkerQuery constructor",
)

// SuggestWorkerQuery asks the assignment engine which worker it would pick
// for a branch right now, without assigning anything. Dispatchers use it to
// preview assignment decisions.
//
// Example:
//
//	query, err := NewSuggestWorkerQuery(branchID)
//	if err != nil {
//	    return fmt.Errorf("invalid branch: %w", err)
//	}
//	suggestion, err := handler.Handle(ctx, query)
//	if errors.Is(err, services.ErrNoWorkersAvailable) {
//	    // branch has no active workers
//	}
type SuggestWorkerQuery struct {
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSuggestWorkerQuery creates a worker suggestion query for one branch.
func NewSuggestWorkerQuery(branchID kernel.UUID) (SuggestWorkerQuery, error) {
	if err := branchID.Validate(); err != nil {
		return SuggestWorkerQuery{}, err
	}

	return SuggestWorkerQuery{
		branchID: branchID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q SuggestWorkerQuery) Validate() error {
	return q.guard.Validate(ErrSuggestWorkerQueryIsNotConstructed)
}

// BranchID returns the branch whose workers are considered.
func (q SuggestWorkerQuery) BranchID() kernel.UUID {
	return q.branchID
}

// SuggestWorkerQueryResponse represents the engine's current choice for a
// branch. The decision is advisory: by the time an assignment request lands
// the loads may have changed.
type SuggestWorkerQueryResponse struct {
	WorkerID      kernel.UUID
	Name          string
	OpenShipments int
}
