package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/core/domain/model/worker"
	"parcels/internal/core/domain/services"
)

// SuggestWorkerQueryHandler computes the assignment engine's current choice
// for a branch. Loads are recomputed from the shipments table on every call;
// nothing is cached and nothing is written.
type SuggestWorkerQueryHandler struct {
	db     *gorm.DB
	picker *services.WorkerPicker
}

// NewSuggestWorkerQueryHandler creates a handler for worker suggestions.
func NewSuggestWorkerQueryHandler(db *gorm.DB, picker *services.WorkerPicker) SuggestWorkerQueryHandler {
	return SuggestWorkerQueryHandler{db: db, picker: picker}
}

// Handle returns the least-loaded active worker of the branch.
// Returns services.ErrNoWorkersAvailable when the branch has none.
func (h SuggestWorkerQueryHandler) Handle(
	ctx context.Context,
	query SuggestWorkerQuery,
) (SuggestWorkerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SuggestWorkerQueryResponse{}, err
	}

	loads, err := h.loadWorkers(ctx, query.BranchID())
	if err != nil {
		return SuggestWorkerQueryResponse{}, err
	}

	picked, err := h.picker.Pick(loads)
	if err != nil {
		return SuggestWorkerQueryResponse{}, err
	}

	openShipments := 0
	for _, load := range loads {
		if load.Worker.ID().IsEqual(picked.ID()) {
			openShipments = load.OpenShipments
			break
		}
	}

	return SuggestWorkerQueryResponse{
		WorkerID:      picked.ID(),
		Name:          picked.Name(),
		OpenShipments: openShipments,
	}, nil
}

// loadWorkers reads the branch's active workers with their open-shipment
// counts (assigned, not yet delivered or cancelled).
func (h SuggestWorkerQueryHandler) loadWorkers(
	ctx context.Context, branchID kernel.UUID,
) ([]services.WorkerLoad, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			w.id,
			w.branch_id,
			w.name,
			w.active,
			COUNT(s.id) AS open_shipments
		FROM workers w
		LEFT JOIN shipments s
			ON s.assigned_worker_id = w.id
			AND s.status NOT IN (?, ?)
		WHERE w.branch_id = ? AND w.active
		GROUP BY w.id, w.branch_id, w.name, w.active
		ORDER BY w.id
	`, shipment.Delivered, shipment.Cancelled, branchID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make([]services.WorkerLoad, 0)

	for rows.Next() {
		var (
			id            uuid.UUID
			workerBranch  uuid.UUID
			name          string
			active        bool
			openShipments int
		)

		if err = rows.Scan(&id, &workerBranch, &name, &active, &openShipments); err != nil {
			return nil, err
		}

		workerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		branch, branchErr := kernel.UUIDFromBytes(workerBranch[:])
		if branchErr != nil {
			return nil, branchErr
		}

		candidate, workerErr := worker.NewWorker(workerID, branch, name, active)
		if workerErr != nil {
			return nil, workerErr
		}

		loads = append(loads, services.WorkerLoad{Worker: candidate, OpenShipments: openShipments})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return loads, nil
}
