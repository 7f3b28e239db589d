package services

import (
	"errors"
	"sort"

	"parcels/internal/core/domain/model/worker"
)

// ErrNoWorkersAvailable is returned when no active worker in the branch can
// take the shipment. Callers treat it as an expected scheduling outcome, not
// a system failure.
var ErrNoWorkersAvailable = errors.New("no workers available")

// WorkerLoad pairs a worker with its open-shipment count. The count is derived
// per decision (shipments assigned but not yet delivered or cancelled), never
// cached, so a picker call always sees fresh load.
type WorkerLoad struct {
	Worker        *worker.Worker
	OpenShipments int
}

// WorkerPicker is the domain service of the assignment engine. It is purely
// greedy and branch-local: given the active workers of a single branch, it
// picks the least-loaded one, breaking ties by worker identity ascending so
// concurrent callers over the same snapshot reach the same decision.
//
// Example:
//
//	picker := services.NewWorkerPicker()
//	chosen, err := picker.Pick(loads)
//	if errors.Is(err, services.ErrNoWorkersAvailable) {
//	    // branch has no active workers; next scheduling pass reconsiders
//	    return
//	}
type WorkerPicker struct{}

// NewWorkerPicker creates the assignment domain service.
func NewWorkerPicker() *WorkerPicker {
	return &WorkerPicker{}
}

// Pick returns the active worker with the fewest open shipments, ties broken
// by ascending worker ID. Inactive workers are skipped. Returns
// ErrNoWorkersAvailable when no candidate remains.
func (p *WorkerPicker) Pick(loads []WorkerLoad) (*worker.Worker, error) {
	candidates := make([]WorkerLoad, 0, len(loads))
	for _, load := range loads {
		if load.Worker == nil || !load.Worker.IsActive() {
			continue
		}
		candidates = append(candidates, load)
	}

	if len(candidates) == 0 {
		return nil, ErrNoWorkersAvailable
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].OpenShipments != candidates[j].OpenShipments {
			return candidates[i].OpenShipments < candidates[j].OpenShipments
		}
		return candidates[i].Worker.ID().String() < candidates[j].Worker.ID().String()
	})

	return candidates[0].Worker, nil
}
