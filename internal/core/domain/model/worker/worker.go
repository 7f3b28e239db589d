// Package worker provides the branch-scoped worker entity. A worker fulfills
// shipments within exactly one branch. The open-shipment count used by the
// assignment engine is derived, never stored on the worker, so it is
// recomputed per assignment decision to avoid staleness.
package worker

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker constructor")

// Worker is a branch-scoped fulfillment resource.
type Worker struct {
	id       kernel.UUID
	branchID kernel.UUID
	name     string
	active   bool

	isConstructed bool
}

// NewWorker creates a worker attached to a branch.
func NewWorker(id kernel.UUID, branchID kernel.UUID, name string, active bool) (*Worker, error) {
	w := &Worker{active: active, isConstructed: true}

	if err := errors.Join(
		w.setID(id),
		w.setBranchID(branchID),
		w.setName(name),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate ensures the Worker instance was properly constructed.
func (w *Worker) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkerIsNotConstructed
	}
	return nil
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// BranchID returns the branch the worker belongs to.
func (w *Worker) BranchID() kernel.UUID {
	return w.branchID
}

// Name returns the worker's display name.
func (w *Worker) Name() string {
	return w.name
}

// IsActive reports whether the worker may receive new assignments.
func (w *Worker) IsActive() bool {
	return w.active
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.branchID = id
	return nil
}

func (w *Worker) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}
