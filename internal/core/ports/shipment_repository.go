// Package ports defines repository and unit-of-work interfaces for the parcel
// logistics core. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// All mutation goes through the versioned conditional write: the storage layer
// performs a single compare-and-swap on the version column, which is the only
// cross-process synchronization primitive in the system.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate at its initial version.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	// Returns *errs.ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// UpdateVersioned persists a mutated aggregate with a single conditional
	// update that succeeds only while the stored version still equals
	// expectedVersion. On a lost race it returns *errs.VersionConflictError
	// without applying anything; it never retries or merges — the caller
	// decides whether to re-read and retry.
	UpdateVersioned(ctx context.Context, aggregate *shipment.Shipment, expectedVersion int) error

	// GetAllActive retrieves shipments that are in neither terminal state.
	// Used by the SLA sweep; counts and thresholds are evaluated per call.
	GetAllActive(ctx context.Context) ([]*shipment.Shipment, error)

	// RecordSLABreachIfAbsent inserts the breach marker for a shipment if none
	// exists yet. Returns true only for the inserting caller, so two
	// overlapping sweep runs raise the alert exactly once.
	RecordSLABreachIfAbsent(ctx context.Context, shipmentID kernel.UUID, at time.Time) (bool, error)
}
