package shipment

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// InitialVersion is the version a shipment carries right after creation.
const InitialVersion = 1

// Shipment is the aggregate root of the lifecycle engine. It tracks the
// physical handling state of a parcel between an origin and a destination
// branch, plus the worker currently responsible for it.
//
// Shipment follows these invariants:
//   - Must have valid identifiers for itself and both branches
//   - version increases by exactly 1 per successful mutation and is never
//     written outside the repository's conditional-update path
//   - Status transitions follow the fixed lifecycle graph
//   - Can only be created through NewShipment or RestoreShipment
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods. Mutating methods change the in-memory
// aggregate only; persistence is the caller's concern and must go through the
// versioned conditional write.
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// status is the current state in the lifecycle graph
	status Status

	// version is the optimistic-concurrency counter, bumped on every mutation
	version int

	// originBranchID / destBranchID locate the shipment's lane
	originBranchID kernel.UUID
	destBranchID   kernel.UUID

	// assignedWorkerID is the worker fulfilling the shipment (nil if unassigned)
	assignedWorkerID *kernel.UUID
	assignedAt       *time.Time

	// slaThreshold is the per-lane/service elapsed-time budget, resolved once
	// at creation so sweeps need no lane lookup
	slaThreshold time.Duration

	// handedOverAt is set on the first transition into HandedOver;
	// SLA elapsed time is measured from it, or from createdAt if never set
	handedOverAt *time.Time

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the shipment was created via a constructor
	isConstructed bool
}

// NewShipment creates a new Shipment in Created status at InitialVersion.
//
// Parameters:
//   - id: Unique identifier for the shipment (must be valid UUID)
//   - originBranchID, destBranchID: The shipment's lane endpoints
//   - slaThreshold: Elapsed-time budget before the SLA monitor flags a breach
//     (must be positive)
//
// Returns the created shipment, or a validation error if any parameter is
// invalid.
func NewShipment(
	id kernel.UUID,
	originBranchID kernel.UUID,
	destBranchID kernel.UUID,
	slaThreshold time.Duration,
) (*Shipment, error) {
	now := time.Now().UTC()
	s := &Shipment{
		status:        Created,
		version:       InitialVersion,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOriginBranchID(originBranchID),
		s.setDestBranchID(destBranchID),
		s.setSLAThreshold(slaThreshold),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a Shipment from persistence without applying
// creation defaults. Used only by repository implementations.
func RestoreShipment(
	id kernel.UUID,
	status Status,
	version int,
	originBranchID kernel.UUID,
	destBranchID kernel.UUID,
	assignedWorkerID *kernel.UUID,
	assignedAt *time.Time,
	slaThreshold time.Duration,
	handedOverAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Shipment, error) {
	if err := errors.Join(id.Validate(), status.Validate(), originBranchID.Validate(), destBranchID.Validate()); err != nil {
		return nil, err
	}
	if version < InitialVersion {
		return nil, errs.NewVersionIsInvalidErrorWithCause("shipment version")
	}

	return &Shipment{
		id:               id,
		status:           status,
		version:          version,
		originBranchID:   originBranchID,
		destBranchID:     destBranchID,
		assignedWorkerID: assignedWorkerID,
		assignedAt:       assignedAt,
		slaThreshold:     slaThreshold,
		handedOverAt:     handedOverAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Shipment instance was properly constructed.
// Returns ErrShipmentIsNotConstructed otherwise.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// Version returns the optimistic-concurrency counter.
func (s *Shipment) Version() int {
	return s.version
}

// OriginBranchID returns the branch where the shipment entered the system.
func (s *Shipment) OriginBranchID() kernel.UUID {
	return s.originBranchID
}

// DestBranchID returns the branch where the shipment is to be delivered.
func (s *Shipment) DestBranchID() kernel.UUID {
	return s.destBranchID
}

// AssignedWorker returns the assigned worker's ID, or nil if unassigned.
func (s *Shipment) AssignedWorker() *kernel.UUID {
	return s.assignedWorkerID
}

// AssignedAt returns when the current worker was assigned, or nil.
func (s *Shipment) AssignedAt() *time.Time {
	return s.assignedAt
}

// SLAThreshold returns the elapsed-time budget for this shipment's lane.
func (s *Shipment) SLAThreshold() time.Duration {
	return s.slaThreshold
}

// HandedOverAt returns when the parcel was handed over, or nil if it never was.
func (s *Shipment) HandedOverAt() *time.Time {
	return s.handedOverAt
}

// CreatedAt returns when the shipment was registered.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the shipment was last mutated.
func (s *Shipment) UpdatedAt() time.Time {
	return s.updatedAt
}

// TransitionTo advances the shipment along the lifecycle graph and bumps the
// version by exactly 1. The mutation is in-memory only; the caller persists it
// through the repository's conditional write keyed on the pre-transition
// version, so concurrent writers acting on the same observed version cannot
// both win.
//
// Returns:
//   - nil on a legal edge; Status(), Version() and UpdatedAt() reflect the change
//   - *errs.InvalidTransitionError on an illegal edge; nothing changes
func (s *Shipment) TransitionTo(target Status, occurredAt time.Time) error {
	newStatus, err := s.status.TransitionTo(target)
	if err != nil {
		return err
	}

	s.status = newStatus
	s.version++
	s.updatedAt = occurredAt

	if newStatus == HandedOver && s.handedOverAt == nil {
		t := occurredAt
		s.handedOverAt = &t
	}

	return nil
}

// AssignWorker records the worker now responsible for the shipment and bumps
// the version by exactly 1. Assignment is only meaningful before the shipment
// reaches a terminal state.
//
// Returns a validation error if workerID is invalid or the shipment is in a
// terminal state; nothing changes on error.
func (s *Shipment) AssignWorker(workerID kernel.UUID, at time.Time) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	if s.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errors.New(s.status.String()+" shipment cannot be assigned"))
	}

	s.assignedWorkerID = &workerID
	t := at
	s.assignedAt = &t
	s.version++
	s.updatedAt = at
	return nil
}

// SLAReference returns the instant SLA elapsed time is measured from:
// the hand-over moment, or the creation moment if the parcel was never
// handed over.
func (s *Shipment) SLAReference() time.Time {
	if s.handedOverAt != nil {
		return *s.handedOverAt
	}
	return s.createdAt
}

// IsSLABreached reports whether the shipment has exceeded its elapsed-time
// budget as of now. Terminal shipments are never considered breached.
func (s *Shipment) IsSLABreached(now time.Time) bool {
	if s.status.IsTerminal() {
		return false
	}
	return now.Sub(s.SLAReference()) > s.slaThreshold
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOriginBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.originBranchID = id
	return nil
}

func (s *Shipment) setDestBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.destBranchID = id
	return nil
}

func (s *Shipment) setSLAThreshold(threshold time.Duration) error {
	if threshold <= 0 {
		return errs.NewValueIsInvalidError("sla threshold")
	}
	s.slaThreshold = threshold
	return nil
}
