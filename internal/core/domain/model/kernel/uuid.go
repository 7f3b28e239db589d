package kernel

import (
	"fmt"

	"parcels/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through one of the constructor functions.
// This error is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object that represents a universally unique identifier.
// It wraps the github.com/google/uuid implementation to provide domain-specific
// behavior and ensure immutability. Every aggregate in the system (shipments,
// branches, workers, webhook subscriptions) is keyed by one.
//
// The zero value of UUID is invalid and must be constructed using one of the
// provided factory functions: NewUUID, UUIDFromString, or UUIDFromBytes.
//
// UUID is immutable and thread-safe, making it suitable for concurrent use.
//
// Example usage:
//
//	// Mint an identifier for a new aggregate
//	branchID := kernel.NewUUID()
//
//	// Parse one arriving over the wire
//	workerID, err := kernel.UUIDFromString("2f1c8a3e-0f4d-47b9-9d2a-6c08ce51f3aa")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
// This is the primary way to mint identifiers for new aggregates.
//
// Example:
//
//	workerID := kernel.NewUUID()
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation.
// It accepts standard UUID formats including:
//   - "2f1c8a3e-0f4d-47b9-9d2a-6c08ce51f3aa"
//   - "{2f1c8a3e-0f4d-47b9-9d2a-6c08ce51f3aa}"
//   - "urn:uuid:2f1c8a3e-0f4d-47b9-9d2a-6c08ce51f3aa"
//
// Returns an error if the string is not a valid UUID format. This is the
// entry point for identifiers arriving from HTTP path parameters and
// request bodies.
//
// Example:
//
//	branchID, err := kernel.UUIDFromString(request.OriginBranchID)
//	if err != nil {
//	    return fmt.Errorf("invalid origin branch ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a byte slice, which must be exactly
// 16 bytes long. The persistence layer uses it to rehydrate identifiers
// stored as binary uuid columns. Unlike UUIDFromString, a nil UUID read
// back from storage is rejected here.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(dto.ID[:])
//	if err != nil {
//	    return nil, err
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the standard string representation of the UUID, in the
// form "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx". For a zero value UUID this
// returns "00000000-0000-0000-0000-000000000000".
//
// Used for log fields, JSON payloads, and audit entry keys.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value, not a byte slice; take
// id.Bytes()[:] when a slice is needed. Repositories call this when
// mapping aggregates to their DTOs.
//
// Example:
//
//	dto.AssignedWorkerID = workerID.Bytes()
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality.
//
// Example:
//
//	if shipment.OriginBranchID().IsEqual(shipment.DestBranchID()) {
//	    // degenerate route
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate checks if the UUID is properly constructed.
// Returns ErrUUIDIsNotConstructed if the UUID is a zero value (nil UUID).
// Aggregate constructors call this on every identifier they are handed.
//
// Example:
//
//	func NewWorker(id kernel.UUID) (*Worker, error) {
//	    if err := id.Validate(); err != nil {
//	        return nil, fmt.Errorf("invalid worker ID: %w", err)
//	    }
//	    return &Worker{id: id}, nil
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
