// Package consolidation provides the consolidation aggregate: a batch of
// shipments awaiting a cutoff. Its lock is monotone — locked_at is set exactly
// once, by the auto-lock sweep or an authorized manual action, and never unset.
package consolidation

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var (
	ErrConsolidationIsNotConstructed = errors.New(
		"Consolidation must be created via NewConsolidation constructor")

	// ErrAlreadyLocked is returned when Lock is called on a locked batch.
	ErrAlreadyLocked = errors.New("consolidation is already locked")
)

// Consolidation is a batch of shipments bound for the same lane, closed to
// further additions once locked. Locking in memory is advisory: the repository
// persists it with a conditional write guarded by locked_at IS NULL, so two
// concurrent sweep runs cannot both win.
type Consolidation struct {
	id       kernel.UUID
	branchID kernel.UUID
	cutoffAt time.Time
	lockedAt *time.Time

	isConstructed bool
}

// NewConsolidation creates an unlocked consolidation with the given cutoff.
func NewConsolidation(id kernel.UUID, branchID kernel.UUID, cutoffAt time.Time) (*Consolidation, error) {
	c := &Consolidation{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setBranchID(branchID),
		c.setCutoffAt(cutoffAt),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreConsolidation reconstructs a consolidation from persistence.
func RestoreConsolidation(
	id kernel.UUID, branchID kernel.UUID, cutoffAt time.Time, lockedAt *time.Time,
) (*Consolidation, error) {
	if err := errors.Join(id.Validate(), branchID.Validate()); err != nil {
		return nil, err
	}
	if cutoffAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("cutoff time")
	}

	return &Consolidation{
		id:            id,
		branchID:      branchID,
		cutoffAt:      cutoffAt,
		lockedAt:      lockedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Consolidation instance was properly constructed.
func (c *Consolidation) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConsolidationIsNotConstructed
	}
	return nil
}

// ID returns the consolidation's unique identifier.
func (c *Consolidation) ID() kernel.UUID {
	return c.id
}

// BranchID returns the branch assembling the batch.
func (c *Consolidation) BranchID() kernel.UUID {
	return c.branchID
}

// CutoffAt returns the scheduled cutoff after which the batch must lock.
func (c *Consolidation) CutoffAt() time.Time {
	return c.cutoffAt
}

// LockedAt returns when the batch was locked, or nil while it is open.
func (c *Consolidation) LockedAt() *time.Time {
	return c.lockedAt
}

// IsLocked reports whether the batch has been locked.
func (c *Consolidation) IsLocked() bool {
	return c.lockedAt != nil
}

// IsPastCutoff reports whether the scheduled cutoff has passed as of now.
func (c *Consolidation) IsPastCutoff(now time.Time) bool {
	return now.After(c.cutoffAt)
}

// Lock sets locked_at exactly once. Returns ErrAlreadyLocked on a second call;
// the lock is never unset.
func (c *Consolidation) Lock(at time.Time) error {
	if c.lockedAt != nil {
		return ErrAlreadyLocked
	}
	t := at
	c.lockedAt = &t
	return nil
}

func (c *Consolidation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Consolidation) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.branchID = id
	return nil
}

func (c *Consolidation) setCutoffAt(cutoffAt time.Time) error {
	if cutoffAt.IsZero() {
		return errs.NewValueIsRequiredError("cutoff time")
	}
	c.cutoffAt = cutoffAt
	return nil
}
