// Package branch provides the branch entity of the parcel logistics system.
// Branches form a tree via the parent pointer and are read-mostly from the
// core's perspective: the lifecycle engine reads them, administration owns them.
package branch

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

// Branch is a node in the branch hierarchy. ParentID is nil for root branches;
// the hierarchy contains no cycles (enforced at write time by administration,
// assumed here).
type Branch struct {
	id       kernel.UUID
	name     string
	parentID *kernel.UUID
	capacity int

	isConstructed bool
}

// NewBranch creates a branch node. Capacity is the number of parcels the
// branch can hold at once and must be positive.
func NewBranch(id kernel.UUID, name string, parentID *kernel.UUID, capacity int) (*Branch, error) {
	b := &Branch{isConstructed: true}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setParentID(parentID),
		b.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the Branch instance was properly constructed.
func (b *Branch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBranchIsNotConstructed
	}
	return nil
}

// ID returns the branch's unique identifier.
func (b *Branch) ID() kernel.UUID {
	return b.id
}

// Name returns the branch's display name.
func (b *Branch) Name() string {
	return b.name
}

// ParentID returns the parent branch's ID, or nil for a root branch.
func (b *Branch) ParentID() *kernel.UUID {
	return b.parentID
}

// Capacity returns the branch's parcel capacity.
func (b *Branch) Capacity() int {
	return b.capacity
}

func (b *Branch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Branch) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	b.name = name
	return nil
}

func (b *Branch) setParentID(parentID *kernel.UUID) error {
	if parentID != nil {
		if err := parentID.Validate(); err != nil {
			return err
		}
		if parentID.IsEqual(b.id) {
			return errs.NewValueIsInvalidError("parent branch id")
		}
	}
	b.parentID = parentID
	return nil
}

func (b *Branch) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidError("capacity")
	}
	b.capacity = capacity
	return nil
}
