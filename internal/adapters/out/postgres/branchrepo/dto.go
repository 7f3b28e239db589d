// Package branchrepo provides data transfer objects and mapping functions
// for branch persistence.
package branchrepo

import (
	"github.com/google/uuid"

	"parcels/internal/core/domain/model/branch"
	"parcels/internal/core/domain/model/kernel"
)

// BranchDTO represents the database structure for persisting branches.
// parent_id is null for root branches.
type BranchDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	Name     string
	Capacity int
}

// TableName specifies the database table name for branch entities.
func (BranchDTO) TableName() string {
	return "branches"
}

// fromDomain converts a branch domain entity to its database representation.
func fromDomain(aggregate *branch.Branch) BranchDTO {
	dto := BranchDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Capacity: aggregate.Capacity(),
	}

	if parentID := aggregate.ParentID(); parentID != nil {
		parent := parentID.Bytes()
		dto.ParentID = &parent
	}

	return dto
}

// toDomain converts a database DTO to a branch domain entity.
func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentID != nil {
		parent, parentErr := kernel.UUIDFromBytes(dto.ParentID[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &parent
	}

	return branch.NewBranch(id, dto.Name, parentID, dto.Capacity)
}
