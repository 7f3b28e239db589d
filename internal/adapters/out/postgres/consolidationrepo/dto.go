// Package consolidationrepo provides data transfer objects and mapping
// functions for consolidation batch persistence. The locked_at column backs
// the monotone lock: it is written exactly once, by the conditional update in
// the repository.
package consolidationrepo

import (
	"time"

	"github.com/google/uuid"

	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
)

// ConsolidationDTO represents the database structure for persisting
// consolidation batches.
type ConsolidationDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID uuid.UUID `gorm:"type:uuid;index"`
	CutoffAt time.Time `gorm:"index"`
	LockedAt *time.Time
}

// TableName specifies the database table name for consolidation entities.
func (ConsolidationDTO) TableName() string {
	return "consolidations"
}

// fromDomain converts a consolidation domain aggregate to its database
// representation.
func fromDomain(aggregate *consolidation.Consolidation) ConsolidationDTO {
	return ConsolidationDTO{
		ID:       aggregate.ID().Bytes(),
		BranchID: aggregate.BranchID().Bytes(),
		CutoffAt: aggregate.CutoffAt(),
		LockedAt: aggregate.LockedAt(),
	}
}

// toDomain converts a database DTO to a consolidation domain aggregate using
// RestoreConsolidation.
func toDomain(dto ConsolidationDTO) (*consolidation.Consolidation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	return consolidation.RestoreConsolidation(id, branchID, dto.CutoffAt, dto.LockedAt)
}
