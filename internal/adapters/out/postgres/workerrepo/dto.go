// Package workerrepo provides data transfer objects and mapping functions
// for worker persistence.
package workerrepo

import (
	"github.com/google/uuid"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/worker"
)

// WorkerDTO represents the database structure for persisting workers.
// branch_id is indexed because the assignment engine reads per branch.
type WorkerDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID uuid.UUID `gorm:"type:uuid;index"`
	Name     string
	Active   bool
}

// TableName specifies the database table name for worker entities.
func (WorkerDTO) TableName() string {
	return "workers"
}

// fromDomain converts a worker domain entity to its database representation.
func fromDomain(aggregate *worker.Worker) WorkerDTO {
	return WorkerDTO{
		ID:       aggregate.ID().Bytes(),
		BranchID: aggregate.BranchID().Bytes(),
		Name:     aggregate.Name(),
		Active:   aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to a worker domain entity.
func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	return worker.NewWorker(id, branchID, dto.Name, dto.Active)
}
