// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. This package implements the repository pattern
// for the shipment aggregate, handling the conversion between domain entities
// and database representations.
package shipmentrepo

import (
	"time"

	"github.com/google/uuid"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The version column backs the conditional write; status is
// indexed for the monitor sweeps.
type ShipmentDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status           int        `gorm:"index"`
	Version          int
	OriginBranchID   uuid.UUID  `gorm:"type:uuid"`
	DestBranchID     uuid.UUID  `gorm:"type:uuid"`
	AssignedWorkerID *uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt       *time.Time
	SLAThresholdNs   int64
	HandedOverAt     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// SLABreachDTO is the insert-once marker behind the exactly-once SLA alert.
// The primary key on shipment id makes concurrent sweep runs agree on a
// single inserting winner.
type SLABreachDTO struct {
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	BreachedAt time.Time
}

// TableName specifies the database table name for breach markers.
func (SLABreachDTO) TableName() string {
	return "sla_breaches"
}

// fromDomain converts a shipment domain aggregate to its database
// representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var workerID *uuid.UUID
	if id := aggregate.AssignedWorker(); id != nil {
		raw := id.Bytes()
		workerID = &raw
	}

	return ShipmentDTO{
		ID:               aggregate.ID().Bytes(),
		Status:           int(aggregate.Status()),
		Version:          aggregate.Version(),
		OriginBranchID:   aggregate.OriginBranchID().Bytes(),
		DestBranchID:     aggregate.DestBranchID().Bytes(),
		AssignedWorkerID: workerID,
		AssignedAt:       aggregate.AssignedAt(),
		SLAThresholdNs:   int64(aggregate.SLAThreshold()),
		HandedOverAt:     aggregate.HandedOverAt(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate using
// RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	originID, err := kernel.UUIDFromBytes(dto.OriginBranchID[:])
	if err != nil {
		return nil, err
	}

	destID, err := kernel.UUIDFromBytes(dto.DestBranchID[:])
	if err != nil {
		return nil, err
	}

	var workerID *kernel.UUID
	if dto.AssignedWorkerID != nil {
		wID, workerErr := kernel.UUIDFromBytes((*dto.AssignedWorkerID)[:])
		if workerErr != nil {
			return nil, workerErr
		}

		workerID = &wID
	}

	return shipment.RestoreShipment(
		id,
		shipment.Status(dto.Status),
		dto.Version,
		originID,
		destID,
		workerID,
		dto.AssignedAt,
		time.Duration(dto.SLAThresholdNs),
		dto.HandedOverAt,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
