// Package outboxrepo provides data transfer objects and mapping functions for
// the transactional outbox. An event row is written in the same transaction
// as the state change that produced it and describes one accepted domain
// event plus its dispatch bookkeeping.
package outboxrepo

import (
	"time"

	"github.com/google/uuid"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/core/ports"
)

// EventDTO represents the database structure for outbox rows. dispatched_at
// marks completion; exhausted parks a row that spent its retry budget while
// keeping it visible for reconciliation.
type EventDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID    uuid.UUID `gorm:"type:uuid;index"`
	EventType     string
	StatusFrom    int
	StatusTo      int
	Actor         string
	Reason        string
	OccurredAt    time.Time `gorm:"index"`
	Attempts      int
	NextAttemptAt *time.Time
	LastError     string
	Exhausted     bool
	DispatchedAt  *time.Time
}

// TableName specifies the database table name for outbox rows.
func (EventDTO) TableName() string {
	return "outbox_events"
}

// fromDomain converts an accepted domain event to a fresh outbox row, due
// immediately.
func fromDomain(event shipment.TransitionedEvent) EventDTO {
	due := event.OccurredAt

	return EventDTO{
		ID:            event.EventID.Bytes(),
		ShipmentID:    event.ShipmentID.Bytes(),
		EventType:     event.EventType,
		StatusFrom:    int(event.From),
		StatusTo:      int(event.To),
		Actor:         event.Actor,
		Reason:        event.Reason,
		OccurredAt:    event.OccurredAt,
		NextAttemptAt: &due,
	}
}

// toDomain converts a database DTO to an outbox entry.
func toDomain(dto EventDTO) (ports.OutboxEntry, error) {
	eventID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxEntry{}, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return ports.OutboxEntry{}, err
	}

	return ports.OutboxEntry{
		Event: shipment.TransitionedEvent{
			EventID:    eventID,
			ShipmentID: shipmentID,
			EventType:  dto.EventType,
			From:       shipment.Status(dto.StatusFrom),
			To:         shipment.Status(dto.StatusTo),
			Actor:      dto.Actor,
			Reason:     dto.Reason,
			OccurredAt: dto.OccurredAt,
		},
		Attempts: dto.Attempts,
	}, nil
}
