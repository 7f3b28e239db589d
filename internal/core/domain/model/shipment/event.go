package shipment

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
)

// Event types carried on the wire contract and in the outbox.
const (
	// EventTypeCreated is emitted when a shipment enters the system.
	EventTypeCreated = "shipment.created"

	// EventTypeTransitioned is emitted once per successful lifecycle transition.
	EventTypeTransitioned = "shipment.transitioned"

	// EventTypeSLABreached is emitted by the SLA monitor when a shipment
	// exceeds its elapsed-time budget. Alert-only: no status change.
	EventTypeSLABreached = "shipment.sla_breached"
)

// TransitionedEvent is the domain event describing one observed lifecycle
// change of a single shipment. Its EventID is stable across redeliveries so
// subscribers can de-duplicate. Actor names the identity whose request caused
// the change; audit entries inherit it.
//
// Events for a single shipment are emitted in transition order because each
// transition requires the previous version; there is no ordering guarantee
// across shipments.
type TransitionedEvent struct {
	EventID    kernel.UUID
	ShipmentID kernel.UUID
	EventType  string
	From       Status
	To         Status
	Actor      string
	Reason     string
	OccurredAt time.Time
}

// NewTransitionedEvent creates the event for a successful from->to transition.
// Reason is free-form operator context and may be empty.
func NewTransitionedEvent(
	shipmentID kernel.UUID, from, to Status, actor, reason string, occurredAt time.Time,
) TransitionedEvent {
	return TransitionedEvent{
		EventID:    kernel.NewUUID(),
		ShipmentID: shipmentID,
		EventType:  EventTypeTransitioned,
		From:       from,
		To:         to,
		Actor:      actor,
		Reason:     reason,
		OccurredAt: occurredAt,
	}
}

// NewCreatedEvent creates the event for a shipment entering the system.
// From and To both carry Created: there is no prior state.
func NewCreatedEvent(shipmentID kernel.UUID, actor string, occurredAt time.Time) TransitionedEvent {
	return TransitionedEvent{
		EventID:    kernel.NewUUID(),
		ShipmentID: shipmentID,
		EventType:  EventTypeCreated,
		From:       Created,
		To:         Created,
		Actor:      actor,
		OccurredAt: occurredAt,
	}
}

// NewSLABreachedEvent creates the alert event for a shipment that exceeded
// its elapsed-time budget while in the given status.
func NewSLABreachedEvent(
	shipmentID kernel.UUID, status Status, actor string, occurredAt time.Time,
) TransitionedEvent {
	return TransitionedEvent{
		EventID:    kernel.NewUUID(),
		ShipmentID: shipmentID,
		EventType:  EventTypeSLABreached,
		From:       status,
		To:         status,
		Actor:      actor,
		OccurredAt: occurredAt,
	}
}
