package webhook

import (
	"encoding/json"
	"time"

	"parcels/internal/core/domain/model/shipment"
)

// EventPayload is the outbound wire contract. EventID is stable across
// redeliveries of the same event so receivers can de-duplicate.
type EventPayload struct {
	EventID    string    `json:"eventId"`
	ShipmentID string    `json:"shipmentId"`
	EventType  string    `json:"eventType"`
	OccurredAt time.Time `json:"occurredAt"`
	StatusFrom string    `json:"statusFrom"`
	StatusTo   string    `json:"statusTo"`
	Reason     string    `json:"reason,omitempty"`
}

// NewEventPayload maps a domain event onto the wire contract.
func NewEventPayload(event shipment.TransitionedEvent) EventPayload {
	return EventPayload{
		EventID:    event.EventID.String(),
		ShipmentID: event.ShipmentID.String(),
		EventType:  event.EventType,
		OccurredAt: event.OccurredAt,
		StatusFrom: event.From.String(),
		StatusTo:   event.To.String(),
		Reason:     event.Reason,
	}
}

// Marshal serializes the payload for storage on the delivery record.
func (p EventPayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}
