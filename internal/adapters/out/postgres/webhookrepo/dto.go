// Package webhookrepo provides data transfer objects and mapping functions
// for the webhook delivery subsystem: the read-only subscriber registry and
// the durable delivery records.
package webhookrepo

import (
	"time"

	"github.com/google/uuid"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/webhook"
)

// SubscriberDTO represents the database structure for webhook subscribers.
// Rows are managed by administration; this adapter only reads them.
type SubscriberDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Endpoint string
	Secret   string
	Active   bool `gorm:"index"`
}

// TableName specifies the database table name for subscriber entities.
func (SubscriberDTO) TableName() string {
	return "webhook_subscribers"
}

// DeliveryDTO represents the database structure for delivery records. The
// unique (subscriber_id, event_id) pair is the fan-out idempotency key;
// claimed_until carries the worker lease.
type DeliveryDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubscriberID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_deliveries_subscriber_event"`
	EventID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_deliveries_subscriber_event"`
	Endpoint      string
	Payload       []byte
	Status        string `gorm:"index"`
	Attempts      int
	NextAttemptAt *time.Time
	ClaimedUntil  *time.Time
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for delivery records.
func (DeliveryDTO) TableName() string {
	return "webhook_deliveries"
}

// subscriberToDomain converts a database DTO to a subscriber domain entity.
func subscriberToDomain(dto SubscriberDTO) (*webhook.Subscriber, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return webhook.NewSubscriber(id, dto.Endpoint, dto.Secret, dto.Active)
}

// deliveryFromDomain converts a delivery domain entity to its database
// representation.
func deliveryFromDomain(delivery *webhook.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:            delivery.ID().Bytes(),
		SubscriberID:  delivery.SubscriberID().Bytes(),
		EventID:       delivery.EventID().Bytes(),
		Endpoint:      delivery.Endpoint(),
		Payload:       delivery.Payload(),
		Status:        string(delivery.Status()),
		Attempts:      delivery.Attempts(),
		NextAttemptAt: delivery.NextAttemptAt(),
		LastError:     delivery.LastError(),
	}
}

// deliveryToDomain converts a database DTO to a delivery domain entity using
// RestoreDelivery.
func deliveryToDomain(dto DeliveryDTO) (*webhook.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	subscriberID, err := kernel.UUIDFromBytes(dto.SubscriberID[:])
	if err != nil {
		return nil, err
	}

	eventID, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return nil, err
	}

	return webhook.RestoreDelivery(
		id,
		subscriberID,
		eventID,
		dto.Endpoint,
		dto.Payload,
		webhook.DeliveryStatus(dto.Status),
		dto.Attempts,
		dto.NextAttemptAt,
		dto.LastError,
	)
}
