package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
)

// Notification kinds enqueued by the dispatcher.
const (
	NotificationShipmentDelivered = "shipment_delivered"
)

// NotificationQueue enqueues customer notifications for an external mailer to
// consume. Entries are idempotent by (shipment, kind).
type NotificationQueue interface {
	// EnqueueIfAbsent adds a notification unless one of the same kind already
	// exists for the shipment. Returns true only when an entry was inserted.
	EnqueueIfAbsent(ctx context.Context, shipmentID kernel.UUID, kind string, at time.Time) (bool, error)
}
