// Package notificationrepo provides the durable customer notification queue.
// The core only enqueues; an external mailer consumes the rows.
package notificationrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parcels/internal/core/domain/model/kernel"
)

// NotificationDTO represents the database structure for queued notifications.
// The unique (shipment_id, kind) pair keeps the delivery reaction idempotent.
type NotificationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_notifications_shipment_kind"`
	Kind       string    `gorm:"uniqueIndex:idx_notifications_shipment_kind"`
	EnqueuedAt time.Time
}

// TableName specifies the database table name for queued notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationQueue implements NotificationQueue using GORM.
type GormNotificationQueue struct {
	db *gorm.DB
}

// NewGormNotificationQueue creates a new GORM notification queue.
func NewGormNotificationQueue(db *gorm.DB) *GormNotificationQueue {
	return &GormNotificationQueue{db: db}
}

// EnqueueIfAbsent adds a notification unless one of the same kind already
// exists for the shipment. ON CONFLICT DO NOTHING on the (shipment, kind)
// pair.
func (q *GormNotificationQueue) EnqueueIfAbsent(
	ctx context.Context, shipmentID kernel.UUID, kind string, at time.Time,
) (bool, error) {
	if err := shipmentID.Validate(); err != nil {
		return false, err
	}

	dto := NotificationDTO{
		ID:         kernel.NewUUID().Bytes(),
		ShipmentID: shipmentID.Bytes(),
		Kind:       kind,
		EnqueuedAt: at,
	}

	result := q.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
