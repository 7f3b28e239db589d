package webhookrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/webhook"
	"parcels/internal/pkg/errs"
)

// GormWebhookRepository implements WebhookRepository using GORM.
type GormWebhookRepository struct {
	db *gorm.DB
}

// NewGormWebhookRepository creates a new GORM webhook repository.
func NewGormWebhookRepository(db *gorm.DB) *GormWebhookRepository {
	return &GormWebhookRepository{db: db}
}

// GetActiveSubscribers retrieves all subscribers that receive new events.
func (r *GormWebhookRepository) GetActiveSubscribers(ctx context.Context) ([]*webhook.Subscriber, error) {
	var dtos []SubscriberDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "active").Error; err != nil {
		return nil, err
	}

	subscribers := make([]*webhook.Subscriber, 0, len(dtos))
	for _, dto := range dtos {
		subscriber, err := subscriberToDomain(dto)
		if err != nil {
			return nil, err
		}
		subscribers = append(subscribers, subscriber)
	}

	return subscribers, nil
}

// GetSubscriber retrieves one subscriber by ID, active or not.
func (r *GormWebhookRepository) GetSubscriber(
	ctx context.Context, id kernel.UUID,
) (*webhook.Subscriber, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SubscriberDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("webhook subscriber", id.String())
		}
		return nil, err
	}

	return subscriberToDomain(dto)
}

// AddDeliveryIfAbsent enqueues a delivery record. The insert is ON CONFLICT
// DO NOTHING on the unique (subscriber, event) pair, so re-running the
// fan-out reaction tops up missing records without duplicating existing
// ones.
func (r *GormWebhookRepository) AddDeliveryIfAbsent(
	ctx context.Context, delivery *webhook.Delivery,
) (bool, error) {
	if err := delivery.Validate(); err != nil {
		return false, err
	}

	dto := deliveryFromDomain(delivery)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// GetDueDeliveries retrieves up to limit deliveries awaiting an attempt:
// pending or failed, due, and not held by a live claim. Oldest due first.
func (r *GormWebhookRepository) GetDueDeliveries(
	ctx context.Context, now time.Time, limit int,
) ([]*webhook.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("status IN (?, ?)", string(webhook.DeliveryPending), string(webhook.DeliveryFailed)).
		Where("next_attempt_at <= ?", now).
		Where("claimed_until IS NULL OR claimed_until <= ?", now).
		Order("next_attempt_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*webhook.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		delivery, domainErr := deliveryToDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		deliveries = append(deliveries, delivery)
	}

	return deliveries, nil
}

// ClaimDelivery acquires a delivery with a single conditional write. The
// guard re-checks due status and claim liveness, so of the workers racing on
// the same record exactly one sees an affected row.
func (r *GormWebhookRepository) ClaimDelivery(
	ctx context.Context, id kernel.UUID, until time.Time,
) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	now := time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ?", id.Bytes()).
		Where("status IN (?, ?)", string(webhook.DeliveryPending), string(webhook.DeliveryFailed)).
		Where("next_attempt_at <= ?", now).
		Where("claimed_until IS NULL OR claimed_until <= ?", now).
		Update("claimed_until", until)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// UpdateDelivery persists an attempt outcome and releases the claim.
func (r *GormWebhookRepository) UpdateDelivery(ctx context.Context, delivery *webhook.Delivery) error {
	if err := delivery.Validate(); err != nil {
		return err
	}

	dto := deliveryFromDomain(delivery)

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":          dto.Status,
			"attempts":        dto.Attempts,
			"next_attempt_at": dto.NextAttemptAt,
			"last_error":      dto.LastError,
			"claimed_until":   nil,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("webhook delivery", delivery.ID().String())
	}

	return nil
}
