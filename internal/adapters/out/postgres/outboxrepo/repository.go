package outboxrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add appends an accepted event, due for dispatch immediately. Must run on a
// connection inside the producing transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, event shipment.TransitionedEvent) error {
	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetDue retrieves up to limit undispatched, unexhausted events whose next
// attempt is due, oldest occurrence first.
func (r *GormOutboxRepository) GetDue(
	ctx context.Context, now time.Time, limit int,
) ([]ports.OutboxEntry, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL AND NOT exhausted").
		Where("next_attempt_at <= ?", now).
		Order("occurred_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ports.OutboxEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// MarkDispatched records that every reaction for the event completed.
func (r *GormOutboxRepository) MarkDispatched(
	ctx context.Context, eventID kernel.UUID, at time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id = ?", eventID.Bytes()).
		Update("dispatched_at", at)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox event", eventID.String())
	}

	return nil
}

// Reschedule records a failed dispatch pass: attempts is bumped and the next
// attempt is scheduled, or the row is parked as exhausted when nextAttemptAt
// is nil. The last error is retained either way.
func (r *GormOutboxRepository) Reschedule(
	ctx context.Context, eventID kernel.UUID, cause error, nextAttemptAt *time.Time,
) error {
	updates := map[string]any{
		"attempts":        gorm.Expr("attempts + 1"),
		"next_attempt_at": nextAttemptAt,
		"last_error":      cause.Error(),
	}
	if nextAttemptAt == nil {
		updates["exhausted"] = true
	}

	result := r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id = ?", eventID.Bytes()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox event", eventID.String())
	}

	return nil
}
