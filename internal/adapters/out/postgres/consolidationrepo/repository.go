package consolidationrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// GormConsolidationRepository implements ConsolidationRepository using GORM.
type GormConsolidationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormConsolidationRepository creates a new GORM consolidation repository.
func NewGormConsolidationRepository(db *gorm.DB, tracker aggregateTracker) *GormConsolidationRepository {
	return &GormConsolidationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new consolidation batch to the database.
func (r *GormConsolidationRepository) Add(ctx context.Context, aggregate *consolidation.Consolidation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a consolidation by ID.
func (r *GormConsolidationRepository) Get(
	ctx context.Context, id kernel.UUID,
) (*consolidation.Consolidation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ConsolidationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("consolidation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetUnlockedPastCutoff retrieves batches whose cutoff has passed and whose
// lock is still unset.
func (r *GormConsolidationRepository) GetUnlockedPastCutoff(
	ctx context.Context, now time.Time,
) ([]*consolidation.Consolidation, error) {
	var dtos []ConsolidationDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "cutoff_at <= ? AND locked_at IS NULL", now).Error
	if err != nil {
		return nil, err
	}

	batches := make([]*consolidation.Consolidation, 0, len(dtos))
	for _, dto := range dtos {
		batch, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		batches = append(batches, batch)
	}

	return batches, nil
}

// LockIfUnlocked sets locked_at with a single conditional update. The lock is
// monotone: the locked_at IS NULL guard means at most one caller ever sees an
// affected row, and the column is never written again.
func (r *GormConsolidationRepository) LockIfUnlocked(
	ctx context.Context, id kernel.UUID, at time.Time,
) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&ConsolidationDTO{}).
		Where("id = ? AND locked_at IS NULL", id.Bytes()).
		Update("locked_at", at)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
