package auditrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parcels/internal/core/domain/model/audit"
)

// GormAuditRepository implements AuditRepository using GORM. The trail is
// append-only: this repository exposes no update or delete, and reads belong
// to the audit query handler.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append stores one audit entry. The insert is ON CONFLICT DO NOTHING on the
// entry id, so reactions that re-append under event re-dispatch stay
// idempotent.
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}
