package invoicerepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// GormInvoiceRepository implements InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GORM invoice repository.
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// CreateIfNotExists inserts the invoice unless its shipment is already
// billed. ON CONFLICT DO NOTHING on the unique shipment id; only the caller
// whose insert landed sees true.
func (r *GormInvoiceRepository) CreateIfNotExists(
	ctx context.Context, aggregate *invoice.Invoice,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// GetByShipment retrieves the invoice for a shipment, if any.
func (r *GormInvoiceRepository) GetByShipment(
	ctx context.Context, shipmentID kernel.UUID,
) (*invoice.Invoice, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "shipment_id = ?", shipmentID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", shipmentID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
