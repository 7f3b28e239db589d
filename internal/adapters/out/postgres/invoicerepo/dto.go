// Package invoicerepo provides data transfer objects and mapping functions
// for auto-invoicing. The unique shipment id is the natural key: a shipment
// is billed at most once no matter how often the delivery reaction runs.
package invoicerepo

import (
	"time"

	"github.com/google/uuid"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
)

// InvoiceDTO represents the database structure for invoices.
type InvoiceDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	AmountCents int64
	Currency    string
	IssuedAt    time.Time
}

// TableName specifies the database table name for invoice entities.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// fromDomain converts an invoice domain entity to its database
// representation.
func fromDomain(aggregate *invoice.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:          aggregate.ID().Bytes(),
		ShipmentID:  aggregate.ShipmentID().Bytes(),
		AmountCents: aggregate.AmountCents(),
		Currency:    aggregate.Currency(),
		IssuedAt:    aggregate.IssuedAt(),
	}
}

// toDomain converts a database DTO to an invoice domain entity.
func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	return invoice.NewInvoice(id, shipmentID, dto.AmountCents, dto.Currency, dto.IssuedAt)
}
