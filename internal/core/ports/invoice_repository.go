package ports

import (
	"context"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
)

// InvoiceRepository defines persistence for auto-invoicing.
type InvoiceRepository interface {
	// CreateIfNotExists inserts the invoice unless one already exists for its
	// shipment (the natural key). Returns true only when a row was inserted,
	// so invoking the delivery reaction twice never bills a shipment twice.
	CreateIfNotExists(ctx context.Context, aggregate *invoice.Invoice) (bool, error)

	// GetByShipment retrieves the invoice for a shipment, if any.
	GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*invoice.Invoice, error)
}
