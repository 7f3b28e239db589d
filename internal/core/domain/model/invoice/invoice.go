// Package invoice provides the auto-invoicing entity created on delivery.
// Invoices are idempotent by natural key: at most one invoice exists per
// shipment, enforced by the storage layer's unique constraint.
package invoice

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

// Invoice bills one delivered shipment. AmountCents is resolved by the
// surrounding billing configuration when the invoice is cut.
type Invoice struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	amountCents int64
	currency    string
	issuedAt    time.Time

	isConstructed bool
}

// NewInvoice creates an invoice for a delivered shipment.
func NewInvoice(
	id kernel.UUID, shipmentID kernel.UUID, amountCents int64, currency string, issuedAt time.Time,
) (*Invoice, error) {
	if err := errors.Join(id.Validate(), shipmentID.Validate()); err != nil {
		return nil, err
	}
	if amountCents < 0 {
		return nil, errs.NewValueIsInvalidError("amount")
	}
	if currency == "" {
		return nil, errs.NewValueIsRequiredError("currency")
	}

	return &Invoice{
		id:            id,
		shipmentID:    shipmentID,
		amountCents:   amountCents,
		currency:      currency,
		issuedAt:      issuedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Invoice instance was properly constructed.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

// ID returns the invoice's unique identifier.
func (i *Invoice) ID() kernel.UUID {
	return i.id
}

// ShipmentID returns the shipment the invoice bills. Natural key: at most one
// invoice per shipment.
func (i *Invoice) ShipmentID() kernel.UUID {
	return i.shipmentID
}

// AmountCents returns the billed amount in minor units.
func (i *Invoice) AmountCents() int64 {
	return i.amountCents
}

// Currency returns the ISO currency code of the amount.
func (i *Invoice) Currency() string {
	return i.currency
}

// IssuedAt returns when the invoice was cut.
func (i *Invoice) IssuedAt() time.Time {
	return i.issuedAt
}
