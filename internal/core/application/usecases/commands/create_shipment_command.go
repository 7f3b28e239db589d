package commands

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrSLAThresholdIsInvalid = errors.New("sla threshold must be greater than 0")
)

// CreateShipmentCommand represents a request to register a new shipment on a
// lane between two branches.
//
// Example:
//
//	shipmentID := kernel.NewUUID()
//	cmd, err := NewCreateShipmentCommand(shipmentID, originID, destID, 48*time.Hour, "operator:ana")
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create shipment: %w", err)
//	}
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID     kernel.UUID
	originBranchID kernel.UUID
	destBranchID   kernel.UUID
	slaThreshold   time.Duration
	actor          string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment.
// Validates identifiers, the SLA threshold and the acting identity.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	originBranchID kernel.UUID,
	destBranchID kernel.UUID,
	slaThreshold time.Duration,
	actor string,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setOriginBranchID(originBranchID),
		cmd.setDestBranchID(destBranchID),
		cmd.setSLAThreshold(slaThreshold),
		cmd.setActor(actor),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// OriginBranchID returns the branch where the shipment enters the system.
func (c CreateShipmentCommand) OriginBranchID() kernel.UUID {
	return c.originBranchID
}

// DestBranchID returns the branch where the shipment is to be delivered.
func (c CreateShipmentCommand) DestBranchID() kernel.UUID {
	return c.destBranchID
}

// SLAThreshold returns the elapsed-time budget for the shipment's lane.
func (c CreateShipmentCommand) SLAThreshold() time.Duration {
	return c.slaThreshold
}

// Actor returns the identity requesting the creation.
func (c CreateShipmentCommand) Actor() string {
	return c.actor
}

func (c *CreateShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *CreateShipmentCommand) setOriginBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.originBranchID = id
	return nil
}

func (c *CreateShipmentCommand) setDestBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.destBranchID = id
	return nil
}

func (c *CreateShipmentCommand) setSLAThreshold(threshold time.Duration) error {
	if threshold <= 0 {
		return ErrSLAThresholdIsInvalid
	}
	c.slaThreshold = threshold
	return nil
}

func (c *CreateShipmentCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
