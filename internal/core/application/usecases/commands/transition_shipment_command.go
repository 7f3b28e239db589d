package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var (
	ErrTransitionShipmentCommandIsNotConstructed = errors.New(
		"TransitionShipmentCommand must be created via NewTransitionShipmentCommand constructor",
	)
	// ErrActorIsRequired rejects state-changing requests with no acting
	// identity; every mutation must be attributable in the audit trail.
	ErrActorIsRequired = errors.New("actor is required")
)

// TransitionShipmentCommand represents a request to advance a shipment to a
// target lifecycle status at a specific expected version.
//
// The expected version is the caller's statement of the state it decided on.
// If the stored version moved on in the meantime the handler reports a
// conflict and applies nothing, so callers must re-read before retrying.
//
// Example:
//
//	cmd, err := NewTransitionShipmentCommand(shipmentID, shipment.Arrived, 7, "scanner:hub-3", "")
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type TransitionShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID      kernel.UUID
	targetStatus    shipment.Status
	expectedVersion int
	actor           string
	reason          string

	guard guard.ConstructorGuard
}

// NewTransitionShipmentCommand creates a command to advance a shipment's
// lifecycle. Validates the identifier, the target status, the expected
// version and the acting identity. Reason is optional operator context and
// may be empty.
func NewTransitionShipmentCommand(
	shipmentID kernel.UUID,
	targetStatus shipment.Status,
	expectedVersion int,
	actor string,
	reason string,
) (TransitionShipmentCommand, error) {
	cmd := TransitionShipmentCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setTargetStatus(targetStatus),
		cmd.setExpectedVersion(expectedVersion),
		cmd.setActor(actor),
	); err != nil {
		return TransitionShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionShipmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to advance.
func (c TransitionShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// TargetStatus returns the requested lifecycle status.
func (c TransitionShipmentCommand) TargetStatus() shipment.Status {
	return c.targetStatus
}

// ExpectedVersion returns the version the caller observed before requesting
// the transition.
func (c TransitionShipmentCommand) ExpectedVersion() int {
	return c.expectedVersion
}

// Actor returns the identity requesting the transition.
func (c TransitionShipmentCommand) Actor() string {
	return c.actor
}

// Reason returns the optional free-form context supplied with the request.
func (c TransitionShipmentCommand) Reason() string {
	return c.reason
}

func (c *TransitionShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *TransitionShipmentCommand) setTargetStatus(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.targetStatus = status
	return nil
}

func (c *TransitionShipmentCommand) setExpectedVersion(version int) error {
	if version < shipment.InitialVersion {
		return errs.NewVersionIsInvalidErrorWithCause("expectedVersion")
	}
	c.expectedVersion = version
	return nil
}

func (c *TransitionShipmentCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
