package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrAssignWorkerCommandIsNotConstructed = errors.New(
	"AssignWorkerCommand must be created via NewAssignWorkerCommand constructor",
)

// AssignWorkerCommand represents a request to put a worker in charge of a
// shipment. With an explicit worker id the assignment is manual; without one
// the handler picks the least-loaded active worker of the destination branch.
type AssignWorkerCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	workerID   *kernel.UUID
	actor      string

	guard guard.ConstructorGuard
}

// NewAssignWorkerCommand creates a command to assign a specific worker.
func NewAssignWorkerCommand(
	shipmentID kernel.UUID, workerID kernel.UUID, actor string,
) (AssignWorkerCommand, error) {
	cmd := AssignWorkerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setWorkerID(workerID),
		cmd.setActor(actor),
	); err != nil {
		return AssignWorkerCommand{}, err
	}

	return cmd, nil
}

// NewAutoAssignCommand creates a command that leaves the worker choice to the
// assignment engine. Used by the creation reaction and the assignment
// endpoint when no worker is named.
func NewAutoAssignCommand(shipmentID kernel.UUID, actor string) (AssignWorkerCommand, error) {
	cmd := AssignWorkerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setActor(actor),
	); err != nil {
		return AssignWorkerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c AssignWorkerCommand) Validate() error {
	return c.guard.Validate(ErrAssignWorkerCommandIsNotConstructed)
}

// ShipmentID returns the shipment to assign.
func (c AssignWorkerCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// WorkerID returns the explicitly requested worker, or nil for engine choice.
func (c AssignWorkerCommand) WorkerID() *kernel.UUID {
	return c.workerID
}

// Actor returns the identity requesting the assignment.
func (c AssignWorkerCommand) Actor() string {
	return c.actor
}

func (c *AssignWorkerCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *AssignWorkerCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.workerID = &id
	return nil
}

func (c *AssignWorkerCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
