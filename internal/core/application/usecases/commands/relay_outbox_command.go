package commands

import (
	"errors"

	"parcels/internal/pkg/guard"
)

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand triggers one pass of the outbox relay over accepted
// events whose reactions did not all complete.
type RelayOutboxCommand struct {
	guard guard.ConstructorGuard
}

// NewRelayOutboxCommand creates a command to trigger one relay pass.
func NewRelayOutboxCommand() RelayOutboxCommand {
	return RelayOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}
