package commands

import (
	"errors"

	"parcels/internal/pkg/guard"
)

var ErrDeliverWebhooksCommandIsNotConstructed = errors.New(
	"DeliverWebhooksCommand must be created via NewDeliverWebhooksCommand constructor",
)

// DeliverWebhooksCommand triggers one pass of the webhook delivery worker
// over the due delivery records.
type DeliverWebhooksCommand struct {
	guard guard.ConstructorGuard
}

// NewDeliverWebhooksCommand creates a command to trigger one delivery pass.
func NewDeliverWebhooksCommand() DeliverWebhooksCommand {
	return DeliverWebhooksCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *DeliverWebhooksCommand) Validate() error {
	return c.guard.Validate(ErrDeliverWebhooksCommandIsNotConstructed)
}
