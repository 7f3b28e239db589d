package commands

import (
	"errors"

	"parcels/internal/pkg/guard"
)

var ErrLockConsolidationsCommandIsNotConstructed = errors.New(
	"LockConsolidationsCommand must be created via NewLockConsolidationsCommand constructor",
)

// LockConsolidationsCommand triggers one pass of the consolidation auto-lock
// monitor. Batches whose cutoff has passed get their lock set; a locked batch
// accepts no further parcels.
type LockConsolidationsCommand struct {
	guard guard.ConstructorGuard
}

// NewLockConsolidationsCommand creates a command to trigger one auto-lock pass.
func NewLockConsolidationsCommand() LockConsolidationsCommand {
	return LockConsolidationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *LockConsolidationsCommand) Validate() error {
	return c.guard.Validate(ErrLockConsolidationsCommandIsNotConstructed)
}
