package commands

import (
	"errors"

	"parcels/internal/pkg/guard"
)

var ErrSweepSLACommandIsNotConstructed = errors.New(
	"SweepSLACommand must be created via NewSweepSLACommand constructor",
)

// SweepSLACommand triggers one pass of the SLA monitor over all active
// shipments. This batch operation raises an alert for every shipment whose
// elapsed time exceeds its stored threshold; it never changes a status.
//
// Example:
//
//	cmd := NewSweepSLACommand()
//	handler := NewSweepSLACommandHandler(uowFactory, dispatcher, logger)
//
//	// Run periodically from the scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("SLA sweep incomplete: %v", err)
//	}
type SweepSLACommand struct {
	guard guard.ConstructorGuard
}

// NewSweepSLACommand creates a command to trigger one SLA sweep pass.
func NewSweepSLACommand() SweepSLACommand {
	return SweepSLACommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *SweepSLACommand) Validate() error {
	return c.guard.Validate(ErrSweepSLACommandIsNotConstructed)
}
