// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence through the conditional-write
// discipline of the repositories.
package commands

import (
	"context"

	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/core/ports"
)

// EventDispatcher hands an accepted domain event to the side-effect reaction
// list. Implementations run every reaction regardless of individual failures
// and mark the event dispatched only when all of them succeeded; the returned
// error is bookkeeping for the outbox relay, never a signal to undo the
// transition.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event shipment.TransitionedEvent) error
}

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// BranchRepoFactory provides access to the branch repository within a transaction.
	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	// WorkerRepoFactory provides access to the worker repository within a transaction.
	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	// ConsolidationRepoFactory provides access to the consolidation repository within a transaction.
	ConsolidationRepoFactory interface {
		ConsolidationRepository() ports.ConsolidationRepository
	}

	// WebhookRepoFactory provides access to the webhook repository within a transaction.
	WebhookRepoFactory interface {
		WebhookRepository() ports.WebhookRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// TransitionUoW manages the transition write: shipment mutation, audit and
	// outbox acceptance committed as one unit.
	TransitionUoW interface {
		TxManager
		ShipmentRepoFactory
		AuditRepoFactory
		OutboxRepoFactory
	}

	// TransitionUoWFactory creates transition unit of work instances.
	TransitionUoWFactory interface {
		Create() TransitionUoW
	}

	// CreateUoW manages shipment registration: branch reads to validate the
	// route, then the shipment row and outbox acceptance committed as one unit.
	CreateUoW interface {
		TxManager
		BranchRepoFactory
		ShipmentRepoFactory
		OutboxRepoFactory
	}

	// CreateUoWFactory creates registration unit of work instances.
	CreateUoWFactory interface {
		Create() CreateUoW
	}

	// AssignUoW manages worker assignment: shipment write plus worker reads.
	AssignUoW interface {
		TxManager
		ShipmentRepoFactory
		WorkerRepoFactory
		AuditRepoFactory
	}

	// AssignUoWFactory creates assignment unit of work instances.
	AssignUoWFactory interface {
		Create() AssignUoW
	}

	// SweepUoW manages a monitor sweep: shipment/consolidation reads, breach
	// markers, audit entries and outbox acceptance.
	SweepUoW interface {
		TxManager
		ShipmentRepoFactory
		ConsolidationRepoFactory
		AuditRepoFactory
		OutboxRepoFactory
	}

	// SweepUoWFactory creates sweep unit of work instances.
	SweepUoWFactory interface {
		Create() SweepUoW
	}

	// WebhookUoW provides the delivery worker's repository access. Delivery
	// claims are single conditional writes, so no transaction spans them.
	WebhookUoW interface {
		WebhookRepoFactory
	}

	// WebhookUoWFactory creates webhook unit of work instances.
	WebhookUoWFactory interface {
		Create() WebhookUoW
	}

	// OutboxUoW provides the outbox relay's repository access.
	OutboxUoW interface {
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
