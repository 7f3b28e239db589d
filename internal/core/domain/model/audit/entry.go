// Package audit provides the append-only audit trail entity. Entries are
// written once per state-changing operation (including rejected transition
// attempts) and never mutated or deleted.
package audit

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Action identifies the type of auditable operation.
type Action string

const (
	ActionShipmentCreated     Action = "shipment.created"
	ActionShipmentTransition  Action = "shipment.transitioned"
	ActionTransitionRejected  Action = "shipment.transition_rejected"
	ActionShipmentAssigned    Action = "shipment.assigned"
	ActionSLABreach           Action = "shipment.sla_breached"
	ActionConsolidationLocked Action = "consolidation.locked"
	ActionInvoiceCreated      Action = "invoice.created"
)

// Entry is a single append-only audit record. Before/After hold a snapshot
// fragment of the subject around the operation.
type Entry struct {
	id         kernel.UUID
	actor      string
	action     Action
	subjectID  kernel.UUID
	before     map[string]any
	after      map[string]any
	recordedAt time.Time

	isConstructed bool
}

// NewEntry creates an audit record for one operation on one subject.
// Actor is the acting identity: a user, "system", or a monitor name.
func NewEntry(
	id kernel.UUID,
	actor string,
	action Action,
	subjectID kernel.UUID,
	before map[string]any,
	after map[string]any,
	recordedAt time.Time,
) (*Entry, error) {
	if err := errors.Join(id.Validate(), subjectID.Validate()); err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, errs.NewValueIsRequiredError("actor")
	}
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}

	return &Entry{
		id:            id,
		actor:         actor,
		action:        action,
		subjectID:     subjectID,
		before:        before,
		after:         after,
		recordedAt:    recordedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// Actor returns the identity that performed the operation.
func (e *Entry) Actor() string {
	return e.actor
}

// Action returns the type of the audited operation.
func (e *Entry) Action() Action {
	return e.action
}

// SubjectID returns the entity the operation acted on.
func (e *Entry) SubjectID() kernel.UUID {
	return e.subjectID
}

// Before returns the subject snapshot fragment prior to the operation.
func (e *Entry) Before() map[string]any {
	return e.before
}

// After returns the subject snapshot fragment following the operation.
func (e *Entry) After() map[string]any {
	return e.after
}

// RecordedAt returns when the entry was appended.
func (e *Entry) RecordedAt() time.Time {
	return e.recordedAt
}
