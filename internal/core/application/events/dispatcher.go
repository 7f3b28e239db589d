// Package events runs the side effects of accepted domain events. The
// dispatcher is the only consumer of the outbox: command handlers call it
// inline after commit, and the relay job calls it again for events whose
// reactions did not all complete.
package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/audit"
	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/core/domain/model/webhook"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// actorSystem attributes reactions that no human requested.
const actorSystem = "system"

// Dispatcher runs the ordered reaction list for one event: audit trail,
// webhook fan-out, delivery billing and the creation-time worker assignment.
//
// Reactions are isolated: a failure is logged and the remaining reactions
// still run, and no failure ever propagates into the transition that emitted
// the event. Every reaction is idempotent, keyed on the event or shipment id,
// so the at-least-once delivery of the outbox relay is safe. Only when every
// reaction succeeded is the outbox row marked dispatched.
type Dispatcher struct {
	uowFactory         ports.UnitOfWorkFactory
	assignHandler      commands.AssignWorkerCommandHandler
	invoiceAmountCents int64
	invoiceCurrency    string
	logger             *slog.Logger
}

// NewDispatcher creates the reaction dispatcher. The invoice amount and
// currency apply to every auto-created invoice; per-shipment pricing lives
// outside this system.
func NewDispatcher(
	uowFactory ports.UnitOfWorkFactory,
	assignHandler commands.AssignWorkerCommandHandler,
	invoiceAmountCents int64,
	invoiceCurrency string,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		uowFactory:         uowFactory,
		assignHandler:      assignHandler,
		invoiceAmountCents: invoiceAmountCents,
		invoiceCurrency:    invoiceCurrency,
		logger:             logger.With("component", "dispatcher"),
	}
}

var _ commands.EventDispatcher = (*Dispatcher)(nil)

// Dispatch runs every reaction for the event and reports the joined failures.
// A non-nil return means the outbox row stays undispatched and the relay will
// call Dispatch again later; the caller must not treat it as a command
// failure.
func (d *Dispatcher) Dispatch(ctx context.Context, event shipment.TransitionedEvent) error {
	uow := d.uowFactory.Create()

	now := time.Now().UTC()

	reactions := []struct {
		name string
		run  func() error
	}{
		{"audit", func() error { return d.appendAudit(ctx, uow, event, now) }},
		{"webhook_fanout", func() error { return d.fanOutWebhooks(ctx, uow, event, now) }},
		{"billing", func() error { return d.billDelivered(ctx, uow, event, now) }},
		{"auto_assign", func() error { return d.autoAssign(ctx, event) }},
	}

	var dispatchErr error
	for _, reaction := range reactions {
		if err := reaction.run(); err != nil {
			d.logger.ErrorContext(ctx, "reaction failed",
				"reaction", reaction.name,
				"event_id", event.EventID.String(),
				"event_type", event.EventType,
				"shipment_id", event.ShipmentID.String(),
				"error", err)
			dispatchErr = errors.Join(dispatchErr, err)
		}
	}

	if dispatchErr != nil {
		return dispatchErr
	}

	return uow.OutboxRepository().MarkDispatched(ctx, event.EventID, time.Now().UTC())
}

// appendAudit writes the trail entry for the event. The entry id is the event
// id, so a re-dispatched event finds its entry already present.
func (d *Dispatcher) appendAudit(
	ctx context.Context, uow ports.UnitOfWork, event shipment.TransitionedEvent, now time.Time,
) error {
	action, before, after := auditShape(event)

	entry, err := audit.NewEntry(
		event.EventID, event.Actor, action, event.ShipmentID, before, after, now,
	)
	if err != nil {
		return err
	}

	return uow.AuditRepository().Append(ctx, entry)
}

func auditShape(event shipment.TransitionedEvent) (audit.Action, map[string]any, map[string]any) {
	switch event.EventType {
	case shipment.EventTypeCreated:
		return audit.ActionShipmentCreated,
			nil,
			map[string]any{"status": event.To.String()}
	case shipment.EventTypeSLABreached:
		return audit.ActionSLABreach,
			map[string]any{"status": event.From.String()},
			map[string]any{"status": event.To.String(), "sla_breached": true}
	default:
		after := map[string]any{"status": event.To.String()}
		if event.Reason != "" {
			after["reason"] = event.Reason
		}

		return audit.ActionShipmentTransition,
			map[string]any{"status": event.From.String()},
			after
	}
}

// fanOutWebhooks enqueues one delivery record per active subscriber. The
// payload is rendered once; the (subscriber, event) pair is the idempotency
// key, so a re-dispatch tops up missing records without duplicating sent
// ones.
func (d *Dispatcher) fanOutWebhooks(
	ctx context.Context, uow ports.UnitOfWork, event shipment.TransitionedEvent, now time.Time,
) error {
	subscribers, err := uow.WebhookRepository().GetActiveSubscribers(ctx)
	if err != nil {
		return err
	}
	if len(subscribers) == 0 {
		return nil
	}

	payload, err := webhook.NewEventPayload(event).Marshal()
	if err != nil {
		return err
	}

	var fanOutErr error
	for _, subscriber := range subscribers {
		delivery, deliveryErr := webhook.NewDelivery(
			kernel.NewUUID(), subscriber.ID(), event.EventID, subscriber.Endpoint(), payload, now,
		)
		if deliveryErr != nil {
			fanOutErr = errors.Join(fanOutErr, deliveryErr)
			continue
		}

		if _, deliveryErr = uow.WebhookRepository().AddDeliveryIfAbsent(ctx, delivery); deliveryErr != nil {
			fanOutErr = errors.Join(fanOutErr, deliveryErr)
		}
	}

	return fanOutErr
}

// billDelivered creates the invoice and enqueues the customer notification
// when a shipment reaches delivered. Both writes are insert-if-absent on the
// shipment id, so only the first dispatch of the delivery event bills.
//
// The invoice audit entry is attempted on every dispatch, keyed on the
// persisted invoice id: a re-dispatch that finds the invoice already billed
// may still owe the entry from a partial earlier run.
func (d *Dispatcher) billDelivered(
	ctx context.Context, uow ports.UnitOfWork, event shipment.TransitionedEvent, now time.Time,
) error {
	if event.EventType != shipment.EventTypeTransitioned || event.To != shipment.Delivered {
		return nil
	}

	bill, err := invoice.NewInvoice(
		kernel.NewUUID(), event.ShipmentID, d.invoiceAmountCents, d.invoiceCurrency, now,
	)
	if err != nil {
		return err
	}

	created, err := uow.InvoiceRepository().CreateIfNotExists(ctx, bill)
	if err != nil {
		return err
	}

	if !created {
		if bill, err = uow.InvoiceRepository().GetByShipment(ctx, event.ShipmentID); err != nil {
			return err
		}
	}

	if err = d.auditInvoice(ctx, uow, bill, now); err != nil {
		return err
	}

	_, err = uow.NotificationQueue().EnqueueIfAbsent(
		ctx, event.ShipmentID, ports.NotificationShipmentDelivered, now,
	)
	return err
}

func (d *Dispatcher) auditInvoice(
	ctx context.Context, uow ports.UnitOfWork, bill *invoice.Invoice, now time.Time,
) error {
	entry, err := audit.NewEntry(
		bill.ID(),
		actorSystem,
		audit.ActionInvoiceCreated,
		bill.ShipmentID(),
		nil,
		map[string]any{
			"invoice_id":   bill.ID().String(),
			"amount_cents": bill.AmountCents(),
			"currency":     bill.Currency(),
		},
		now,
	)
	if err != nil {
		return err
	}

	return uow.AuditRepository().Append(ctx, entry)
}

// autoAssign hands a freshly created shipment to the assignment engine. An
// empty branch and a lost version race are both fine: the next operator
// action or sweep reconsiders, so neither blocks the dispatch.
func (d *Dispatcher) autoAssign(ctx context.Context, event shipment.TransitionedEvent) error {
	if event.EventType != shipment.EventTypeCreated {
		return nil
	}

	cmd, err := commands.NewAutoAssignCommand(event.ShipmentID, actorSystem)
	if err != nil {
		return err
	}

	err = d.assignHandler.Handle(ctx, cmd)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrNoWorkersAvailable):
		d.logger.InfoContext(ctx, "no workers available for auto-assignment",
			"shipment_id", event.ShipmentID.String())
		return nil
	default:
		var conflictErr *errs.VersionConflictError
		if errors.As(err, &conflictErr) {
			d.logger.InfoContext(ctx, "auto-assignment lost a version race, skipping",
				"shipment_id", event.ShipmentID.String())
			return nil
		}
		return err
	}
}
