package commands

import (
	"context"
	"log/slog"
	"time"

	"parcels/internal/core/domain/model/shipment"
)

// CreateShipmentCommandHandler registers new shipments. The shipment row and
// its shipment.created outbox event commit as one unit; the dispatcher then
// runs the creation reactions (audit, webhook fan-out, worker assignment).
type CreateShipmentCommandHandler struct {
	uowFactory CreateUoWFactory
	dispatcher EventDispatcher
	logger     *slog.Logger
}

// NewCreateShipmentCommandHandler creates a handler for shipment registration.
func NewCreateShipmentCommandHandler(
	uowFactory CreateUoWFactory,
	dispatcher EventDispatcher,
	logger *slog.Logger,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "create_shipment_handler"),
	}
}

// Handle registers the shipment in created status at the initial version and
// accepts its creation event. Both route endpoints must name existing
// branches; an unknown one is rejected with *errs.ObjectNotFoundError before
// anything is written. Dispatch failures are the relay's problem, not the
// caller's: acceptance is durable once this method returns.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(), cmd.OriginBranchID(), cmd.DestBranchID(), cmd.SLAThreshold(),
	)
	if err != nil {
		return err
	}

	event := shipment.NewCreatedEvent(aggregate.ID(), cmd.Actor(), time.Now().UTC())

	uow := h.uowFactory.Create()

	branches := uow.BranchRepository()
	if _, err = branches.Get(ctx, cmd.OriginBranchID()); err != nil {
		return err
	}
	if _, err = branches.Get(ctx, cmd.DestBranchID()); err != nil {
		return err
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.dispatcher.Dispatch(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "creation reactions incomplete, outbox relay will retry",
			"shipment_id", aggregate.ID().String(),
			"event_id", event.EventID.String(),
			"error", err)
	}

	return nil
}
