package cmd

import (
	"log/slog"

	"parcels/internal/adapters/out/postgres"
	"parcels/internal/adapters/out/webhookclient"
	"parcels/internal/core/application/events"
	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/webhook"
	"parcels/internal/core/domain/services"
	"parcels/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	picker     *services.WorkerPicker
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		picker:     services.NewWorkerPicker(),
		logger:     logger,
	}
}

func (c *CompositionRoot) RetryPolicy() webhook.RetryPolicy {
	return webhook.RetryPolicy{
		MaxAttempts: c.config.WebhookMaxAttempts,
		BaseBackoff: c.config.WebhookBaseBackoff,
		MaxBackoff:  c.config.WebhookMaxBackoff,
	}
}

func (c *CompositionRoot) CreateDispatcher() *events.Dispatcher {
	return events.NewDispatcher(
		&c.uowFactory,
		c.CreateAssignWorkerCommandHandler(),
		c.config.InvoiceAmountCents,
		c.config.InvoiceCurrency,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.CreateUoWFactory = FuncCreateUoWFactory(func() commands.CreateUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.CreateDispatcher(), c.logger)
}

func (c *CompositionRoot) CreateTransitionShipmentCommandHandler() commands.TransitionShipmentCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionShipmentCommandHandler(f, c.CreateDispatcher(), c.logger)
}

func (c *CompositionRoot) CreateAssignWorkerCommandHandler() commands.AssignWorkerCommandHandler {
	var f commands.AssignUoWFactory = FuncAssignUoWFactory(func() commands.AssignUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignWorkerCommandHandler(f, c.picker, c.logger)
}

func (c *CompositionRoot) CreateSweepSLACommandHandler() commands.SweepSLACommandHandler {
	var f commands.SweepUoWFactory = FuncSweepUoWFactory(func() commands.SweepUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepSLACommandHandler(f, c.CreateDispatcher(), c.logger)
}

func (c *CompositionRoot) CreateLockConsolidationsCommandHandler() commands.LockConsolidationsCommandHandler {
	var f commands.SweepUoWFactory = FuncSweepUoWFactory(func() commands.SweepUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLockConsolidationsCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateDeliverWebhooksCommandHandler() commands.DeliverWebhooksCommandHandler {
	var f commands.WebhookUoWFactory = FuncWebhookUoWFactory(func() commands.WebhookUoW {
		return c.uowFactory.Create()
	})
	sender := webhookclient.NewClient(c.config.WebhookSendTimeout)
	return commands.NewDeliverWebhooksCommandHandler(
		f,
		sender,
		c.RetryPolicy(),
		c.config.WebhookPoolSize,
		c.config.WebhookClaimTTL,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(
		f,
		c.CreateDispatcher(),
		c.RetryPolicy(),
		c.config.OutboxBatchSize,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetAuditEntriesQueryHandler() queries.GetAuditEntriesQueryHandler {
	return queries.NewGetAuditEntriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetExhaustedDeliveriesQueryHandler() queries.GetExhaustedDeliveriesQueryHandler {
	return queries.NewGetExhaustedDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSuggestWorkerQueryHandler() queries.SuggestWorkerQueryHandler {
	return queries.NewSuggestWorkerQueryHandler(c.gormDB, c.picker)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDeliverWebhooksCommandHandler(),
		c.CreateRelayOutboxCommandHandler(),
		c.CreateSweepSLACommandHandler(),
		c.CreateLockConsolidationsCommandHandler(),
		c.logger,
	)
}

type FuncTransitionUoWFactory func() commands.TransitionUoW

func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

type FuncCreateUoWFactory func() commands.CreateUoW

func (f FuncCreateUoWFactory) Create() commands.CreateUoW {
	return f()
}

type FuncAssignUoWFactory func() commands.AssignUoW

func (f FuncAssignUoWFactory) Create() commands.AssignUoW {
	return f()
}

type FuncSweepUoWFactory func() commands.SweepUoW

func (f FuncSweepUoWFactory) Create() commands.SweepUoW {
	return f()
}

type FuncWebhookUoWFactory func() commands.WebhookUoW

func (f FuncWebhookUoWFactory) Create() commands.WebhookUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
