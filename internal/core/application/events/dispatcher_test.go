package events_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parcels/internal/core/application/events"
	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/audit"
	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/core/domain/model/webhook"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
)

const (
	testInvoiceAmountCents = int64(1500)
	testInvoiceCurrency    = "EUR"
)

func newDispatcher(
	uowFactory ports.UnitOfWorkFactory, assignFactory commands.AssignUoWFactory,
) *events.Dispatcher {
	assignHandler := commands.NewAssignWorkerCommandHandler(
		assignFactory, services.NewWorkerPicker(), testLogger())
	return events.NewDispatcher(
		uowFactory, assignHandler, testInvoiceAmountCents, testInvoiceCurrency, testLogger())
}

func Test_Dispatcher_Dispatch_TransitionedEvent(t *testing.T) {
	// Arrange
	ctx := t.Context()

	event := shipment.NewTransitionedEvent(
		kernel.NewUUID(), shipment.HandedOver, shipment.Arrived, "ops", "dock scan", time.Now().UTC())

	var entry *audit.Entry
	mockAuditRepo := &MockAuditRepository{}
	mockAuditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		entry = e
		return true
	})).Return(nil).Once()

	mockWebhookRepo := &MockWebhookRepository{}
	mockWebhookRepo.On("GetActiveSubscribers", ctx).Return([]*webhook.Subscriber{}, nil).Once()

	mockOutboxRepo := &MockOutboxRepository{}
	mockOutboxRepo.On("MarkDispatched", ctx, event.EventID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	mockUoW := &MockUnitOfWork{}
	mockUoW.On("AuditRepository").Return(mockAuditRepo).Once()
	mockUoW.On("WebhookRepository").Return(mockWebhookRepo).Once()
	mockUoW.On("OutboxRepository").Return(mockOutboxRepo).Once()

	mockFactory := &MockUnitOfWorkFactory{}
	mockFactory.On("Create").Return(mockUoW).Once()

	dispatcher := newDispatcher(mockFactory, &MockAssignUoWFactory{})

	// Act
	err := dispatcher.Dispatch(ctx, event)

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, event.EventID, entry.ID())
	assert.Equal(t, "ops", entry.Actor())
	assert.Equal(t, audit.ActionShipmentTransition, entry.Action())
	assert.Equal(t, event.ShipmentID, entry.SubjectID())
	assert.Equal(t, "handed_over", entry.Before()["status"])
	assert.Equal(t, "arrived", entry.After()["status"])
	assert.Equal(t, "dock scan", entry.After()["reason"])
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockAuditRepo.AssertExpectations(t)
	mockWebhookRepo.AssertExpectations(t)
	mockOutboxRepo.AssertExpectations(t)
}

func Test_Dispatcher_Dispatch_FansOutToActiveSubscribers(t *testing.T) {
	// Arrange
	ctx := t.Context()

	event := shipment.NewTransitionedEvent(
		kernel.NewUUID(), shipment.Loaded, shipment.Departed, "ops", "", time.Now().UTC())

	first, err := webhook.NewSubscriber(
		kernel.NewUUID(), "https://first.example.com/hooks", "first-secret", true)
	require.NoError(t, err)
	second, err := webhook.NewSubscriber(
		kernel.NewUUID(), "https://second.example.com/hooks", "second-secret", true)
	require.NoError(t, err)

	mockAuditRepo := &MockAuditRepository{}
	mockAuditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once()

	var deliveries []*webhook.Delivery
	mockWebhookRepo := &MockWebhookRepository{}
	mockWebhookRepo.On("GetActiveSubscribers", ctx).
		Return([]*webhook.Subscriber{first, second}, nil).Once()
	mockWebhookRepo.On("AddDeliveryIfAbsent", ctx, mock.MatchedBy(func(d *webhook.Delivery) bool {
		deliveries = append(deliveries, d)
		return true
	})).Return(true, nil).Twice()

	mockOutboxRepo := &MockOutboxRepository{}
	mockOutboxRepo.On("MarkDispatched", ctx, event.EventID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	mockUoW := &MockUnitOfWork{}
	mockUoW.On("AuditRepository").Return(mockAuditRepo).Once()
	mockUoW.On("WebhookRepository").Return(mockWebhookRepo).Times(3)
	mockUoW.On("OutboxRepository").Return(mockOutboxRepo).Once()

	mockFactory := &MockUnitOfWorkFactory{}
	mockFactory.On("Create").Return(mockUoW).Once()

	dispatcher := newDispatcher(mockFactory, &MockAssignUoWFactory{})

	// Act
	err = dispatcher.Dispatch(ctx, event)

	// Assert
	assert.NoError(t, err)
	require.Len(t, deliveries, 2)
	assert.Equal(t, first.ID(), deliveries[0].SubscriberID())
	assert.Equal(t, first.Endpoint(), deliveries[0].Endpoint())
	assert.Equal(t, second.ID(), deliveries[1].SubscriberID())
	for _, delivery := range deliveries {
		assert.Equal(t, event.EventID, delivery.EventID())
		assert.NotEmpty(t, delivery.Payload())
	}
	mockWebhookRepo.AssertExpectations(t)
	mockOutboxRepo.AssertExpectations(t)
}

func Test_Dispatcher_Dispatch_AuditFailureDoesNotStopFanOut(t *testing.T) {
	// Arrange
	ctx := t.Context()

	event := shipment.NewTransitionedEvent(
		kernel.NewUUID(), shipment.InTransit, shipment.ArrivedDest, "ops", "", time.Now().UTC())

	auditErr := errors.New("audit insert failed")

	mockAuditRepo := &MockAuditRepository{}
	mockAuditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(auditErr).Once()

	mockWebhookRepo := &MockWebhookRepository{}
	mockWebhookRepo.On("GetActiveSubscribers", ctx).Return([]*webhook.Subscriber{}, nil).Once()

	mockOutboxRepo := &MockOutboxRepository{}

	mockUoW := &MockUnitOfWork{}
	mockUoW.On("AuditRepository").Return(mockAuditRepo).Once()
	mockUoW.On("WebhookRepository").Return(mockWebhookRepo).Once()

	mockFactory := &MockUnitOfWorkFactory{}
	mockFactory.On("Create").Return(mockUoW).Once()

	dispatcher := newDispatcher(mockFactory, &MockAssignUoWFactory{})

	// Act
	err := dispatcher.Dispatch(ctx, event)

	// Assert
	assert.ErrorIs(t, err, auditErr)
	mockWebhookRepo.AssertExpectations(t)
	mockOutboxRepo.AssertNotCalled(t, "MarkDispatched", mock.Anything, mock.Anything, mock.Anything)
}

func Test_Dispatcher_Dispatch_DeliveredEventBillsAndNotifies(t *testing.T) {
	// Arrange
	ctx := t.Context()

	event := shipment.NewTransitionedEvent(
		kernel.NewUUID(), shipment.OutForDelivery, shipment.Delivered, "courier-7", "", time.Now().UTC())

	var invoiceEntry *audit.Entry
	mockAuditRepo := &MockAuditRepository{}
	mockAuditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action() == audit.ActionShipmentTransition
	})).Return(nil).Once()
	mockAuditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		if e.Action() != audit.ActionInvoiceCreated {
			return false
		}
		invoiceEntry = e
		return true
	})).Return(nil).Once()

	mockWebhookRepo := &MockWebhookRepository{}
	mockWebhookRepo.On("GetActiveSubscribers", ctx).Return([]*webhook.Subscriber{}, nil).Once()

	var billed *invoice.Invoice
	mockInvoiceRepo := &MockInvoiceRepository{}
	mockInvoiceRepo.On("CreateIfNotExists", ctx, mock.MatchedBy(func(bill *invoice.Invoice) bool {
		billed = bill
		return true
	})).Return(true, nil).Once()

	mockQueue := &MockNotificationQueue{}
	mockQueue.On("EnqueueIfAbsent",
		ctx, event.ShipmentID, ports.NotificationShipmentDelivered, mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()

	mockOutboxRepo := &MockOutboxRepository{}
	mockOutboxRepo.On("MarkDispatched", ctx, event.EventID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	mockUoW := &MockUnitOfWork{}
	mockUoW.On("AuditRepository").Return(mockAuditRepo).Twice()
	mockUoW.On("WebhookRepository").Return(mockWebhookRepo).Once()
	mockUoW.On("InvoiceRepository").Return(mockInvoiceRepo).Once()
	mockUoW.On("NotificationQueue").Return(mockQueue).Once()
	mockUoW.On("OutboxRepository").Return(mockOutboxRepo).Once()

	mockFactory := &MockUnitOfWorkFactory{}
	mockFactory.On("Create").Return(mockUoW).Once()

	dispatcher := newDispatcher(mockFactory, &MockAssignUoWFactory{})

	// Act
	err := dispatcher.Dispatch(ctx, event)

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, billed)
	assert.Equal(t, event.ShipmentID, billed.ShipmentID())
	assert.Equal(t, testInvoiceAmountCents, billed.AmountCents())
	assert.Equal(t, testInvoiceCurrency, billed.Currency())
	require.NotNil(t, invoiceEntry)
	assert.Equal(t, billed.ID(), invoiceEntry.ID())
	assert.Equal(t, billed.ID().String(), invoiceEntry.After()["invoice_id"])
	mockAuditRepo.AssertExpectations(t)
	mockInvoiceRepo.AssertExpectations(t)
	mockQueue.AssertExpectations(t)
	mockOutboxRepo.AssertExpectations(t)
}

func Test_Dispatcher_Dispatch_DeliveredEventBillsOnlyOnce(t *testing.T) {
	// Arrange
	ctx := t.Context()

	event := shipment.NewTransitionedEvent(
		kernel.NewUUID(), shipment.OutForDelivery, shipment.Delivered, "courier-7", "", time.Now().UTC())

	existing, err := invoice.NewInvoice(
		kernel.NewUUID(), event.ShipmentID, testInvoiceAmountCents, testInvoiceCurrency, time.Now().UTC())
	require.NoError(t, err)

	var invoiceEntry *audit.Entry
	mockAuditRepo := &MockAuditRepository{}
	mockAuditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action() == audit.ActionShipmentTransition
	})).Return(nil).Once()
	mockAuditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		if e.Action() != audit.ActionInvoiceCreated {
			return false
		}
		invoiceEntry = e
		return true
	})).Return(nil).Once()

	mockWebhookRepo := &MockWebhookRepository{}
	mockWebhookRepo.On("GetActiveSubscribers", ctx).Return([]*webhook.Subscriber{}, nil).Once()

	mockInvoiceRepo := &MockInvoiceRepository{}
	mockInvoiceRepo.On("CreateIfNotExists", ctx, mock.AnythingOfType("*invoice.Invoice")).
		Return(false, nil).Once()
	mockInvoiceRepo.On("GetByShipment", ctx, event.ShipmentID).Return(existing, nil).Once()

	mockQueue := &MockNotificationQueue{}
	mockQueue.On("EnqueueIfAbsent",
		ctx, event.ShipmentID, ports.NotificationShipmentDelivered, mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()

	mockOutboxRepo := &MockOutboxRepository{}
	mockOutboxRepo.On("MarkDispatched", ctx, event.EventID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	mockUoW := &MockUnitOfWork{}
	mockUoW.On("AuditRepository").Return(mockAuditRepo).Twice()
	mockUoW.On("WebhookRepository").Return(mockWebhookRepo).Once()
	mockUoW.On("InvoiceRepository").Return(mockInvoiceRepo).Twice()
	mockUoW.On("NotificationQueue").Return(mockQueue).Once()
	mockUoW.On("OutboxRepository").Return(mockOutboxRepo).Once()

	mockFactory := &MockUnitOfWorkFactory{}
	mockFactory.On("Create").Return(mockUoW).Once()

	dispatcher := newDispatcher(mockFactory, &MockAssignUoWFactory{})

	// Act
	err = dispatcher.Dispatch(ctx, event)

	// Assert: no second billing, but the audit entry for the existing invoice
	// is still appended (idempotent on the invoice id).
	assert.NoError(t, err)
	require.NotNil(t, invoiceEntry)
	assert.Equal(t, existing.ID(), invoiceEntry.ID())
	mockAuditRepo.AssertExpectations(t)
	mockInvoiceRepo.AssertExpectations(t)
	mockQueue.AssertExpectations(t)
	mockOutboxRepo.AssertExpectations(t)
}

func Test_Dispatcher_Dispatch_RetryAfterPartialBillingStillAuditsInvoice(t *testing.T) {
	// A first dispatch that lands the invoice but fails the audit append
	// leaves the event undispatched; the retry must recover the entry even
	// though the invoice already exists.

	// Arrange
	ctx := t.Context()

	event := shipment.NewTransitionedEvent(
		kernel.NewUUID(), shipment.OutForDelivery, shipment.Delivered, "courier-7", "", time.Now().UTC())

	persisted, err := invoice.NewInvoice(
		kernel.NewUUID(), event.ShipmentID, testInvoiceAmountCents, testInvoiceCurrency, time.Now().UTC())
	require.NoError(t, err)

	auditErr := errors.New("audit store unavailable")

	var billed *invoice.Invoice
	firstAudit := &MockAuditRepository{}
	firstAudit.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action() == audit.ActionShipmentTransition
	})).Return(nil).Once()
	firstAudit.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action() == audit.ActionInvoiceCreated
	})).Return(auditErr).Once()

	firstWebhooks := &MockWebhookRepository{}
	firstWebhooks.On("GetActiveSubscribers", ctx).Return([]*webhook.Subscriber{}, nil).Once()

	firstInvoices := &MockInvoiceRepository{}
	firstInvoices.On("CreateIfNotExists", ctx, mock.MatchedBy(func(bill *invoice.Invoice) bool {
		billed = bill
		return true
	})).Return(true, nil).Once()

	firstUoW := &MockUnitOfWork{}
	firstUoW.On("AuditRepository").Return(firstAudit).Twice()
	firstUoW.On("WebhookRepository").Return(firstWebhooks).Once()
	firstUoW.On("InvoiceRepository").Return(firstInvoices).Once()

	var retryEntry *audit.Entry
	retryAudit := &MockAuditRepository{}
	retryAudit.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action() == audit.ActionShipmentTransition
	})).Return(nil).Once()
	retryAudit.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		if e.Action() != audit.ActionInvoiceCreated {
			return false
		}
		retryEntry = e
		return true
	})).Return(nil).Once()

	retryWebhooks := &MockWebhookRepository{}
	retryWebhooks.On("GetActiveSubscribers", ctx).Return([]*webhook.Subscriber{}, nil).Once()

	retryInvoices := &MockInvoiceRepository{}
	retryInvoices.On("CreateIfNotExists", ctx, mock.AnythingOfType("*invoice.Invoice")).
		Return(false, nil).Once()
	retryInvoices.On("GetByShipment", ctx, event.ShipmentID).Return(persisted, nil).Once()

	retryQueue := &MockNotificationQueue{}
	retryQueue.On("EnqueueIfAbsent",
		ctx, event.ShipmentID, ports.NotificationShipmentDelivered, mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()

	retryOutbox := &MockOutboxRepository{}
	retryOutbox.On("MarkDispatched", ctx, event.EventID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	retryUoW := &MockUnitOfWork{}
	retryUoW.On("AuditRepository").Return(retryAudit).Twice()
	retryUoW.On("WebhookRepository").Return(retryWebhooks).Once()
	retryUoW.On("InvoiceRepository").Return(retryInvoices).Twice()
	retryUoW.On("NotificationQueue").Return(retryQueue).Once()
	retryUoW.On("OutboxRepository").Return(retryOutbox).Once()

	mockFactory := &MockUnitOfWorkFactory{}
	mockFactory.On("Create").Return(firstUoW).Once()
	mockFactory.On("Create").Return(retryUoW).Once()

	dispatcher := newDispatcher(mockFactory, &MockAssignUoWFactory{})

	// Act
	firstErr := dispatcher.Dispatch(ctx, event)
	retryErr := dispatcher.Dispatch(ctx, event)

	// Assert
	require.ErrorIs(t, firstErr, auditErr)
	firstUoW.AssertNotCalled(t, "OutboxRepository")

	assert.NoError(t, retryErr)
	require.NotNil(t, billed)
	require.NotNil(t, retryEntry)
	assert.Equal(t, persisted.ID(), retryEntry.ID())
	assert.Equal(t, persisted.ID().String(), retryEntry.After()["invoice_id"])
	retryAudit.AssertExpectations(t)
	retryInvoices.AssertExpectations(t)
	retryOutbox.AssertExpectations(t)
}

func Test_Dispatcher_Dispatch_CreatedEventSkipsAssignedShipment(t *testing.T) {
	// Arrange
	ctx := t.Context()

	aggregate, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 48*time.Hour)
	require.NoError(t, err)
	require.NoError(t, aggregate.AssignWorker(kernel.NewUUID(), time.Now().UTC()))

	event := shipment.NewCreatedEvent(aggregate.ID(), "ops", time.Now().UTC())

	mockAuditRepo := &MockAuditRepository{}
	mockAuditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action() == audit.ActionShipmentCreated && e.Before() == nil
	})).Return(nil).Once()

	mockWebhookRepo := &MockWebhookRepository{}
	mockWebhookRepo.On("GetActiveSubscribers", ctx).Return([]*webhook.Subscriber{}, nil).Once()

	mockOutboxRepo := &MockOutboxRepository{}
	mockOutboxRepo.On("MarkDispatched", ctx, event.EventID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	mockUoW := &MockUnitOfWork{}
	mockUoW.On("AuditRepository").Return(mockAuditRepo).Once()
	mockUoW.On("WebhookRepository").Return(mockWebhookRepo).Once()
	mockUoW.On("OutboxRepository").Return(mockOutboxRepo).Once()

	mockFactory := &MockUnitOfWorkFactory{}
	mockFactory.On("Create").Return(mockUoW).Once()

	mockShipmentRepo := &MockShipmentRepository{}
	mockShipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	mockAssignUoW := &MockAssignUoW{}
	mockAssignUoW.On("ShipmentRepository").Return(mockShipmentRepo).Once()

	mockAssignFactory := &MockAssignUoWFactory{}
	mockAssignFactory.On("Create").Return(mockAssignUoW).Once()

	dispatcher := newDispatcher(mockFactory, mockAssignFactory)

	// Act
	err = dispatcher.Dispatch(ctx, event)

	// Assert
	assert.NoError(t, err)
	mockAssignFactory.AssertExpectations(t)
	mockAssignUoW.AssertExpectations(t)
	mockShipmentRepo.AssertExpectations(t)
	mockOutboxRepo.AssertExpectations(t)
}

func Test_Dispatcher_Dispatch_CreatedEventToleratesEmptyBranch(t *testing.T) {
	// Arrange
	ctx := t.Context()

	aggregate, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 48*time.Hour)
	require.NoError(t, err)

	event := shipment.NewCreatedEvent(aggregate.ID(), "ops", time.Now().UTC())

	mockAuditRepo := &MockAuditRepository{}
	mockAuditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once()

	mockWebhookRepo := &MockWebhookRepository{}
	mockWebhookRepo.On("GetActiveSubscribers", ctx).Return([]*webhook.Subscriber{}, nil).Once()

	mockOutboxRepo := &MockOutboxRepository{}
	mockOutboxRepo.On("MarkDispatched", ctx, event.EventID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	mockUoW := &MockUnitOfWork{}
	mockUoW.On("AuditRepository").Return(mockAuditRepo).Once()
	mockUoW.On("WebhookRepository").Return(mockWebhookRepo).Once()
	mockUoW.On("OutboxRepository").Return(mockOutboxRepo).Once()

	mockFactory := &MockUnitOfWorkFactory{}
	mockFactory.On("Create").Return(mockUoW).Once()

	mockShipmentRepo := &MockShipmentRepository{}
	mockShipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	mockWorkerRepo := &MockWorkerRepository{}
	mockWorkerRepo.On("GetActiveLoadsByBranch", ctx, aggregate.DestBranchID()).
		Return([]services.WorkerLoad{}, nil).Once()

	mockAssignUoW := &MockAssignUoW{}
	mockAssignUoW.On("ShipmentRepository").Return(mockShipmentRepo).Once()
	mockAssignUoW.On("WorkerRepository").Return(mockWorkerRepo).Once()

	mockAssignFactory := &MockAssignUoWFactory{}
	mockAssignFactory.On("Create").Return(mockAssignUoW).Once()

	dispatcher := newDispatcher(mockFactory, mockAssignFactory)

	// Act — no worker candidate is an accepted outcome, not a dispatch failure.
	err = dispatcher.Dispatch(ctx, event)

	// Assert
	assert.NoError(t, err)
	mockAssignUoW.AssertExpectations(t)
	mockWorkerRepo.AssertExpectations(t)
	mockOutboxRepo.AssertExpectations(t)
}
