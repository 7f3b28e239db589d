package events_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/audit"
	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/core/domain/model/webhook"
	"parcels/internal/core/domain/model/worker"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) UpdateVersioned(
	ctx context.Context, aggregate *shipment.Shipment, expectedVersion int,
) error {
	args := m.Called(ctx, aggregate, expectedVersion)
	return args.Error(0)
}

func (m *MockShipmentRepository) GetAllActive(ctx context.Context) ([]*shipment.Shipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) RecordSLABreachIfAbsent(
	ctx context.Context, shipmentID kernel.UUID, at time.Time,
) (bool, error) {
	args := m.Called(ctx, shipmentID, at)
	return args.Bool(0), args.Error(1)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Add(ctx context.Context, aggregate *worker.Worker) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) GetActiveLoadsByBranch(
	ctx context.Context, branchID kernel.UUID,
) ([]services.WorkerLoad, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.WorkerLoad), args.Error(1)
}

type MockConsolidationRepository struct{ mock.Mock }

func (m *MockConsolidationRepository) Add(ctx context.Context, aggregate *consolidation.Consolidation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConsolidationRepository) Get(
	ctx context.Context, id kernel.UUID,
) (*consolidation.Consolidation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consolidation.Consolidation), args.Error(1)
}

func (m *MockConsolidationRepository) GetUnlockedPastCutoff(
	ctx context.Context, now time.Time,
) ([]*consolidation.Consolidation, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*consolidation.Consolidation), args.Error(1)
}

func (m *MockConsolidationRepository) LockIfUnlocked(
	ctx context.Context, id kernel.UUID, at time.Time,
) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, event shipment.TransitionedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetDue(
	ctx context.Context, now time.Time, limit int,
) ([]ports.OutboxEntry, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxEntry), args.Error(1)
}

func (m *MockOutboxRepository) MarkDispatched(ctx context.Context, eventID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, eventID, at)
	return args.Error(0)
}

func (m *MockOutboxRepository) Reschedule(
	ctx context.Context, eventID kernel.UUID, cause error, nextAttemptAt *time.Time,
) error {
	args := m.Called(ctx, eventID, cause, nextAttemptAt)
	return args.Error(0)
}

type MockWebhookRepository struct{ mock.Mock }

func (m *MockWebhookRepository) GetActiveSubscribers(ctx context.Context) ([]*webhook.Subscriber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*webhook.Subscriber), args.Error(1)
}

func (m *MockWebhookRepository) GetSubscriber(ctx context.Context, id kernel.UUID) (*webhook.Subscriber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webhook.Subscriber), args.Error(1)
}

func (m *MockWebhookRepository) AddDeliveryIfAbsent(
	ctx context.Context, delivery *webhook.Delivery,
) (bool, error) {
	args := m.Called(ctx, delivery)
	return args.Bool(0), args.Error(1)
}

func (m *MockWebhookRepository) GetDueDeliveries(
	ctx context.Context, now time.Time, limit int,
) ([]*webhook.Delivery, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*webhook.Delivery), args.Error(1)
}

func (m *MockWebhookRepository) ClaimDelivery(
	ctx context.Context, id kernel.UUID, until time.Time,
) (bool, error) {
	args := m.Called(ctx, id, until)
	return args.Bool(0), args.Error(1)
}

func (m *MockWebhookRepository) UpdateDelivery(ctx context.Context, delivery *webhook.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) CreateIfNotExists(
	ctx context.Context, aggregate *invoice.Invoice,
) (bool, error) {
	args := m.Called(ctx, aggregate)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) GetByShipment(
	ctx context.Context, shipmentID kernel.UUID,
) (*invoice.Invoice, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

type MockNotificationQueue struct{ mock.Mock }

func (m *MockNotificationQueue) EnqueueIfAbsent(
	ctx context.Context, shipmentID kernel.UUID, kind string, at time.Time,
) (bool, error) {
	args := m.Called(ctx, shipmentID, kind, at)
	return args.Bool(0), args.Error(1)
}

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUnitOfWork) BranchRepository() ports.BranchRepository {
	args := m.Called()
	return args.Get(0).(ports.BranchRepository)
}

func (m *MockUnitOfWork) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockUnitOfWork) ConsolidationRepository() ports.ConsolidationRepository {
	args := m.Called()
	return args.Get(0).(ports.ConsolidationRepository)
}

func (m *MockUnitOfWork) WebhookRepository() ports.WebhookRepository {
	args := m.Called()
	return args.Get(0).(ports.WebhookRepository)
}

func (m *MockUnitOfWork) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

func (m *MockUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

func (m *MockUnitOfWork) NotificationQueue() ports.NotificationQueue {
	args := m.Called()
	return args.Get(0).(ports.NotificationQueue)
}

func (m *MockUnitOfWork) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUnitOfWorkFactory struct{ mock.Mock }

func (m *MockUnitOfWorkFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}

type MockAssignUoW struct{ mock.Mock }

func (m *MockAssignUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockAssignUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockAssignUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockAssignUoWFactory struct{ mock.Mock }

func (m *MockAssignUoWFactory) Create() commands.AssignUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignUoW)
}
