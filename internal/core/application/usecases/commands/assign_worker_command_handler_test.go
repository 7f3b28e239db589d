package commands_test

import (
	"testing"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/audit"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/core/domain/model/worker"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAssignHandler(
	factory commands.AssignUoWFactory,
) commands.AssignWorkerCommandHandler {
	return commands.NewAssignWorkerCommandHandler(factory, services.NewWorkerPicker(), testLogger())
}

func TestAssignWorkerCommandHandler_Handle_ExplicitWorker(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredShipment(t)

	candidate, err := worker.NewWorker(kernel.NewUUID(), aggregate.DestBranchID(), "Mira", true)
	require.NoError(t, err)

	cmd, err := commands.NewAssignWorkerCommand(aggregate.ID(), candidate.ID(), "dispatcher")
	require.NoError(t, err)

	mockShipments := new(MockShipmentRepository)
	mockWorkers := new(MockWorkerRepository)
	mockAudit := new(MockAuditRepository)
	mockUoW := new(MockAssignUoW)
	mockFactory := new(MockAssignUoWFactory)

	var capturedEntry *audit.Entry

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("ShipmentRepository").Return(mockShipments).Twice()
	mockShipments.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	mockUoW.On("WorkerRepository").Return(mockWorkers).Once()
	mockWorkers.On("Get", ctx, candidate.ID()).Return(candidate, nil).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockShipments.On("UpdateVersioned", ctx, aggregate, shipment.InitialVersion).Return(nil).Once()
	mockUoW.On("AuditRepository").Return(mockAudit).Once()
	mockAudit.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		capturedEntry = e
		return true
	})).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := newAssignHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, aggregate.AssignedWorker())
	assert.Equal(t, candidate.ID(), *aggregate.AssignedWorker())

	require.NotNil(t, capturedEntry)
	assert.Equal(t, audit.ActionShipmentAssigned, capturedEntry.Action())
	assert.Equal(t, "dispatcher", capturedEntry.Actor())
	assert.Nil(t, capturedEntry.Before()["assigned_worker_id"])
	assert.Equal(t, candidate.ID().String(), capturedEntry.After()["assigned_worker_id"])

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockShipments.AssertExpectations(t)
	mockWorkers.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}

func TestAssignWorkerCommandHandler_Handle_EnginePicksLeastLoaded(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredShipment(t)

	busy, err := worker.NewWorker(kernel.NewUUID(), aggregate.DestBranchID(), "Busy", true)
	require.NoError(t, err)
	idle, err := worker.NewWorker(kernel.NewUUID(), aggregate.DestBranchID(), "Idle", true)
	require.NoError(t, err)

	cmd, err := commands.NewAutoAssignCommand(aggregate.ID(), "system")
	require.NoError(t, err)

	mockShipments := new(MockShipmentRepository)
	mockWorkers := new(MockWorkerRepository)
	mockAudit := new(MockAuditRepository)
	mockUoW := new(MockAssignUoW)
	mockFactory := new(MockAssignUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("ShipmentRepository").Return(mockShipments).Twice()
	mockShipments.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	mockUoW.On("WorkerRepository").Return(mockWorkers).Once()
	mockWorkers.On("GetActiveLoadsByBranch", ctx, aggregate.DestBranchID()).Return([]services.WorkerLoad{
		{Worker: busy, OpenShipments: 4},
		{Worker: idle, OpenShipments: 1},
	}, nil).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockShipments.On("UpdateVersioned", ctx, aggregate, shipment.InitialVersion).Return(nil).Once()
	mockUoW.On("AuditRepository").Return(mockAudit).Once()
	mockAudit.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := newAssignHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, aggregate.AssignedWorker())
	assert.Equal(t, idle.ID(), *aggregate.AssignedWorker())
	mockUoW.AssertExpectations(t)
}

func TestAssignWorkerCommandHandler_Handle_AutoAssignIsIdempotent(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredShipment(t)
	require.NoError(t, aggregate.AssignWorker(kernel.NewUUID(), time.Now().UTC()))

	cmd, err := commands.NewAutoAssignCommand(aggregate.ID(), "system")
	require.NoError(t, err)

	mockShipments := new(MockShipmentRepository)
	mockUoW := new(MockAssignUoW)
	mockFactory := new(MockAssignUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("ShipmentRepository").Return(mockShipments).Once()
	mockShipments.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	handler := newAssignHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	mockUoW.AssertExpectations(t) // no write happened
}

func TestAssignWorkerCommandHandler_Handle_NoWorkersAvailable(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredShipment(t)

	cmd, err := commands.NewAutoAssignCommand(aggregate.ID(), "system")
	require.NoError(t, err)

	mockShipments := new(MockShipmentRepository)
	mockWorkers := new(MockWorkerRepository)
	mockUoW := new(MockAssignUoW)
	mockFactory := new(MockAssignUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("ShipmentRepository").Return(mockShipments).Once()
	mockShipments.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	mockUoW.On("WorkerRepository").Return(mockWorkers).Once()
	mockWorkers.On("GetActiveLoadsByBranch", ctx, aggregate.DestBranchID()).
		Return([]services.WorkerLoad{}, nil).Once()

	handler := newAssignHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, services.ErrNoWorkersAvailable)
	mockUoW.AssertExpectations(t)
}

func TestAssignWorkerCommandHandler_Handle_RejectsForeignBranchWorker(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredShipment(t)

	foreign, err := worker.NewWorker(kernel.NewUUID(), kernel.NewUUID(), "Foreign", true)
	require.NoError(t, err)

	cmd, err := commands.NewAssignWorkerCommand(aggregate.ID(), foreign.ID(), "dispatcher")
	require.NoError(t, err)

	mockShipments := new(MockShipmentRepository)
	mockWorkers := new(MockWorkerRepository)
	mockUoW := new(MockAssignUoW)
	mockFactory := new(MockAssignUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("ShipmentRepository").Return(mockShipments).Once()
	mockShipments.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	mockUoW.On("WorkerRepository").Return(mockWorkers).Once()
	mockWorkers.On("Get", ctx, foreign.ID()).Return(foreign, nil).Once()

	handler := newAssignHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	var invalidErr *errs.ValueIsInvalidError
	require.ErrorAs(t, err, &invalidErr)
	assert.Nil(t, aggregate.AssignedWorker())
	mockUoW.AssertExpectations(t)
}

func TestAssignWorkerCommandHandler_Handle_RejectsInactiveWorker(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredShipment(t)

	inactive, err := worker.NewWorker(kernel.NewUUID(), aggregate.DestBranchID(), "Inactive", false)
	require.NoError(t, err)

	cmd, err := commands.NewAssignWorkerCommand(aggregate.ID(), inactive.ID(), "dispatcher")
	require.NoError(t, err)

	mockShipments := new(MockShipmentRepository)
	mockWorkers := new(MockWorkerRepository)
	mockUoW := new(MockAssignUoW)
	mockFactory := new(MockAssignUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("ShipmentRepository").Return(mockShipments).Once()
	mockShipments.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	mockUoW.On("WorkerRepository").Return(mockWorkers).Once()
	mockWorkers.On("Get", ctx, inactive.ID()).Return(inactive, nil).Once()

	handler := newAssignHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	var invalidErr *errs.ValueIsInvalidError
	require.ErrorAs(t, err, &invalidErr)
	mockUoW.AssertExpectations(t)
}
