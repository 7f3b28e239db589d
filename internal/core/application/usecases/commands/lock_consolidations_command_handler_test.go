package commands_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/audit"
	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
)

func pastCutoffBatch(t *testing.T) *consolidation.Consolidation {
	t.Helper()
	batch, err := consolidation.NewConsolidation(
		kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	return batch
}

func Test_LockConsolidationsCommandHandler_Handle_NothingDue(t *testing.T) {
	// Arrange
	ctx := t.Context()

	mockRepo := &MockConsolidationRepository{}
	mockRepo.On("GetUnlockedPastCutoff", ctx, mock.AnythingOfType("time.Time")).
		Return([]*consolidation.Consolidation{}, nil).Once()

	mockUoW := &MockSweepUoW{}
	mockUoW.On("ConsolidationRepository").Return(mockRepo).Once()

	mockFactory := &MockSweepUoWFactory{}
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewLockConsolidationsCommandHandler(mockFactory, testLogger())

	// Act
	err := handler.Handle(ctx, commands.NewLockConsolidationsCommand())

	// Assert
	assert.NoError(t, err)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func Test_LockConsolidationsCommandHandler_Handle_LocksAndAudits(t *testing.T) {
	// Arrange
	ctx := t.Context()

	batch := pastCutoffBatch(t)

	mockRepo := &MockConsolidationRepository{}
	mockRepo.On("GetUnlockedPastCutoff", ctx, mock.AnythingOfType("time.Time")).
		Return([]*consolidation.Consolidation{batch}, nil).Once()
	mockRepo.On("LockIfUnlocked", ctx, batch.ID(), mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()

	var entry *audit.Entry
	mockAuditRepo := &MockAuditRepository{}
	mockAuditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		entry = e
		return true
	})).Return(nil).Once()

	mockUoW := &MockSweepUoW{}
	mockUoW.On("ConsolidationRepository").Return(mockRepo).Twice()
	mockUoW.On("AuditRepository").Return(mockAuditRepo).Once()

	mockFactory := &MockSweepUoWFactory{}
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewLockConsolidationsCommandHandler(mockFactory, testLogger())

	// Act
	err := handler.Handle(ctx, commands.NewLockConsolidationsCommand())

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, commands.ActorAutolockMonitor, entry.Actor())
	assert.Equal(t, audit.ActionConsolidationLocked, entry.Action())
	assert.Equal(t, batch.ID(), entry.SubjectID())
	assert.Nil(t, entry.Before()["locked_at"])
	assert.NotEmpty(t, entry.After()["locked_at"])
	mockRepo.AssertExpectations(t)
	mockAuditRepo.AssertExpectations(t)
}

func Test_LockConsolidationsCommandHandler_Handle_LostLockRaceIsSilent(t *testing.T) {
	// Arrange
	ctx := t.Context()

	batch := pastCutoffBatch(t)

	mockRepo := &MockConsolidationRepository{}
	mockRepo.On("GetUnlockedPastCutoff", ctx, mock.AnythingOfType("time.Time")).
		Return([]*consolidation.Consolidation{batch}, nil).Once()
	mockRepo.On("LockIfUnlocked", ctx, batch.ID(), mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()

	mockAuditRepo := &MockAuditRepository{}

	mockUoW := &MockSweepUoW{}
	mockUoW.On("ConsolidationRepository").Return(mockRepo).Twice()

	mockFactory := &MockSweepUoWFactory{}
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewLockConsolidationsCommandHandler(mockFactory, testLogger())

	// Act
	err := handler.Handle(ctx, commands.NewLockConsolidationsCommand())

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockAuditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func Test_LockConsolidationsCommandHandler_Handle_ContinuesAfterLockFailure(t *testing.T) {
	// Arrange
	ctx := t.Context()

	first := pastCutoffBatch(t)
	second := pastCutoffBatch(t)

	lockErr := errors.New("lock update failed")

	mockRepo := &MockConsolidationRepository{}
	mockRepo.On("GetUnlockedPastCutoff", ctx, mock.AnythingOfType("time.Time")).
		Return([]*consolidation.Consolidation{first, second}, nil).Once()
	mockRepo.On("LockIfUnlocked", ctx, first.ID(), mock.AnythingOfType("time.Time")).
		Return(false, lockErr).Once()
	mockRepo.On("LockIfUnlocked", ctx, second.ID(), mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()

	mockAuditRepo := &MockAuditRepository{}
	mockAuditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once()

	mockUoW := &MockSweepUoW{}
	mockUoW.On("ConsolidationRepository").Return(mockRepo).Times(3)
	mockUoW.On("AuditRepository").Return(mockAuditRepo).Once()

	mockFactory := &MockSweepUoWFactory{}
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewLockConsolidationsCommandHandler(mockFactory, testLogger())

	// Act
	err := handler.Handle(ctx, commands.NewLockConsolidationsCommand())

	// Assert
	assert.ErrorIs(t, err, lockErr)
	mockRepo.AssertExpectations(t)
	mockAuditRepo.AssertExpectations(t)
}
