package services_test

import (
	"testing"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/worker"
	"parcels/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWorker(t *testing.T, id kernel.UUID, name string, active bool) *worker.Worker {
	t.Helper()
	w, err := worker.NewWorker(id, kernel.NewUUID(), name, active)
	require.NoError(t, err)
	return w
}

// orderedIDs returns two UUIDs with a deterministic string ordering.
func orderedIDs(t *testing.T) (kernel.UUID, kernel.UUID) {
	t.Helper()
	lo, err := kernel.UUIDFromString("11111111-1111-4111-8111-111111111111")
	require.NoError(t, err)
	hi, err := kernel.UUIDFromString("99999999-9999-4999-8999-999999999999")
	require.NoError(t, err)
	return lo, hi
}

func TestWorkerPicker_Pick(t *testing.T) {
	picker := services.NewWorkerPicker()

	t.Run("least loaded wins, ties broken by lowest id", func(t *testing.T) {
		// A has 2 open shipments, B and C have 0; C's id orders after B's.
		lowID, highID := orderedIDs(t)
		a := mustWorker(t, kernel.NewUUID(), "A", true)
		b := mustWorker(t, lowID, "B", true)
		c := mustWorker(t, highID, "C", true)

		chosen, err := picker.Pick([]services.WorkerLoad{
			{Worker: a, OpenShipments: 2},
			{Worker: c, OpenShipments: 0},
			{Worker: b, OpenShipments: 0},
		})

		require.NoError(t, err)
		assert.True(t, b.ID().IsEqual(chosen.ID()))
	})

	t.Run("inactive workers are skipped", func(t *testing.T) {
		idle := mustWorker(t, kernel.NewUUID(), "idle-but-inactive", false)
		busy := mustWorker(t, kernel.NewUUID(), "busy-but-active", true)

		chosen, err := picker.Pick([]services.WorkerLoad{
			{Worker: idle, OpenShipments: 0},
			{Worker: busy, OpenShipments: 7},
		})

		require.NoError(t, err)
		assert.True(t, busy.ID().IsEqual(chosen.ID()))
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := picker.Pick(nil)
		require.ErrorIs(t, err, services.ErrNoWorkersAvailable)

		inactive := mustWorker(t, kernel.NewUUID(), "off-shift", false)
		_, err = picker.Pick([]services.WorkerLoad{{Worker: inactive, OpenShipments: 0}})
		require.ErrorIs(t, err, services.ErrNoWorkersAvailable)
	})

	t.Run("does not mutate input order dependence", func(t *testing.T) {
		lowID, highID := orderedIDs(t)
		b := mustWorker(t, lowID, "B", true)
		c := mustWorker(t, highID, "C", true)

		first, err := picker.Pick([]services.WorkerLoad{
			{Worker: b, OpenShipments: 1},
			{Worker: c, OpenShipments: 1},
		})
		require.NoError(t, err)

		second, err := picker.Pick([]services.WorkerLoad{
			{Worker: c, OpenShipments: 1},
			{Worker: b, OpenShipments: 1},
		})
		require.NoError(t, err)

		assert.True(t, first.ID().IsEqual(second.ID()))
	})
}
