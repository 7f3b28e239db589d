package workerrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/core/domain/model/worker"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"
)

// GormWorkerRepository implements WorkerRepository using GORM.
type GormWorkerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkerRepository creates a new GORM worker repository.
func NewGormWorkerRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkerRepository {
	return &GormWorkerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new worker to the database.
func (r *GormWorkerRepository) Add(ctx context.Context, aggregate *worker.Worker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a worker by ID.
func (r *GormWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("worker", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveLoadsByBranch retrieves the active workers of a branch with their
// open-shipment counts. The counts are computed by the query, never cached,
// so every assignment decision acts on current load.
func (r *GormWorkerRepository) GetActiveLoadsByBranch(
	ctx context.Context, branchID kernel.UUID,
) ([]services.WorkerLoad, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			w.id,
			w.branch_id,
			w.name,
			w.active,
			COUNT(s.id) AS open_shipments
		FROM workers w
		LEFT JOIN shipments s
			ON s.assigned_worker_id = w.id
			AND s.status NOT IN (?, ?)
		WHERE w.branch_id = ? AND w.active
		GROUP BY w.id, w.branch_id, w.name, w.active
		ORDER BY w.id
	`, int(shipment.Delivered), int(shipment.Cancelled), branchID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make([]services.WorkerLoad, 0)

	for rows.Next() {
		var (
			dto           WorkerDTO
			id            uuid.UUID
			branch        uuid.UUID
			openShipments int
		)

		if err = rows.Scan(&id, &branch, &dto.Name, &dto.Active, &openShipments); err != nil {
			return nil, err
		}
		dto.ID = id
		dto.BranchID = branch

		candidate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}

		loads = append(loads, services.WorkerLoad{Worker: candidate, OpenShipments: openShipments})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return loads, nil
}
