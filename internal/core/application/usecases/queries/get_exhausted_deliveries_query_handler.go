package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/webhook"
)

// GetExhaustedDeliveriesQueryHandler reads parked deliveries directly from
// the database.
type GetExhaustedDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetExhaustedDeliveriesQueryHandler creates a handler for exhausted
// delivery queries.
func NewGetExhaustedDeliveriesQueryHandler(db *gorm.DB) GetExhaustedDeliveriesQueryHandler {
	return GetExhaustedDeliveriesQueryHandler{db: db}
}

// Handle retrieves exhausted deliveries, most recently parked first.
func (h GetExhaustedDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetExhaustedDeliveriesQuery,
) ([]GetExhaustedDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			subscriber_id,
			event_id,
			endpoint,
			attempts,
			last_error,
			updated_at
		FROM webhook_deliveries
		WHERE status = ?
		ORDER BY updated_at DESC
		LIMIT ?
	`, string(webhook.DeliveryExhausted), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]GetExhaustedDeliveriesQueryResponse, 0)

	for rows.Next() {
		var (
			id           uuid.UUID
			subscriberID uuid.UUID
			eventID      uuid.UUID
			endpoint     string
			attempts     int
			lastError    string
			updatedAt    time.Time
		)

		if err = rows.Scan(&id, &subscriberID, &eventID, &endpoint, &attempts, &lastError, &updatedAt); err != nil {
			return nil, err
		}

		resp := GetExhaustedDeliveriesQueryResponse{
			Endpoint:  endpoint,
			Attempts:  attempts,
			LastError: lastError,
			UpdatedAt: updatedAt,
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.SubscriberID, err = kernel.UUIDFromBytes(subscriberID[:]); err != nil {
			return nil, err
		}
		if resp.EventID, err = kernel.UUIDFromBytes(eventID[:]); err != nil {
			return nil, err
		}

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
