package queries

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrGetExhaustedDeliveriesQueryIsNotConstructed = errors.New(
	"GetExhaustedDeliveriesQuery must be created via NewGetExhaustedDeliveriesQuery constructor",
)

// GetExhaustedDeliveriesQuery retrieves webhook deliveries that ran out of
// retry budget. These records are kept for reconciliation: an operator can
// inspect the retained last error and re-register the subscriber's endpoint.
type GetExhaustedDeliveriesQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetExhaustedDeliveriesQuery creates a query for exhausted deliveries.
func NewGetExhaustedDeliveriesQuery(limit int) (GetExhaustedDeliveriesQuery, error) {
	if limit <= 0 {
		return GetExhaustedDeliveriesQuery{}, ErrLimitIsInvalid
	}

	return GetExhaustedDeliveriesQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetExhaustedDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetExhaustedDeliveriesQueryIsNotConstructed)
}

// Limit returns the maximum number of deliveries to return.
func (q GetExhaustedDeliveriesQuery) Limit() int {
	return q.limit
}

// GetExhaustedDeliveriesQueryResponse represents one delivery that will not
// be retried.
type GetExhaustedDeliveriesQueryResponse struct {
	ID           kernel.UUID
	SubscriberID kernel.UUID
	EventID      kernel.UUID
	Endpoint     string
	Attempts     int
	LastError    string
	UpdatedAt    time.Time
}
