// Package queries contains read-only operations over the persistence layer.
// Query handlers bypass the domain model and read projection rows directly,
// implementing the read side of the CQRS architecture.
package queries

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var (
	ErrGetAuditEntriesQueryIsNotConstructed = errors.New(
		"GetAuditEntriesQuery must be created via NewGetAuditEntriesQuery constructor",
	)
	ErrLimitIsInvalid = errors.New("limit must be greater than 0")
)

// GetAuditEntriesQuery retrieves audit trail entries, newest first, filtered
// by any combination of actor, action and recording window. Empty filters
// match everything.
//
// Example:
//
//	query, err := NewGetAuditEntriesQuery("scanner:hub-3", "", &since, nil, 100)
//	if err != nil {
//	    return fmt.Errorf("invalid audit filter: %w", err)
//	}
//	entries, err := handler.Handle(ctx, query)
type GetAuditEntriesQuery struct {
	actor  string
	action string
	from   *time.Time
	to     *time.Time
	limit  int

	guard guard.ConstructorGuard
}

// NewGetAuditEntriesQuery creates a filtered audit trail query.
func NewGetAuditEntriesQuery(
	actor string, action string, from *time.Time, to *time.Time, limit int,
) (GetAuditEntriesQuery, error) {
	if limit <= 0 {
		return GetAuditEntriesQuery{}, ErrLimitIsInvalid
	}

	return GetAuditEntriesQuery{
		actor:  actor,
		action: action,
		from:   from,
		to:     to,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditEntriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditEntriesQueryIsNotConstructed)
}

// Actor returns the actor filter, empty for any.
func (q GetAuditEntriesQuery) Actor() string {
	return q.actor
}

// Action returns the action filter, empty for any.
func (q GetAuditEntriesQuery) Action() string {
	return q.action
}

// From returns the lower bound of the recording window, nil for unbounded.
func (q GetAuditEntriesQuery) From() *time.Time {
	return q.from
}

// To returns the upper bound of the recording window, nil for unbounded.
func (q GetAuditEntriesQuery) To() *time.Time {
	return q.to
}

// Limit returns the maximum number of entries to return.
func (q GetAuditEntriesQuery) Limit() int {
	return q.limit
}

// GetAuditEntriesQueryResponse represents one audit trail entry.
type GetAuditEntriesQueryResponse struct {
	ID         kernel.UUID
	Actor      string
	Action     string
	SubjectID  kernel.UUID
	Before     map[string]any
	After      map[string]any
	RecordedAt time.Time
}
