package queries

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parcels/internal/core/domain/model/kernel"
)

// GetAuditEntriesQueryHandler reads the audit trail directly from the
// database, bypassing the domain model.
type GetAuditEntriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditEntriesQueryHandler creates a handler for audit trail queries.
func NewGetAuditEntriesQueryHandler(db *gorm.DB) GetAuditEntriesQueryHandler {
	return GetAuditEntriesQueryHandler{db: db}
}

// Handle executes the filtered audit query, newest entries first.
func (h GetAuditEntriesQueryHandler) Handle(
	ctx context.Context,
	query GetAuditEntriesQuery,
) ([]GetAuditEntriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			actor,
			action,
			subject_id,
			before,
			after,
			recorded_at
		FROM audit_entries
		WHERE 1=1
	`
	args := make([]any, 0, 5)

	if query.Actor() != "" {
		sql += " AND actor = ?"
		args = append(args, query.Actor())
	}
	if query.Action() != "" {
		sql += " AND action = ?"
		args = append(args, query.Action())
	}
	if query.From() != nil {
		sql += " AND recorded_at >= ?"
		args = append(args, *query.From())
	}
	if query.To() != nil {
		sql += " AND recorded_at <= ?"
		args = append(args, *query.To())
	}

	sql += " ORDER BY recorded_at DESC, id LIMIT ?"
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetAuditEntriesQueryResponse, 0)

	for rows.Next() {
		var (
			id         uuid.UUID
			subjectID  uuid.UUID
			actor      string
			action     string
			before     []byte
			after      []byte
			recordedAt time.Time
		)

		if err = rows.Scan(&id, &actor, &action, &subjectID, &before, &after, &recordedAt); err != nil {
			return nil, err
		}

		entry := GetAuditEntriesQueryResponse{
			Actor:      actor,
			Action:     action,
			RecordedAt: recordedAt,
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.SubjectID, err = kernel.UUIDFromBytes(subjectID[:]); err != nil {
			return nil, err
		}
		if entry.Before, err = unmarshalSnapshot(before); err != nil {
			return nil, err
		}
		if entry.After, err = unmarshalSnapshot(after); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func unmarshalSnapshot(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var snapshot map[string]any
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}
