// Package auditrepo provides data transfer objects and mapping functions for
// the append-only audit trail.
package auditrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"parcels/internal/core/domain/model/audit"
)

// EntryDTO represents the database structure for audit entries. Snapshot
// fragments are stored as JSON; rows are inserted once and never updated.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Actor      string    `gorm:"index"`
	Action     string    `gorm:"index"`
	SubjectID  uuid.UUID `gorm:"type:uuid;index"`
	Before     []byte    `gorm:"type:jsonb"`
	After      []byte    `gorm:"type:jsonb"`
	RecordedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_entries"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *audit.Entry) (EntryDTO, error) {
	before, err := marshalSnapshot(entry.Before())
	if err != nil {
		return EntryDTO{}, err
	}

	after, err := marshalSnapshot(entry.After())
	if err != nil {
		return EntryDTO{}, err
	}

	return EntryDTO{
		ID:         entry.ID().Bytes(),
		Actor:      entry.Actor(),
		Action:     string(entry.Action()),
		SubjectID:  entry.SubjectID().Bytes(),
		Before:     before,
		After:      after,
		RecordedAt: entry.RecordedAt(),
	}, nil
}

func marshalSnapshot(snapshot map[string]any) ([]byte, error) {
	if snapshot == nil {
		return nil, nil
	}
	return json.Marshal(snapshot)
}
