package ports

import (
	"context"

	"parcels/internal/core/domain/model/audit"
)

// AuditRepository defines the append-only persistence contract for the audit
// trail. The core only appends; reading is the audit query handler's concern
// and editing or deleting never happens.
type AuditRepository interface {
	// Append stores one audit entry. Appending the same entry id twice is a
	// no-op, which keeps reactions idempotent under event re-dispatch.
	Append(ctx context.Context, entry *audit.Entry) error
}
