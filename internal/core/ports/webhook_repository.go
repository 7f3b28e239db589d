package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/webhook"
)

// WebhookRepository defines persistence for the delivery subsystem. Subscriber
// records are read-only here: administration owns them, the core only reads
// the registry and mutates delivery records.
type WebhookRepository interface {
	// GetActiveSubscribers retrieves all subscribers that should receive new
	// events.
	GetActiveSubscribers(ctx context.Context) ([]*webhook.Subscriber, error)

	// GetSubscriber retrieves one subscriber, active or not, for signing and
	// diagnosis.
	GetSubscriber(ctx context.Context, id kernel.UUID) (*webhook.Subscriber, error)

	// AddDeliveryIfAbsent enqueues a delivery record unless one already exists
	// for the same (subscriber, event) pair, keeping event fan-out idempotent
	// under re-dispatch. Returns true only when a record was inserted.
	AddDeliveryIfAbsent(ctx context.Context, delivery *webhook.Delivery) (bool, error)

	// GetDueDeliveries retrieves up to limit unclaimed deliveries that are due
	// (pending or failed, next_attempt_at <= now).
	GetDueDeliveries(ctx context.Context, now time.Time, limit int) ([]*webhook.Delivery, error)

	// ClaimDelivery acquires a delivery for processing with a single
	// conditional write: it succeeds only while the record is due and not held
	// by a live claim, and grants a lease until the given deadline. Returns
	// true only for the claiming worker; claim-then-process prevents
	// double-send races across concurrent workers.
	ClaimDelivery(ctx context.Context, id kernel.UUID, until time.Time) (bool, error)

	// UpdateDelivery persists the outcome of an attempt and releases the claim.
	UpdateDelivery(ctx context.Context, delivery *webhook.Delivery) error
}
