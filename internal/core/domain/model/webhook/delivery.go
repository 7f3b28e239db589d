package webhook

import (
	"errors"
	"math"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var (
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrDeliveryIsTerminal is returned when recording an attempt outcome on a
	// delivered or exhausted record.
	ErrDeliveryIsTerminal = errors.New("delivery is in a terminal state")
)

// DeliveryStatus is the lifecycle state of one webhook delivery record.
type DeliveryStatus string

const (
	// DeliveryPending marks a delivery that has not been attempted yet.
	DeliveryPending DeliveryStatus = "pending"

	// DeliveryFailed marks a delivery whose last attempt failed and which is
	// scheduled for retry. Retained (never deleted) for diagnosis.
	DeliveryFailed DeliveryStatus = "failed"

	// DeliveryDelivered marks a successfully handed-off delivery. Terminal.
	DeliveryDelivered DeliveryStatus = "delivered"

	// DeliveryExhausted marks a delivery whose retry budget is spent. Terminal
	// but visible: surfaced for manual inspection, never silently dropped.
	DeliveryExhausted DeliveryStatus = "exhausted"
)

// IsTerminal reports whether the status admits no further attempts.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryDelivered || s == DeliveryExhausted
}

// IsDue reports whether the status makes the record selectable by the
// delivery worker.
func (s DeliveryStatus) IsDue() bool {
	return s == DeliveryPending || s == DeliveryFailed
}

// RetryPolicy bounds the delivery retry loop: exponential backoff
// base·2^(attempt-1), capped at MaxBackoff, for at most MaxAttempts attempts.
type RetryPolicy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// Backoff returns the wait before the next attempt after `attempt` failures.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt <= 0 {
		return p.BaseBackoff
	}
	delay := time.Duration(float64(p.BaseBackoff) * math.Pow(2, float64(attempt-1)))
	if delay > p.MaxBackoff {
		return p.MaxBackoff
	}
	return delay
}

// Delivery is one durable attempt stream handing one event to one subscriber.
// Created once per (subscriber, event) pair; mutated only by the delivery
// worker; never deleted.
type Delivery struct {
	id           kernel.UUID
	subscriberID kernel.UUID
	eventID      kernel.UUID
	endpoint     string
	payload      []byte

	status        DeliveryStatus
	attempts      int
	nextAttemptAt *time.Time
	lastError     string

	isConstructed bool
}

// NewDelivery enqueues a fresh pending delivery, due immediately.
// The endpoint is snapshotted from the subscriber at enqueue time.
func NewDelivery(
	id kernel.UUID,
	subscriberID kernel.UUID,
	eventID kernel.UUID,
	endpoint string,
	payload []byte,
	now time.Time,
) (*Delivery, error) {
	if err := errors.Join(id.Validate(), subscriberID.Validate(), eventID.Validate()); err != nil {
		return nil, err
	}
	if endpoint == "" {
		return nil, errs.NewValueIsRequiredError("endpoint")
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	due := now
	return &Delivery{
		id:            id,
		subscriberID:  subscriberID,
		eventID:       eventID,
		endpoint:      endpoint,
		payload:       payload,
		status:        DeliveryPending,
		nextAttemptAt: &due,
		isConstructed: true,
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistence.
func RestoreDelivery(
	id kernel.UUID,
	subscriberID kernel.UUID,
	eventID kernel.UUID,
	endpoint string,
	payload []byte,
	status DeliveryStatus,
	attempts int,
	nextAttemptAt *time.Time,
	lastError string,
) (*Delivery, error) {
	if err := errors.Join(id.Validate(), subscriberID.Validate(), eventID.Validate()); err != nil {
		return nil, err
	}

	return &Delivery{
		id:            id,
		subscriberID:  subscriberID,
		eventID:       eventID,
		endpoint:      endpoint,
		payload:       payload,
		status:        status,
		attempts:      attempts,
		nextAttemptAt: nextAttemptAt,
		lastError:     lastError,
		isConstructed: true,
	}, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery record's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// SubscriberID returns the subscriber this delivery targets.
func (d *Delivery) SubscriberID() kernel.UUID {
	return d.subscriberID
}

// EventID returns the stable identifier of the event being delivered.
func (d *Delivery) EventID() kernel.UUID {
	return d.eventID
}

// Endpoint returns the target URL snapshotted at enqueue time.
func (d *Delivery) Endpoint() string {
	return d.endpoint
}

// Payload returns the serialized event to deliver.
func (d *Delivery) Payload() []byte {
	return d.payload
}

// Status returns the current delivery status.
func (d *Delivery) Status() DeliveryStatus {
	return d.status
}

// Attempts returns how many delivery attempts have completed.
func (d *Delivery) Attempts() int {
	return d.attempts
}

// NextAttemptAt returns when the record becomes due again, or nil for
// terminal records.
func (d *Delivery) NextAttemptAt() *time.Time {
	return d.nextAttemptAt
}

// LastError returns the failure message of the most recent failed attempt.
func (d *Delivery) LastError() string {
	return d.lastError
}

// RecordSuccess marks the delivery handed off. The attempt that succeeded is
// counted, so after N transient failures followed by success, Attempts()
// equals N+1.
func (d *Delivery) RecordSuccess() error {
	if d.status.IsTerminal() {
		return ErrDeliveryIsTerminal
	}
	d.attempts++
	d.status = DeliveryDelivered
	d.nextAttemptAt = nil
	d.lastError = ""
	return nil
}

// RecordFailure counts a failed attempt and schedules the retry per policy.
// When the attempt budget is spent the delivery becomes exhausted and is
// surfaced for manual inspection instead of being dropped.
func (d *Delivery) RecordFailure(cause error, now time.Time, policy RetryPolicy) error {
	if d.status.IsTerminal() {
		return ErrDeliveryIsTerminal
	}

	d.attempts++
	if cause != nil {
		d.lastError = cause.Error()
	}

	if d.attempts >= policy.MaxAttempts {
		d.status = DeliveryExhausted
		d.nextAttemptAt = nil
		return nil
	}

	due := now.Add(policy.Backoff(d.attempts))
	d.status = DeliveryFailed
	d.nextAttemptAt = &due
	return nil
}
