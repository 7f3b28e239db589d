// Package webhook provides the outbound notification entities of the parcel
// logistics system: subscribers (read-only registry records managed by
// administration) and deliveries (durable, retried attempts to hand one event
// to one subscriber).
//
// Delivery is at-least-once: a delivery record is created once per
// (subscriber, event) pair, retried with exponential backoff on transient
// failure, and moved to the exhausted state — never silently dropped — when
// its attempt budget is spent. Payloads carry a stable event identifier so
// receivers can de-duplicate.
package webhook
