package shipment

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// Status represents the physical handling state of a shipment.
// It implements a fixed state machine: transitions follow the directed graph
// below, Cancelled is reachable from every non-terminal state, and
// Delivered/Cancelled are terminal with no outgoing edges.
//
// State transitions:
//
//	created -> handed_over -> arrived -> sorted -> loaded -> departed
//	        -> in_transit -> arrived_dest -> out_for_delivery -> delivered
//
//	any non-terminal state -> cancelled
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and the wire contract.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when a shipment is registered at its
	// origin branch. Shipments in this status await worker assignment.
	Created

	// HandedOver indicates the sender handed the parcel to the branch.
	// SLA elapsed time is measured from this moment.
	HandedOver

	// Arrived indicates the parcel arrived at the origin branch facility.
	Arrived

	// Sorted indicates the parcel has been sorted for its lane.
	Sorted

	// Loaded indicates the parcel has been loaded onto a vehicle.
	Loaded

	// Departed indicates the vehicle left the origin branch.
	Departed

	// InTransit indicates the parcel is moving between branches.
	InTransit

	// ArrivedDest indicates the parcel arrived at the destination branch.
	ArrivedDest

	// OutForDelivery indicates the parcel is with a worker for final delivery.
	OutForDelivery

	// Delivered indicates the parcel reached the recipient.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the shipment was aborted. Reachable from every
	// non-terminal state; terminal with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Created:        "created",
		HandedOver:     "handed_over",
		Arrived:        "arrived",
		Sorted:         "sorted",
		Loaded:         "loaded",
		Departed:       "departed",
		InTransit:      "in_transit",
		ArrivedDest:    "arrived_dest",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// transitionTargets returns the allowed-target set for each status.
// Cancelled targets are appended for non-terminal states so the table stays
// the single source of truth for the whole graph.
func transitionTargets() map[Status][]Status {
	targets := map[Status][]Status{
		Created:        {HandedOver},
		HandedOver:     {Arrived},
		Arrived:        {Sorted},
		Sorted:         {Loaded},
		Loaded:         {Departed},
		Departed:       {InTransit},
		InTransit:      {ArrivedDest},
		ArrivedDest:    {OutForDelivery},
		OutForDelivery: {Delivered},
		Delivered:      {},
		Cancelled:      {},
	}

	for status, allowed := range targets {
		if status != Delivered && status != Cancelled {
			targets[status] = append(allowed, Cancelled)
		}
	}

	return targets
}

// StatusFromString parses a status from its persisted/wire representation.
// Returns an error for unknown names, including "unknown" itself.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is a member of the lifecycle graph.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := transitionTargets()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status. Implements fmt.Stringer
// and is safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing edges.
// Delivered and Cancelled are the only terminal states.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether target is in the allowed-target set of s.
// It performs no mutation; callers decide what to do with an illegal edge.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitionTargets()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge from s to target and returns the new status.
//
// Returns:
//   - (target, nil) when the edge is a member of the lifecycle graph
//   - (0, *errs.InvalidTransitionError) otherwise; no mutation is implied
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
