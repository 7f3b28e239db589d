// Package shipment provides domain entities and business logic for the
// shipment lifecycle in the parcel logistics system. It implements the
// Shipment aggregate root with versioned lifecycle management and state
// transitions.
//
// The package includes:
//   - Shipment: The aggregate root tracking identity, lane, assignment and lifecycle
//   - Status: A state machine that enforces valid lifecycle transitions
//   - TransitionedEvent: The domain event emitted once per successful transition
//
// Key business rules:
//   - Shipments must have a valid unique identifier and both branch endpoints
//   - Status follows the fixed lifecycle graph from created to delivered
//   - Cancelled is reachable from every non-terminal state
//   - Delivered and Cancelled are terminal
//   - The version counter increases by exactly 1 per successful mutation and is
//     the optimistic lock guarding concurrent writers
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package shipment
