// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the parcel logistics system.
//
// The package includes:
//   - WorkerPicker: the assignment engine's selection rule — least loaded
//     active worker of a branch, deterministic tie-break by worker identity
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
