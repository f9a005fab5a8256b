// Package sim provides the discrete-tick simulation engine for a single
// elevator serving floor-to-floor transport requests.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - request.go: Request/Rider lifecycle (pending → riding → completed)
//   - elevator.go: ElevatorState and the MoveInstruction transition function
//   - engine.go: the tick loop, generation window and drain phase
//
// # Architecture
//
// Each tick the Engine asks its DemandGenerator for new requests, hands a
// read-only Snapshot of the elevator state to the configured DispatchPolicy,
// applies the returned MoveInstruction, and folds any completed trips into
// Statistics. Policies are selected by name through NewPolicy; the scored
// policy's weights load from a YAML bundle (bundle.go).
//
// Everything is deterministic for a fixed (policy parameters, seed, window,
// density) tuple: all randomness flows through a PartitionedRNG seeded from
// the run's master seed. Independent runs share no mutable state and are safe
// to execute concurrently.
//
// # Key Interfaces
//
// DispatchPolicy is the single extension point: a pure decision function from
// Snapshot to MoveInstruction. The sub-package sim/tune searches the scored
// policy's weight space by hill climbing over Engine runs.
package sim
