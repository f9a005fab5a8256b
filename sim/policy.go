package sim

import (
	"fmt"
	"sort"
)

// DispatchPolicy decides the elevator's next move from a read-only snapshot.
// Implementations MUST be pure functions of the snapshot: no hidden mutable
// memory across calls beyond the policy's own declared parameters, and no
// mutation of the snapshot. A policy always returns a valid instruction; with
// no work anywhere it deterministically heads for the building's parking
// floor.
type DispatchPolicy interface {
	Name() string
	Decide(snap *Snapshot) MoveInstruction
}

// ValidPolicies is the set of recognized dispatch policy names.
// Shared by NewPolicy and CLI validation to avoid duplication.
var ValidPolicies = map[string]bool{"": true, "fifo": true, "scored": true}

// IsValidPolicy reports whether name is a recognized dispatch policy.
func IsValidPolicy(name string) bool {
	return ValidPolicies[name]
}

// PolicyNames returns the registered policy names, sorted, for discovery by
// selection harnesses and the CLI.
func PolicyNames() []string {
	names := make([]string, 0, len(ValidPolicies))
	for name := range ValidPolicies {
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewPolicy creates a dispatch policy by name. Empty string defaults to fifo.
// Weights are read only by the scored policy. Panics on unrecognized names;
// callers validate with IsValidPolicy first.
func NewPolicy(name string, weights Weights) DispatchPolicy {
	if !IsValidPolicy(name) {
		panic(fmt.Sprintf("unknown dispatch policy %q", name))
	}
	switch name {
	case "", "fifo":
		return &FIFOPolicy{}
	case "scored":
		return &ScoredPolicy{Weights: weights}
	default:
		panic(fmt.Sprintf("unhandled dispatch policy %q", name))
	}
}

// FIFOPolicy services the single oldest pending request or active rider by
// creation tick, moving toward its origin (if still pending) or destination
// (if on board) and opening the doors once arrived.
type FIFOPolicy struct{}

// Name implements DispatchPolicy.
func (p *FIFOPolicy) Name() string { return "fifo" }

// Decide implements DispatchPolicy for FIFOPolicy.
func (p *FIFOPolicy) Decide(snap *Snapshot) MoveInstruction {
	target, ok := oldestTarget(snap)
	if !ok {
		return moveToward(snap, snap.ParkingFloor())
	}
	return moveToward(snap, target)
}

// oldestTarget returns the floor serving the oldest outstanding piece of
// work: the origin of the oldest pending request or the destination of the
// oldest rider, whichever was created first. Exact creation-tick ties go to
// the lower floor for determinism.
func oldestTarget(snap *Snapshot) (int, bool) {
	found := false
	var bestCreated int64
	var bestFloor int

	consider := func(created int64, floor int) {
		if !found || created < bestCreated || (created == bestCreated && floor < bestFloor) {
			found = true
			bestCreated = created
			bestFloor = floor
		}
	}

	for _, req := range snap.Pending {
		consider(req.CreatedAt, req.Origin)
	}
	for _, rider := range snap.Riders {
		consider(rider.CreatedAt, rider.Destination)
	}
	return bestFloor, found
}

// moveToward steps toward the target floor, opening doors on arrival.
// Arrived with nothing to do, OpenDoors is the deterministic hold
// instruction: it never moves the car and never violates the range contract.
func moveToward(snap *Snapshot, target int) MoveInstruction {
	switch {
	case target > snap.Floor:
		return MoveUp
	case target < snap.Floor:
		return MoveDown
	default:
		return OpenDoors
	}
}
