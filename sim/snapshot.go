package sim

import (
	"github.com/tiendc/go-deepcopy"
)

// Snapshot is the read-only view of elevator and building state handed to
// dispatch policies. The pending and rider slices are deep copies, so a
// policy cannot reach (or retain) engine-owned structures through it.
type Snapshot struct {
	Floor     int
	Direction Direction
	Pending   []Request
	Riders    []Rider
	MinFloor  int
	MaxFloor  int
}

// newSnapshot clones the elevator state for one policy decision.
func newSnapshot(b *Building, st *ElevatorState) *Snapshot {
	snap := &Snapshot{
		Floor:     st.Floor,
		Direction: st.Direction,
		MinFloor:  b.MinFloor(),
		MaxFloor:  b.MaxFloor(),
	}
	if len(st.Pending) > 0 {
		if err := deepcopy.Copy(&snap.Pending, st.Pending); err != nil {
			panic(err)
		}
	}
	if len(st.Riders) > 0 {
		if err := deepcopy.Copy(&snap.Riders, st.Riders); err != nil {
			panic(err)
		}
	}
	return snap
}

// NumFloors returns the number of floors visible in the snapshot.
func (s *Snapshot) NumFloors() int { return s.MaxFloor - s.MinFloor + 1 }

// HasWork reports whether any pending request or active rider exists.
func (s *Snapshot) HasWork() bool {
	return len(s.Pending) > 0 || len(s.Riders) > 0
}

// PendingAt counts pending requests originating at the given floor.
func (s *Snapshot) PendingAt(floor int) int {
	n := 0
	for _, req := range s.Pending {
		if req.Origin == floor {
			n++
		}
	}
	return n
}

// RidersFor counts active riders destined for the given floor.
func (s *Snapshot) RidersFor(floor int) int {
	n := 0
	for _, rider := range s.Riders {
		if rider.Destination == floor {
			n++
		}
	}
	return n
}

// ParkingFloor returns the building midpoint policies head for when no work
// exists anywhere.
func (s *Snapshot) ParkingFloor() int {
	return midpointFloor(s.MinFloor, s.MaxFloor)
}
