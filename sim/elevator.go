// ElevatorState and the transition function that applies one MoveInstruction
// per tick. The Engine is the sole mutator of this state; policies only ever
// see a Snapshot.

package sim

import (
	"errors"
	"fmt"
)

// Direction is the elevator's current travel direction.
type Direction int

const (
	DirectionIdle Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "idle"
	}
}

// MoveInstruction is the only vocabulary a dispatch policy may produce.
type MoveInstruction int

const (
	MoveUp MoveInstruction = iota
	MoveDown
	OpenDoors
)

func (m MoveInstruction) String() string {
	switch m {
	case MoveUp:
		return "move-up"
	case MoveDown:
		return "move-down"
	default:
		return "open-doors"
	}
}

// errOutOfRange marks a transition that would move the car past a building
// boundary. The Engine wraps it into an OutOfRangeMoveError carrying the
// offending policy, seed and tick.
var errOutOfRange = errors.New("move past building boundary")

// OutOfRangeMoveError reports a policy instructing movement past a building
// boundary. The engine never clamps and continues: that would mask a buggy
// policy, so the run fails with enough context to reproduce the decision.
type OutOfRangeMoveError struct {
	Policy string // name of the offending policy
	Seed   int64  // master seed of the run
	Tick   int64  // tick the instruction was issued
	Floor  int    // floor the car was on
}

func (e *OutOfRangeMoveError) Error() string {
	return fmt.Sprintf("policy %q moved past the boundary from floor %d at tick %d (seed %d)",
		e.Policy, e.Floor, e.Tick, e.Seed)
}

// ElevatorState is the mutable runtime state of the single elevator.
// Exclusively owned and mutated by the Engine.
type ElevatorState struct {
	Floor     int
	Direction Direction
	Pending   []Request // requests not yet picked up, in generation order
	Riders    []Rider   // passengers on board, in boarding order
}

// NewElevatorState parks a fresh car at the building's minimum floor, idle.
func NewElevatorState(b *Building) *ElevatorState {
	return &ElevatorState{
		Floor:     b.MinFloor(),
		Direction: DirectionIdle,
	}
}

func (st *ElevatorState) String() string {
	return fmt.Sprintf("ElevatorState: (floor %d, %s, %d pending, %d riding)",
		st.Floor, st.Direction, len(st.Pending), len(st.Riders))
}

// step applies one MoveInstruction at the given tick and returns the
// completion records produced by any door-open event.
//
// OpenDoors performs dropoffs before pickups, atomically within the tick:
// riders destined here leave first, then every pending request originating
// here boards with PickedUpAt = tick.
func (st *ElevatorState) step(b *Building, instr MoveInstruction, tick int64) ([]CompletionRecord, error) {
	switch instr {
	case MoveUp:
		if st.Floor+1 > b.MaxFloor() {
			return nil, errOutOfRange
		}
		st.Floor++
		st.Direction = DirectionUp
		return nil, nil

	case MoveDown:
		if st.Floor-1 < b.MinFloor() {
			return nil, errOutOfRange
		}
		st.Floor--
		st.Direction = DirectionDown
		return nil, nil

	case OpenDoors:
		var records []CompletionRecord

		remaining := st.Riders[:0]
		for _, rider := range st.Riders {
			if rider.Destination == st.Floor {
				records = append(records, CompletionRecord{
					WaitTicks:   rider.PickedUpAt - rider.CreatedAt,
					TravelTicks: tick - rider.PickedUpAt,
				})
				continue
			}
			remaining = append(remaining, rider)
		}
		st.Riders = remaining

		waiting := st.Pending[:0]
		for _, req := range st.Pending {
			if req.Origin == st.Floor {
				st.Riders = append(st.Riders, Rider{
					Origin:      req.Origin,
					Destination: req.Destination,
					CreatedAt:   req.CreatedAt,
					PickedUpAt:  tick,
				})
				continue
			}
			waiting = append(waiting, req)
		}
		st.Pending = waiting

		return records, nil

	default:
		panic(fmt.Sprintf("unknown move instruction %d", instr))
	}
}
