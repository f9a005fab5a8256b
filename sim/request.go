// Defines the Request, Rider and CompletionRecord types that model a single
// passenger's lifecycle: pending at a floor, riding the car, completed.

package sim

import (
	"fmt"
)

// Request is a transport request waiting to be picked up.
// Invariant: Origin != Destination, both within the building's range.
type Request struct {
	Origin      int   // floor the passenger is waiting on
	Destination int   // floor the passenger wants to reach
	CreatedAt   int64 // tick the request was generated
}

// This method returns a human-readable string representation of a Request.
func (r Request) String() string {
	return fmt.Sprintf("Request: (%d -> %d, created at tick %d)", r.Origin, r.Destination, r.CreatedAt)
}

// Rider is a picked-up passenger not yet dropped off. A Rider is created when
// a pending Request is served at its origin floor and converted into a
// CompletionRecord when the doors open at its destination.
type Rider struct {
	Origin      int
	Destination int
	CreatedAt   int64
	PickedUpAt  int64 // tick the passenger boarded
}

func (r Rider) String() string {
	return fmt.Sprintf("Rider: (%d -> %d, created %d, boarded %d)", r.Origin, r.Destination, r.CreatedAt, r.PickedUpAt)
}

// CompletionRecord captures the latency of one completed trip.
// Both fields are non-negative by construction: a passenger cannot board
// before being created nor arrive before boarding.
type CompletionRecord struct {
	WaitTicks   int64 // pickedUpAt - createdAt
	TravelTicks int64 // completedAt - pickedUpAt
}
