package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidRange reports a Building constructed with minFloor > maxFloor.
var ErrInvalidRange = errors.New("invalid floor range")

// Building is an immutable floor-range descriptor. It is created once at
// simulation start and never mutated.
type Building struct {
	minFloor int
	maxFloor int
}

// NewBuilding creates a Building spanning [minFloor, maxFloor].
func NewBuilding(minFloor, maxFloor int) (*Building, error) {
	if minFloor > maxFloor {
		return nil, fmt.Errorf("%w: minFloor %d > maxFloor %d", ErrInvalidRange, minFloor, maxFloor)
	}
	return &Building{minFloor: minFloor, maxFloor: maxFloor}, nil
}

// MinFloor returns the lowest floor of the building.
func (b *Building) MinFloor() int { return b.minFloor }

// MaxFloor returns the highest floor of the building.
func (b *Building) MaxFloor() int { return b.maxFloor }

// NumFloors returns the number of floors in the building.
func (b *Building) NumFloors() int { return b.maxFloor - b.minFloor + 1 }

// Contains reports whether floor lies within the building's range.
func (b *Building) Contains(floor int) bool {
	return floor >= b.minFloor && floor <= b.maxFloor
}

// Midpoint returns the building's middle floor, used as the parking floor
// when no work exists. Spans of odd length round toward the floor below the
// exact midpoint.
func (b *Building) Midpoint() int {
	return midpointFloor(b.minFloor, b.maxFloor)
}

// midpointFloor computes the integer midpoint of [minFloor, maxFloor],
// rounding toward negative infinity so basements resolve the same way as
// above-ground spans.
func midpointFloor(minFloor, maxFloor int) int {
	sum := minFloor + maxFloor
	if sum < 0 && sum%2 != 0 {
		return sum/2 - 1
	}
	return sum / 2
}
