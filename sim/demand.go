package sim

import (
	"fmt"
	"math/rand"
)

// DemandGenerator emits passenger transport requests per tick, driven by a
// seeded RNG and a per-floor arrival probability (the density).
//
// Determinism contract: two generators constructed with the same seed and
// density produce identical request sequences for identical tick sequences.
// The generator draws exactly one uniform sample per floor per tick (plus one
// destination sample per emitted request), so the consumption pattern is a
// pure function of the outcomes, never of caller behavior.
type DemandGenerator struct {
	building *Building
	density  float64
	rng      *rand.Rand
}

// NewDemandGenerator creates a generator for the given building.
// density is the probability, in [0,1], that a new request originates at each
// floor on each tick.
func NewDemandGenerator(building *Building, key SimulationKey, density float64) (*DemandGenerator, error) {
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("density must be in [0,1], got %f", density)
	}
	return &DemandGenerator{
		building: building,
		density:  density,
		rng:      NewPartitionedRNG(key).ForSubsystem(SubsystemDemand),
	}, nil
}

// GenerateForTick returns the requests originating during the given tick,
// in ascending origin-floor order. With fewer than two floors no valid
// destination exists and nothing is generated.
func (g *DemandGenerator) GenerateForTick(tick int64) []Request {
	numFloors := g.building.NumFloors()
	if numFloors < 2 {
		return nil
	}

	var requests []Request
	for floor := g.building.MinFloor(); floor <= g.building.MaxFloor(); floor++ {
		if g.rng.Float64() >= g.density {
			continue
		}
		// Destination is uniform over the remaining floors: draw from a range
		// one short of the floor count and shift past the origin.
		dest := g.building.MinFloor() + g.rng.Intn(numFloors-1)
		if dest >= floor {
			dest++
		}
		requests = append(requests, Request{
			Origin:      floor,
			Destination: dest,
			CreatedAt:   tick,
		})
	}
	return requests
}

// Density returns the configured per-floor, per-tick arrival probability.
func (g *DemandGenerator) Density() float64 {
	return g.density
}
