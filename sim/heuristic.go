package sim

import (
	"math"
)

// ScoredPolicy ranks every floor by expected usefulness and heads for the
// best one.
//
// The score of a floor combines three terms:
//
//  1. Base demand: pending pickups and on-board dropoffs at the floor,
//     weighted by PickupBias and DropoffBias. The current floor's base score
//     is multiplied by OpenDoorBias, a strong incentive to stop where useful
//     work is immediately available.
//  2. Heat-map smoothing: each floor's base score is averaged with its
//     in-range neighbors' base scores, scaled by HeatMapBias and added back.
//     Concentrated demand bleeds into adjacent floors, discouraging myopic
//     single-floor optimization.
//  3. Directional continuation: while the car is moving, every floor strictly
//     ahead of it in the travel direction is multiplied by DirectionBias,
//     penalizing reversals.
//
// Ties on the final score go to the lowest-numbered floor. With no work
// anywhere scoring is skipped and the car parks at the building midpoint.
type ScoredPolicy struct {
	Weights Weights
}

// Name implements DispatchPolicy.
func (p *ScoredPolicy) Name() string { return "scored" }

// Decide implements DispatchPolicy for ScoredPolicy.
func (p *ScoredPolicy) Decide(snap *Snapshot) MoveInstruction {
	if !snap.HasWork() {
		return moveToward(snap, snap.ParkingFloor())
	}

	scores := p.scoreFloors(snap)

	// Argmax over floors in ascending order; strict > keeps the
	// lowest-numbered floor on exact ties.
	best := snap.MinFloor
	bestScore := math.Inf(-1)
	for i, s := range scores {
		if s > bestScore {
			bestScore = s
			best = snap.MinFloor + i
		}
	}
	return moveToward(snap, best)
}

// scoreFloors computes the final per-floor scores, indexed from MinFloor.
func (p *ScoredPolicy) scoreFloors(snap *Snapshot) []float64 {
	n := snap.NumFloors()
	w := p.Weights

	base := make([]float64, n)
	for i := range base {
		floor := snap.MinFloor + i
		score := float64(snap.PendingAt(floor))*w.PickupBias +
			float64(snap.RidersFor(floor))*w.DropoffBias
		if floor == snap.Floor {
			score *= w.OpenDoorBias
		}
		base[i] = score
	}

	scores := make([]float64, n)
	copy(scores, base)

	// Heat-map smoothing over in-range neighbors only: boundary floors
	// average two values, interior floors three. No wraparound, no
	// fabricated neighbor.
	for i := range base {
		sum := base[i]
		count := 1.0
		if i > 0 {
			sum += base[i-1]
			count++
		}
		if i < n-1 {
			sum += base[i+1]
			count++
		}
		scores[i] += (sum / count) * w.HeatMapBias
	}

	switch snap.Direction {
	case DirectionUp:
		for i := range scores {
			if snap.MinFloor+i > snap.Floor {
				scores[i] *= w.DirectionBias
			}
		}
	case DirectionDown:
		for i := range scores {
			if snap.MinFloor+i < snap.Floor {
				scores[i] *= w.DirectionBias
			}
		}
	}

	return scores
}
