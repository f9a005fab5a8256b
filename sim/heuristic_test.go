package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// neutralWeights make every term observable in isolation.
func neutralWeights() Weights {
	return Weights{PickupBias: 1, DropoffBias: 1, OpenDoorBias: 1, HeatMapBias: 0, DirectionBias: 1}
}

func TestScored_HeatMapSpreadsDemand(t *testing.T) {
	w := neutralWeights()
	w.HeatMapBias = 1
	policy := &ScoredPolicy{Weights: w}
	snap := &Snapshot{
		Floor: 0, Direction: DirectionIdle,
		MinFloor: 0, MaxFloor: 2,
		Pending: []Request{{Origin: 2, Destination: 0, CreatedAt: 0}},
	}

	scores := policy.scoreFloors(snap)
	require.Len(t, scores, 3)
	assert.InDelta(t, 0.0, scores[0], 1e-12)
	assert.InDelta(t, 1.0/3.0, scores[1], 1e-12, "interior floor averages three neighbors")
	assert.InDelta(t, 1.5, scores[2], 1e-12, "boundary floor averages only its one in-range neighbor")

	assert.Equal(t, MoveUp, policy.Decide(snap))
}

func TestScored_HeatMapBoundaries_NoFabricatedNeighbor(t *testing.T) {
	// Two-floor building: both floors are boundaries and average exactly two
	// base scores. A wraparound or fabricated neighbor would change these
	// exact values.
	w := Weights{PickupBias: 1, DropoffBias: 1, OpenDoorBias: 2, HeatMapBias: 1, DirectionBias: 1}
	policy := &ScoredPolicy{Weights: w}
	snap := &Snapshot{
		Floor: 0, Direction: DirectionIdle,
		MinFloor: 0, MaxFloor: 1,
		Pending: []Request{{Origin: 0, Destination: 1, CreatedAt: 0}},
	}

	scores := policy.scoreFloors(snap)
	require.Len(t, scores, 2)
	// base = [2, 0]: the current floor's demand doubled by OpenDoorBias
	assert.InDelta(t, 3.0, scores[0], 1e-12)
	assert.InDelta(t, 1.0, scores[1], 1e-12)
}

func TestScored_OpenDoorBiasStopsAtUsefulFloor(t *testing.T) {
	w := neutralWeights()
	w.OpenDoorBias = 3
	policy := &ScoredPolicy{Weights: w}
	snap := &Snapshot{
		Floor: 1, Direction: DirectionIdle,
		MinFloor: 0, MaxFloor: 2,
		Pending: []Request{
			{Origin: 1, Destination: 0, CreatedAt: 0},
			{Origin: 2, Destination: 0, CreatedAt: 0},
		},
	}
	assert.Equal(t, OpenDoors, policy.Decide(snap))
}

func TestScored_DirectionBiasKeepsMomentum(t *testing.T) {
	w := neutralWeights()
	w.DirectionBias = 2
	policy := &ScoredPolicy{Weights: w}
	snap := &Snapshot{
		Floor: 2, Direction: DirectionUp,
		MinFloor: 0, MaxFloor: 4,
		Pending: []Request{
			{Origin: 0, Destination: 1, CreatedAt: 0},
			{Origin: 4, Destination: 1, CreatedAt: 0},
		},
	}
	assert.Equal(t, MoveUp, policy.Decide(snap), "equal demand ahead and behind: continue upward")

	snap.Direction = DirectionDown
	assert.Equal(t, MoveDown, policy.Decide(snap))
}

func TestScored_ExactTieBreaksToLowestFloor(t *testing.T) {
	policy := &ScoredPolicy{Weights: neutralWeights()}
	snap := &Snapshot{
		Floor: 2, Direction: DirectionIdle,
		MinFloor: 0, MaxFloor: 4,
		Pending: []Request{
			{Origin: 0, Destination: 1, CreatedAt: 0},
			{Origin: 4, Destination: 1, CreatedAt: 0},
		},
	}
	assert.Equal(t, MoveDown, policy.Decide(snap))
}

func TestScored_RiderDestinationAttracts(t *testing.T) {
	w := neutralWeights()
	w.DropoffBias = 5
	policy := &ScoredPolicy{Weights: w}
	snap := &Snapshot{
		Floor: 0, Direction: DirectionIdle,
		MinFloor: 0, MaxFloor: 2,
		Pending: []Request{{Origin: 1, Destination: 0, CreatedAt: 0}},
		Riders:  []Rider{{Origin: 0, Destination: 2, CreatedAt: 0, PickedUpAt: 0}},
	}
	assert.Equal(t, MoveUp, policy.Decide(snap))
}

func TestScored_NoWorkParksAtMidpoint(t *testing.T) {
	policy := &ScoredPolicy{Weights: DefaultWeights()}
	snap := &Snapshot{Floor: 6, Direction: DirectionIdle, MinFloor: 0, MaxFloor: 7}
	assert.Equal(t, MoveDown, policy.Decide(snap))

	snap.Floor = 3
	assert.Equal(t, OpenDoors, policy.Decide(snap))
}
