package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyRegistry(t *testing.T) {
	assert.True(t, IsValidPolicy(""))
	assert.True(t, IsValidPolicy("fifo"))
	assert.True(t, IsValidPolicy("scored"))
	assert.False(t, IsValidPolicy("oracle"))

	assert.Equal(t, []string{"fifo", "scored"}, PolicyNames())
}

func TestNewPolicy_ByName(t *testing.T) {
	assert.Equal(t, "fifo", NewPolicy("", DefaultWeights()).Name())
	assert.Equal(t, "fifo", NewPolicy("fifo", DefaultWeights()).Name())
	assert.Equal(t, "scored", NewPolicy("scored", DefaultWeights()).Name())
}

func TestNewPolicy_UnknownNamePanics(t *testing.T) {
	assert.Panics(t, func() { NewPolicy("oracle", DefaultWeights()) })
}

func TestFIFO_ServesOldestRequestFirst(t *testing.T) {
	// Two pending requests created at ticks 0 and 5: FIFO must move toward
	// the older one even when the newer one is closer.
	policy := &FIFOPolicy{}
	snap := &Snapshot{
		Floor: 0, Direction: DirectionIdle,
		MinFloor: 0, MaxFloor: 5,
		Pending: []Request{
			{Origin: 1, Destination: 2, CreatedAt: 5},
			{Origin: 4, Destination: 0, CreatedAt: 0},
		},
	}
	assert.Equal(t, MoveUp, policy.Decide(snap))

	snap.Floor = 4
	assert.Equal(t, OpenDoors, policy.Decide(snap), "doors open on arrival at the oldest origin")
}

func TestFIFO_ServesOldestRiderDestination(t *testing.T) {
	policy := &FIFOPolicy{}
	snap := &Snapshot{
		Floor: 3, Direction: DirectionUp,
		MinFloor: 0, MaxFloor: 5,
		Pending: []Request{{Origin: 5, Destination: 0, CreatedAt: 4}},
		Riders:  []Rider{{Origin: 2, Destination: 1, CreatedAt: 1, PickedUpAt: 3}},
	}
	// The rider was created before the pending request, so its destination wins.
	assert.Equal(t, MoveDown, policy.Decide(snap))
}

func TestFIFO_CreationTieBreaksToLowerFloor(t *testing.T) {
	policy := &FIFOPolicy{}
	snap := &Snapshot{
		Floor: 2, Direction: DirectionIdle,
		MinFloor: 0, MaxFloor: 5,
		Pending: []Request{
			{Origin: 4, Destination: 1, CreatedAt: 7},
			{Origin: 1, Destination: 3, CreatedAt: 7},
		},
	}
	assert.Equal(t, MoveDown, policy.Decide(snap))
}

func TestFIFO_NoWorkParksAtMidpoint(t *testing.T) {
	policy := &FIFOPolicy{}
	snap := &Snapshot{Floor: 0, MinFloor: 0, MaxFloor: 7}
	assert.Equal(t, MoveUp, policy.Decide(snap))

	snap.Floor = 3
	assert.Equal(t, OpenDoors, policy.Decide(snap), "parked at the midpoint the policy holds")

	snap.Floor = 6
	assert.Equal(t, MoveDown, policy.Decide(snap))
}

func TestSnapshot_Counters(t *testing.T) {
	snap := &Snapshot{
		MinFloor: 0, MaxFloor: 4,
		Pending: []Request{
			{Origin: 2, Destination: 0, CreatedAt: 0},
			{Origin: 2, Destination: 4, CreatedAt: 1},
			{Origin: 3, Destination: 1, CreatedAt: 2},
		},
		Riders: []Rider{{Origin: 0, Destination: 2, CreatedAt: 0, PickedUpAt: 1}},
	}
	assert.Equal(t, 2, snap.PendingAt(2))
	assert.Equal(t, 0, snap.PendingAt(4))
	assert.Equal(t, 1, snap.RidersFor(2))
	assert.True(t, snap.HasWork())
	assert.Equal(t, 2, snap.ParkingFloor())
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	b := mustBuilding(t, 0, 3)
	st := NewElevatorState(b)
	st.Pending = []Request{{Origin: 1, Destination: 2, CreatedAt: 0}}
	st.Riders = []Rider{{Origin: 0, Destination: 3, CreatedAt: 0, PickedUpAt: 1}}

	snap := newSnapshot(b, st)
	require.Equal(t, st.Pending, snap.Pending)
	require.Equal(t, st.Riders, snap.Riders)

	// Mutating the snapshot must not reach engine-owned state.
	snap.Pending[0].Origin = 99
	snap.Riders[0].Destination = 99
	assert.Equal(t, 1, st.Pending[0].Origin)
	assert.Equal(t, 3, st.Riders[0].Destination)
}
