// sim/engine.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// DefaultDrainCapTicks bounds the drain phase when a Config leaves
// DrainCapTicks unset. Large enough for any sane policy to empty a building,
// small enough to terminate a run under a policy that never converges.
const DefaultDrainCapTicks = 100_000

// Config carries the immutable parameters of a single simulation run.
// There is no process-wide configuration state: everything a run needs is
// passed in here.
type Config struct {
	MinFloor      int
	MaxFloor      int
	Seed          int64
	WindowTicks   int64   // ticks during which new requests are generated
	Density       float64 // per-floor, per-tick arrival probability in [0,1]
	DrainCapTicks int64   // max drain ticks; 0 means DefaultDrainCapTicks
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.MinFloor > c.MaxFloor {
		return fmt.Errorf("%w: minFloor %d > maxFloor %d", ErrInvalidRange, c.MinFloor, c.MaxFloor)
	}
	if c.WindowTicks < 0 {
		return fmt.Errorf("window ticks must be non-negative, got %d", c.WindowTicks)
	}
	if c.Density < 0 || c.Density > 1 {
		return fmt.Errorf("density must be in [0,1], got %f", c.Density)
	}
	if c.DrainCapTicks < 0 {
		return fmt.Errorf("drain cap ticks must be non-negative, got %d", c.DrainCapTicks)
	}
	return nil
}

// Result bundles the outputs of one run.
type Result struct {
	Stats          Statistics
	FinalFloor     int   // car position when the run concluded
	TicksRun       int64 // window plus drain ticks actually executed
	GeneratedCount int   // requests generated during the window
	// DrainCapExceeded marks a run that could not empty its pending/active
	// sets within the drain cap. The Stats are partial; callers comparing
	// policies should penalize or exclude such runs rather than average them.
	DrainCapExceeded bool
}

// Engine drives the tick loop for one simulation run. It is the sole owner
// and mutator of the elevator state; the policy only ever sees snapshots.
type Engine struct {
	Clock    int64
	Building *Building
	State    *ElevatorState
	Stats    *Statistics

	policy DispatchPolicy
	gen    *DemandGenerator
	cfg    Config

	generated int
}

// NewEngine validates the config and wires up a run.
func NewEngine(cfg Config, policy DispatchPolicy) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DrainCapTicks == 0 {
		cfg.DrainCapTicks = DefaultDrainCapTicks
	}

	building, err := NewBuilding(cfg.MinFloor, cfg.MaxFloor)
	if err != nil {
		return nil, err
	}
	gen, err := NewDemandGenerator(building, NewSimulationKey(cfg.Seed), cfg.Density)
	if err != nil {
		return nil, err
	}

	return &Engine{
		Building: building,
		State:    NewElevatorState(building),
		Stats:    &Statistics{},
		policy:   policy,
		gen:      gen,
		cfg:      cfg,
	}, nil
}

// Run executes the generation window followed by the drain phase and returns
// the run's Result. For a fixed (policy parameters, seed, window, density)
// the Result is bit-for-bit reproducible across runs and process restarts.
//
// The only error paths are the config validation in NewEngine and a policy
// contract violation (OutOfRangeMoveError); hitting the drain cap is a
// reported outcome on the Result, not an error.
func (e *Engine) Run() (*Result, error) {
	// Generation window: new demand arrives, the policy reacts each tick.
	for e.Clock = 0; e.Clock < e.cfg.WindowTicks; e.Clock++ {
		requests := e.gen.GenerateForTick(e.Clock)
		e.State.Pending = append(e.State.Pending, requests...)
		e.generated += len(requests)
		if err := e.tick(); err != nil {
			return nil, err
		}
	}

	// Drain phase: no new demand, keep ticking until the outstanding work is
	// resolved or the cap trips.
	capExceeded := false
	drainStart := e.Clock
	for len(e.State.Pending) > 0 || len(e.State.Riders) > 0 {
		if e.Clock-drainStart >= e.cfg.DrainCapTicks {
			capExceeded = true
			logrus.Warnf("drain cap of %d ticks exceeded by policy %q (seed %d): %d pending, %d riding",
				e.cfg.DrainCapTicks, e.policy.Name(), e.cfg.Seed, len(e.State.Pending), len(e.State.Riders))
			break
		}
		if err := e.tick(); err != nil {
			return nil, err
		}
		e.Clock++
	}

	logrus.Infof("[tick %07d] Simulation ended: %d/%d requests completed",
		e.Clock, e.Stats.CompletedCount, e.generated)

	return &Result{
		Stats:            *e.Stats,
		FinalFloor:       e.State.Floor,
		TicksRun:         e.Clock,
		GeneratedCount:   e.generated,
		DrainCapExceeded: capExceeded,
	}, nil
}

// tick runs one decide/apply cycle at the current clock.
func (e *Engine) tick() error {
	snap := newSnapshot(e.Building, e.State)
	instr := e.policy.Decide(snap)
	logrus.Debugf("[tick %07d] %s: %s at floor %d (%d pending, %d riding)",
		e.Clock, e.policy.Name(), instr, e.State.Floor, len(e.State.Pending), len(e.State.Riders))

	records, err := e.State.step(e.Building, instr, e.Clock)
	if err != nil {
		if errors.Is(err, errOutOfRange) {
			return &OutOfRangeMoveError{
				Policy: e.policy.Name(),
				Seed:   e.cfg.Seed,
				Tick:   e.Clock,
				Floor:  e.State.Floor,
			}
		}
		return err
	}

	for _, rec := range records {
		e.Stats.Record(rec)
	}
	return nil
}

// Run is a convenience wrapper that builds an Engine and executes the run.
func Run(cfg Config, policy DispatchPolicy) (*Result, error) {
	engine, err := NewEngine(cfg, policy)
	if err != nil {
		return nil, err
	}
	return engine.Run()
}
