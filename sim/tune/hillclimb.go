// Package tune searches the scored dispatch policy's weight space by hill
// climbing over full simulation runs. Candidates are compared on the
// completed-count weighted combined average across a fixed seed set, so the
// search itself is fully reproducible.
package tune

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/lift-sim/lift-sim/sim"
)

// numWeights is the number of tunable fields of sim.Weights; perturbation
// order matches the struct's field order.
const numWeights = 5

// Options configure a hill-climbing search.
type Options struct {
	Seeds         []int64 // simulation seeds every candidate is scored on
	MinFloor      int
	MaxFloor      int
	WindowTicks   int64
	Density       float64
	DrainCapTicks int64

	Iterations   int     // max improvement sweeps; the climb stops early when a sweep finds nothing
	StepFraction float64 // relative size of each weight perturbation; 0 means 0.1
	Restarts     int     // additional randomly-jittered starts after the deterministic pass
	RestartSeed  int64   // seeds the restart jitter
}

// Outcome reports the best configuration a search found.
type Outcome struct {
	Best       sim.Weights
	BestScore  float64 // combined average total time; lower is better
	Evaluated  int     // candidate weight sets scored
	CappedRuns int     // runs excluded because they hit the drain cap
}

// Climb hill-climbs from start, perturbing one weight at a time by
// ±StepFraction and keeping any candidate with a lower combined average
// total time. Multiplicative steps keep every weight non-negative. With
// Restarts > 0 the climb repeats from jittered copies of start, keeping the
// best outcome across all passes.
func Climb(opts Options, start sim.Weights) (*Outcome, error) {
	if len(opts.Seeds) == 0 {
		return nil, errors.New("tune: at least one seed required")
	}
	if opts.Iterations <= 0 {
		return nil, errors.New("tune: iterations must be positive")
	}
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if opts.StepFraction <= 0 {
		opts.StepFraction = 0.1
	}
	probe := sim.Config{
		MinFloor:      opts.MinFloor,
		MaxFloor:      opts.MaxFloor,
		WindowTicks:   opts.WindowTicks,
		Density:       opts.Density,
		DrainCapTicks: opts.DrainCapTicks,
	}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	out := &Outcome{Best: start, BestScore: math.Inf(1)}
	climbFrom(opts, start, out)

	// Random restarts escape local optima the deterministic pass settles in.
	jitter := sim.NewPartitionedRNG(sim.NewSimulationKey(opts.RestartSeed)).ForSubsystem(sim.SubsystemTuner)
	for r := 0; r < opts.Restarts; r++ {
		jittered := start
		for i := 0; i < numWeights; i++ {
			// scale each weight by a uniform factor in [0.5, 1.5)
			jittered = scaleWeight(jittered, i, 0.5+jitter.Float64())
		}
		logrus.Infof("tune: restart %d from %+v", r+1, jittered)
		climbFrom(opts, jittered, out)
	}

	return out, nil
}

// climbFrom runs one full climb starting at w, folding results into out.
func climbFrom(opts Options, w sim.Weights, out *Outcome) {
	score, capped := evaluate(opts, w)
	out.Evaluated++
	out.CappedRuns += capped
	if score < out.BestScore {
		out.Best, out.BestScore = w, score
	}

	current, currentScore := w, score
	for iter := 0; iter < opts.Iterations; iter++ {
		improved := false
		for i := 0; i < numWeights; i++ {
			for _, direction := range []float64{1, -1} {
				candidate := scaleWeight(current, i, 1+direction*opts.StepFraction)
				if candidate.Validate() != nil {
					continue
				}
				candScore, capped := evaluate(opts, candidate)
				out.Evaluated++
				out.CappedRuns += capped
				// A NaN candidate score (every run capped or empty) never
				// wins: NaN < x is false for all x.
				if candScore < currentScore || (math.IsNaN(currentScore) && !math.IsNaN(candScore)) {
					current, currentScore = candidate, candScore
					improved = true
					logrus.Infof("tune: sweep %d improved score to %.3f", iter, candScore)
				}
			}
		}
		if !improved {
			logrus.Infof("tune: converged after %d sweeps", iter+1)
			break
		}
	}

	if currentScore < out.BestScore {
		out.Best, out.BestScore = current, currentScore
	}
}

// evaluate scores one weight set: it runs the scored policy over every seed
// and folds the results with the completed-count weighted combine. Runs that
// hit the drain cap are excluded from the combine rather than averaged in.
func evaluate(opts Options, w sim.Weights) (float64, int) {
	stats := make([]sim.Statistics, 0, len(opts.Seeds))
	capped := 0
	for _, seed := range opts.Seeds {
		result, err := sim.Run(sim.Config{
			MinFloor:      opts.MinFloor,
			MaxFloor:      opts.MaxFloor,
			Seed:          seed,
			WindowTicks:   opts.WindowTicks,
			Density:       opts.Density,
			DrainCapTicks: opts.DrainCapTicks,
		}, sim.NewPolicy("scored", w))
		if err != nil {
			// The scored policy cannot violate the move contract, and the
			// config was validated by the first evaluate call.
			logrus.Fatalf("tune: run failed for seed %d: %v", seed, err)
		}
		if result.DrainCapExceeded {
			capped++
			continue
		}
		stats = append(stats, result.Stats)
	}
	return sim.CombineRuns(stats).CombinedAverage, capped
}

// scaleWeight multiplies the idx-th weight field by factor.
func scaleWeight(w sim.Weights, idx int, factor float64) sim.Weights {
	switch idx {
	case 0:
		w.PickupBias *= factor
	case 1:
		w.DropoffBias *= factor
	case 2:
		w.OpenDoorBias *= factor
	case 3:
		w.HeatMapBias *= factor
	case 4:
		w.DirectionBias *= factor
	}
	return w
}
