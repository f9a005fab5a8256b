// Tracks per-run and multi-run latency statistics for completed trips.

package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Statistics accumulates per-request latency for a single run.
// Averages are ticks; they return NaN while no request has completed.
type Statistics struct {
	CompletedCount   int   // number of completed trips
	TotalWaitTicks   int64 // sum of pickedUpAt - createdAt over completions
	TotalTravelTicks int64 // sum of completedAt - pickedUpAt over completions
}

// Record folds one completed trip into the statistics.
func (s *Statistics) Record(rec CompletionRecord) {
	s.CompletedCount++
	s.TotalWaitTicks += rec.WaitTicks
	s.TotalTravelTicks += rec.TravelTicks
}

// AverageWait returns the mean wait time in ticks, NaN with no data.
func (s *Statistics) AverageWait() float64 {
	if s.CompletedCount == 0 {
		return math.NaN()
	}
	return float64(s.TotalWaitTicks) / float64(s.CompletedCount)
}

// AverageTravel returns the mean travel time in ticks, NaN with no data.
func (s *Statistics) AverageTravel() float64 {
	if s.CompletedCount == 0 {
		return math.NaN()
	}
	return float64(s.TotalTravelTicks) / float64(s.CompletedCount)
}

// AverageTotalTime returns the mean wait+travel time in ticks, NaN with no
// data. This is the score the tuner and tournament harnesses minimize.
func (s *Statistics) AverageTotalTime() float64 {
	if s.CompletedCount == 0 {
		return math.NaN()
	}
	return float64(s.TotalWaitTicks+s.TotalTravelTicks) / float64(s.CompletedCount)
}

// Summary folds several runs' Statistics into one multi-seed view.
type Summary struct {
	Runs            int     // number of runs folded, including empty ones
	TotalCompleted  int     // completions across all runs
	CombinedAverage float64 // completed-count weighted mean of per-run averages; NaN with no data
	AverageSpread   float64 // weighted standard deviation of per-run averages; 0 with fewer than two runs
}

// CombineRuns folds multiple runs' Statistics, weighting each run's average
// total time by its completed count so seeds that resolve more requests
// contribute proportionally more. Runs with no completions carry no weight.
func CombineRuns(runs []Statistics) Summary {
	avgs := make([]float64, 0, len(runs))
	weights := make([]float64, 0, len(runs))
	total := 0
	for _, r := range runs {
		if r.CompletedCount == 0 {
			continue
		}
		avgs = append(avgs, r.AverageTotalTime())
		weights = append(weights, float64(r.CompletedCount))
		total += r.CompletedCount
	}

	summary := Summary{Runs: len(runs), TotalCompleted: total}
	if total == 0 {
		summary.CombinedAverage = math.NaN()
		return summary
	}
	summary.CombinedAverage = stat.Mean(avgs, weights)
	if len(avgs) > 1 {
		summary.AverageSpread = stat.StdDev(avgs, weights)
	}
	return summary
}
