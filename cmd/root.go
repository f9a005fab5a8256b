package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lift-sim/lift-sim/sim"
	"github.com/lift-sim/lift-sim/sim/tune"
)

var (
	// CLI flags shared by run and tune
	seeds         string  // comma-separated list of simulation seeds
	minFloor      int     // lowest floor of the building
	maxFloor      int     // highest floor of the building
	windowTicks   int64   // length of the request generation window (in ticks)
	density       float64 // per-floor, per-tick request probability
	drainCapTicks int64   // max drain ticks before a run is reported as capped
	logLevel      string  // log verbosity level

	// CLI flags for run
	policyName  string // dispatch policy name
	weightsPath string // YAML weights bundle to load

	// CLI flags for tune
	iterations   int     // max hill-climbing sweeps
	stepFraction float64 // relative perturbation size per weight
	restarts     int     // random restarts after the deterministic climb
	restartSeed  int64   // seed for restart jitter
	outPath      string  // where to persist the best weights bundle
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "liftsim",
	Short: "Discrete-tick simulator for single-elevator dispatch policies",
}

// runCmd executes one simulation per seed using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the elevator simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		name := policyName
		weights := sim.DefaultWeights()
		if weightsPath != "" {
			bundle, err := sim.LoadWeightsBundle(weightsPath)
			if err != nil {
				logrus.Fatalf("unable to read weights bundle: %v", err)
			}
			weights = bundle.Weights
			if bundle.Policy != "" {
				name = bundle.Policy
			}
		}
		if !sim.IsValidPolicy(name) {
			logrus.Fatalf("unknown policy %q; available: %s", name, strings.Join(sim.PolicyNames(), ", "))
		}

		seedList, err := parseSeeds(seeds)
		if err != nil {
			logrus.Fatalf("invalid --seeds: %v", err)
		}

		logrus.Infof("Starting simulation: floors [%d, %d], window=%d ticks, density=%.3f, policy=%s",
			minFloor, maxFloor, windowTicks, density, name)

		var stats []sim.Statistics
		for _, seed := range seedList {
			result, err := sim.Run(sim.Config{
				MinFloor:      minFloor,
				MaxFloor:      maxFloor,
				Seed:          seed,
				WindowTicks:   windowTicks,
				Density:       density,
				DrainCapTicks: drainCapTicks,
			}, sim.NewPolicy(name, weights))
			if err != nil {
				logrus.Fatalf("run failed: %v", err)
			}
			printRun(seed, result)
			stats = append(stats, result.Stats)
		}
		if len(seedList) > 1 {
			printSummary(sim.CombineRuns(stats))
		}
	},
}

// tuneCmd hill-climbs the scored policy's weights across the seed set
var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Search the scored policy's weights by hill climbing",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		seedList, err := parseSeeds(seeds)
		if err != nil {
			logrus.Fatalf("invalid --seeds: %v", err)
		}

		start := sim.DefaultWeights()
		if weightsPath != "" {
			bundle, err := sim.LoadWeightsBundle(weightsPath)
			if err != nil {
				logrus.Fatalf("unable to read weights bundle: %v", err)
			}
			start = bundle.Weights
		}

		outcome, err := tune.Climb(tune.Options{
			Seeds:         seedList,
			MinFloor:      minFloor,
			MaxFloor:      maxFloor,
			WindowTicks:   windowTicks,
			Density:       density,
			DrainCapTicks: drainCapTicks,
			Iterations:    iterations,
			StepFraction:  stepFraction,
			Restarts:      restarts,
			RestartSeed:   restartSeed,
		}, start)
		if err != nil {
			logrus.Fatalf("tuning failed: %v", err)
		}

		fmt.Println("=== Tuning Outcome ===")
		fmt.Printf("Best Score         : %.3f ticks\n", outcome.BestScore)
		fmt.Printf("Candidates Scored  : %d\n", outcome.Evaluated)
		fmt.Printf("Capped Runs        : %d\n", outcome.CappedRuns)
		fmt.Printf("Best Weights       : %+v\n", outcome.Best)

		if outPath != "" {
			bundle := &sim.WeightsBundle{Policy: "scored", Weights: outcome.Best, Score: outcome.BestScore}
			if err := bundle.Save(outPath); err != nil {
				logrus.Fatalf("unable to save weights bundle: %v", err)
			}
			logrus.Infof("Best weights written to %s", outPath)
		}
	},
}

// policiesCmd lists the registered dispatch policies
var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List available dispatch policies",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range sim.PolicyNames() {
			fmt.Println(name)
		}
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// parseSeeds parses a comma-separated seed list, e.g. "1,2,3".
func parseSeeds(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	seeds := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		seed, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", part, err)
		}
		seeds = append(seeds, seed)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("no seeds in %q", s)
	}
	return seeds, nil
}

// printRun displays one run's statistics on the console.
func printRun(seed int64, result *sim.Result) {
	fmt.Printf("=== Run (seed %d) ===\n", seed)
	fmt.Printf("Generated Requests : %d\n", result.GeneratedCount)
	fmt.Printf("Completed Requests : %d\n", result.Stats.CompletedCount)
	fmt.Printf("Ticks Run          : %d\n", result.TicksRun)
	fmt.Printf("Final Floor        : %d\n", result.FinalFloor)
	if result.Stats.CompletedCount > 0 {
		fmt.Printf("Average Wait       : %.2f ticks\n", result.Stats.AverageWait())
		fmt.Printf("Average Travel     : %.2f ticks\n", result.Stats.AverageTravel())
		fmt.Printf("Average Total Time : %.2f ticks\n", result.Stats.AverageTotalTime())
	}
	if result.DrainCapExceeded {
		fmt.Println("Outcome            : drain cap exceeded (partial statistics)")
	}
}

// printSummary displays the weighted multi-seed combine.
func printSummary(summary sim.Summary) {
	fmt.Println("=== Multi-Seed Summary ===")
	fmt.Printf("Runs               : %d\n", summary.Runs)
	fmt.Printf("Total Completed    : %d\n", summary.TotalCompleted)
	fmt.Printf("Combined Average   : %.2f ticks\n", summary.CombinedAverage)
	fmt.Printf("Average Spread     : %.2f ticks\n", summary.AverageSpread)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, cmd := range []*cobra.Command{runCmd, tuneCmd} {
		cmd.Flags().StringVar(&seeds, "seeds", "42", "Comma-separated simulation seeds")
		cmd.Flags().IntVar(&minFloor, "min-floor", 0, "Lowest floor of the building")
		cmd.Flags().IntVar(&maxFloor, "max-floor", 7, "Highest floor of the building")
		cmd.Flags().Int64Var(&windowTicks, "window", 1000, "Request generation window (in ticks)")
		cmd.Flags().Float64Var(&density, "density", 0.05, "Per-floor, per-tick request probability")
		cmd.Flags().Int64Var(&drainCapTicks, "drain-cap", 0, "Max drain ticks (0 = default cap)")
		cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
		cmd.Flags().StringVar(&weightsPath, "weights", "", "YAML weights bundle to load")
	}

	runCmd.Flags().StringVar(&policyName, "policy", "scored", "Dispatch policy name (see `liftsim policies`)")

	tuneCmd.Flags().IntVar(&iterations, "iterations", 10, "Max hill-climbing sweeps")
	tuneCmd.Flags().Float64Var(&stepFraction, "step", 0.1, "Relative perturbation size per weight")
	tuneCmd.Flags().IntVar(&restarts, "restarts", 0, "Random restarts after the deterministic climb")
	tuneCmd.Flags().Int64Var(&restartSeed, "restart-seed", 1, "Seed for restart jitter")
	tuneCmd.Flags().StringVar(&outPath, "out", "", "Path to write the best weights bundle")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tuneCmd)
	rootCmd.AddCommand(policiesCmd)
}
