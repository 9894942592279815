package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/spec"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/energy"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/prompt"
	"github.com/DjordjeVuckovic/sort-energy-bench/pkg/config/env"
	"github.com/spf13/pflag"
)

type cliConfig struct {
	EnvFile     string
	LogLevel    string
	PlanPath    string
	Sizes       string
	Algorithms  []string
	Runs        int
	Warmup      int
	Seed        uint64
	Backends    []string
	Sysfs       string
	IdleWatts   float64
	MaxWatts    float64
	OutDir      string
	JSONPath    string
	MetricsPath string
	NoPlot      bool
}

func (c *cliConfig) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.EnvFile, "env-file", ".env", "Path to a .env file (ENV_PATH overrides)")
	fs.StringVar(&c.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL or info)")
	fs.StringVar(&c.PlanPath, "plan", "", "Path to a benchmark plan YAML")
	fs.StringVar(&c.Sizes, "sizes", "", "Input sizes, comma-separated; prompts when empty")
	fs.StringSliceVar(&c.Algorithms, "algorithms", nil, "Algorithms to run (default all: MergeSort,QuickSort)")
	fs.IntVar(&c.Runs, "runs", runner.DefaultRuns, "Measured repetitions per algorithm and size")
	fs.IntVar(&c.Warmup, "warmup", runner.DefaultWarmupRuns, "Unmeasured warmup runs before measuring")
	fs.Uint64Var(&c.Seed, "seed", runner.DefaultSeed, "Seed for the random datasets")
	fs.StringSliceVar(&c.Backends, "backends", nil, "Energy backends in priority order: rapl, hwmon, model-based")
	fs.StringVar(&c.Sysfs, "sysfs", "", "sysfs mount point for energy counters (default from ENERGYBENCH_SYSFS or /sys)")
	fs.Float64Var(&c.IdleWatts, "idle-watts", energy.DefaultIdleWatts, "Power model idle draw in watts")
	fs.Float64Var(&c.MaxWatts, "max-watts", energy.DefaultMaxWatts, "Power model full-load draw in watts")
	fs.StringVar(&c.OutDir, "out-dir", "", "Directory for rendered charts (default .)")
	fs.StringVar(&c.JSONPath, "json", "", "Write the report as JSON to this path")
	fs.StringVar(&c.MetricsPath, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	fs.BoolVar(&c.NoPlot, "no-plot", false, "Skip chart rendering")
}

// resolvePlan layers explicitly set flags over the plan file (or defaults),
// and the environment under both.
func (c *cliConfig) resolvePlan(fs *pflag.FlagSet) (*spec.Plan, error) {
	plan := spec.Default()
	if c.PlanPath != "" {
		loaded, err := spec.LoadFromFile(c.PlanPath)
		if err != nil {
			return nil, err
		}
		plan = loaded
	}

	if fs.Changed("sizes") {
		sizes, err := prompt.ParseSizes(c.Sizes)
		if err != nil {
			return nil, err
		}
		plan.Sizes = sizes
	}
	if fs.Changed("algorithms") {
		plan.Algorithms = c.Algorithms
	}
	if fs.Changed("runs") {
		plan.Runs.Iterations = c.Runs
	}
	if fs.Changed("warmup") {
		plan.Runs.Warmup = c.Warmup
	}
	if fs.Changed("seed") {
		plan.Runs.Seed = c.Seed
	}
	if fs.Changed("backends") {
		plan.Energy.Backends = c.Backends
	}
	if fs.Changed("idle-watts") {
		plan.Energy.PowerModel.IdleWatts = c.IdleWatts
	}
	if fs.Changed("max-watts") {
		plan.Energy.PowerModel.MaxWatts = c.MaxWatts
	}
	if fs.Changed("out-dir") {
		plan.Output.Dir = c.OutDir
	}
	if fs.Changed("json") {
		plan.Output.JSON = c.JSONPath
	}
	if fs.Changed("metrics-file") {
		plan.Output.Metrics = c.MetricsPath
	}
	if fs.Changed("no-plot") {
		plan.Output.NoPlot = c.NoPlot
	}

	switch {
	case fs.Changed("sysfs"):
		plan.Energy.Sysfs = c.Sysfs
	case c.PlanPath == "":
		plan.Energy.Sysfs = env.String("ENERGYBENCH_SYSFS", plan.Energy.Sysfs)
	}

	if err := plan.Energy.PowerModel.Validate(); err != nil {
		return nil, fmt.Errorf("power model: %w", err)
	}
	return plan, nil
}

func setupLogging(flagLevel string) error {
	raw := flagLevel
	if raw == "" {
		raw = env.String("LOG_LEVEL", "info")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", raw, err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
