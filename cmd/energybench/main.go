package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/chart"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/spec"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/energy"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/prompt"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/sorting"
	"github.com/DjordjeVuckovic/sort-energy-bench/pkg/config/env"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("Benchmark failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &cliConfig{}

	cmd := &cobra.Command{
		Use:   "energybench",
		Short: "Compare running time and energy of merge sort and quick sort",
		Long: `Benchmarks merge sort and quick sort on random integer inputs of the given sizes.
Energy is read from RAPL counters when available, then hwmon energy sensors, and
otherwise estimated from CPU utilization with a linear power model.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.LoadDotEnv(cfg.EnvFile); err != nil {
				slog.Warn("Failed to load .env, continuing with existing environment", "error", err)
			}
			return setupLogging(cfg.LogLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := cfg.resolvePlan(cmd.Flags())
			if err != nil {
				return err
			}
			return runBench(cmd.Context(), plan, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cfg.bindFlags(cmd.Flags())

	return cmd
}

func runBench(ctx context.Context, plan *spec.Plan, in io.Reader, out io.Writer) error {
	sizes := plan.Sizes
	if len(sizes) == 0 {
		asked, err := prompt.AskSizes(in, out)
		if err != nil {
			return err
		}
		sizes = asked
	}

	algorithms, err := sorting.Select(plan.Algorithms)
	if err != nil {
		return err
	}

	meterCfg, err := plan.MeterConfig()
	if err != nil {
		return err
	}
	meter, err := energy.NewMeterFromConfig(meterCfg)
	if err != nil {
		return err
	}
	slog.Info("Starting benchmark",
		"sizes", sizes,
		"runs", plan.Runs.Iterations,
		"backends", meter.Methods(),
	)

	console := report.NewConsoleWriter(out)
	r := runner.New(plan.RunnerConfig(), meter).WithProgress(console.WriteCase)

	result, err := r.RunAll(ctx, sizes, algorithms)
	if err != nil {
		return err
	}

	return outputReport(report.Generate(result), plan.Output, out)
}

func outputReport(rpt *report.Report, cfg spec.OutputConfig, out io.Writer) error {
	report.WriteTable(rpt, out)

	if cfg.JSON != "" {
		if err := report.WriteJSON(rpt, cfg.JSON); err != nil {
			return err
		}
		slog.Info("Report written", "path", cfg.JSON)
	}

	if cfg.Metrics != "" {
		if err := report.WriteMetrics(rpt, cfg.Metrics); err != nil {
			return err
		}
		slog.Info("Metrics written", "path", cfg.Metrics)
	}

	if cfg.NoPlot {
		return nil
	}
	paths, err := chart.WriteCharts(rpt, cfg.Dir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(out, "Chart: %s\n", displayPath(p))
	}
	return nil
}

// displayPath returns p as an absolute path, or unchanged when it cannot be resolved.
func displayPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		slog.Debug("Resolve chart path", "path", p, "error", err)
		return p
	}
	return abs
}
