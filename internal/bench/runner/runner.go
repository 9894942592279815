package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/sort-energy-bench/internal/apperr"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/energy"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/sorting"
)

// Measurer runs a function once and reports its time and energy.
type Measurer interface {
	Measure(ctx context.Context, fn func()) (energy.Measurement, error)
}

// ProgressFunc is called after every finished case.
type ProgressFunc func(CaseResult)

type Runner struct {
	config   Config
	meter    Measurer
	progress ProgressFunc
}

func New(cfg Config, meter Measurer) *Runner {
	return &Runner{config: cfg, meter: meter}
}

func (r *Runner) WithProgress(fn ProgressFunc) *Runner {
	r.progress = fn
	return r
}

// sink keeps sort results reachable so the measured call is never elided.
var sink []int

// Run measures alg on independent copies of data and averages the repetitions.
func (r *Runner) Run(ctx context.Context, alg sorting.Algorithm, data []int) (Result, error) {
	if err := r.config.Validate(); err != nil {
		return Result{}, err
	}
	if alg.Sort == nil {
		return Result{}, apperr.NewValidationf("algorithm %q has no sort function", alg.Name)
	}

	for i := 0; i < r.config.WarmupRuns; i++ {
		sink = alg.Sort(dataset.Clone(data))
	}

	times := make([]float64, 0, r.config.Runs)
	energies := make([]float64, 0, r.config.Runs)
	var method energy.Method

	for i := 0; i < r.config.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		input := dataset.Clone(data)
		m, err := r.meter.Measure(ctx, func() {
			sink = alg.Sort(input)
		})
		if err != nil {
			return Result{}, fmt.Errorf("measure repetition %d: %w", i+1, err)
		}

		if method != "" && m.Method != method {
			slog.Warn("Energy method changed between repetitions",
				"algorithm", alg.Name,
				"previous", method,
				"current", m.Method,
			)
		}
		method = m.Method
		times = append(times, m.Seconds())
		energies = append(energies, m.Energy)
	}

	timeStats := ComputeStats(times)
	energyStats := ComputeStats(energies)

	return Result{
		AvgTime:   timeStats.Mean,
		AvgEnergy: energyStats.Mean,
		Method:    method,
		Time:      timeStats,
		Energy:    energyStats,
	}, nil
}

// RunAll benchmarks every algorithm on a fresh random dataset per size.
// The first failing case aborts the whole run.
func (r *Runner) RunAll(ctx context.Context, sizes []int, algorithms []sorting.Algorithm) (*BenchmarkRun, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}
	if len(sizes) == 0 {
		return nil, apperr.NewValidation("no input sizes given")
	}
	if len(algorithms) == 0 {
		return nil, apperr.NewValidation("no algorithms selected")
	}
	for _, n := range sizes {
		if n < 0 {
			return nil, apperr.NewValidationf("input size must not be negative, got %d", n)
		}
	}

	br := &BenchmarkRun{
		Sizes:  sizes,
		Config: r.config,
	}
	for _, a := range algorithms {
		br.Algorithms = append(br.Algorithms, a.Name)
	}

	gen := dataset.NewGenerator(r.config.Seed)
	seenMethods := make(map[energy.Method]bool)

	for _, n := range sizes {
		data := gen.Random(n)
		slog.Debug("Benchmarking input size", "size", n, "runs", r.config.Runs)

		for _, alg := range algorithms {
			res, err := r.Run(ctx, alg, data)
			if err != nil {
				return nil, fmt.Errorf("run %s on n=%d: %w", alg.Name, n, err)
			}

			cr := CaseResult{Size: n, Algorithm: alg.Name, Result: res}
			br.Cases = append(br.Cases, cr)
			if !seenMethods[res.Method] {
				seenMethods[res.Method] = true
				br.Methods = append(br.Methods, res.Method.String())
			}

			if r.progress != nil {
				r.progress(cr)
			}
		}
	}

	return br, nil
}
