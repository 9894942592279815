package report

import (
	"time"

	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/runner"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

func Generate(br *runner.BenchmarkRun) *Report {
	r := &Report{
		Meta: BenchMeta{
			RunID:       uuid.New(),
			Timestamp:   time.Now().UTC(),
			Methods:     br.Methods,
			Environment: NewEnvironmentInfo(),
		},
		Config: ReportConfig{
			Sizes:  br.Sizes,
			Runs:   br.Config.Runs,
			Warmup: br.Config.WarmupRuns,
			Seed:   br.Config.Seed,
		},
	}

	for _, name := range br.Algorithms {
		points := lo.Map(br.ForAlgorithm(name), func(c runner.CaseResult, _ int) Point {
			return Point{
				Size:         c.Size,
				AvgTime:      c.Result.AvgTime,
				AvgEnergy:    c.Result.AvgEnergy,
				TimeStddev:   c.Result.Time.Stddev,
				EnergyStddev: c.Result.Energy.Stddev,
				Method:       c.Result.Method.String(),
			}
		})
		r.Series = append(r.Series, Series{Algorithm: name, Points: points})
	}

	return r
}

// MaxSize is the largest input size across all series.
func (r *Report) MaxSize() int {
	return lo.Max(lo.FlatMap(r.Series, func(s Series, _ int) []int { return s.Sizes() }))
}

// MaxTime is the largest average time across all series.
func (r *Report) MaxTime() float64 {
	return r.maxOf(func(p Point) float64 { return p.AvgTime })
}

// MaxEnergy is the largest average energy across all series.
func (r *Report) MaxEnergy() float64 {
	return r.maxOf(func(p Point) float64 { return p.AvgEnergy })
}

func (r *Report) maxOf(value func(Point) float64) float64 {
	points := lo.FlatMap(r.Series, func(s Series, _ int) []Point { return s.Points })
	return lo.Max(lo.Map(points, func(p Point, _ int) float64 { return value(p) }))
}
