package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/report"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	EnergyChartFile = "energy.png"
	TimeChartFile   = "time.png"

	// axes extend this far past the largest value
	headroom = 1.05
)

var (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
)

type chartSpec struct {
	title  string
	yLabel string
	file   string
	value  func(report.Point) float64
	max    float64
}

// WriteCharts renders the energy and time comparisons into dir and returns the written paths.
func WriteCharts(r *report.Report, dir string) ([]string, error) {
	if len(r.Series) == 0 {
		return nil, fmt.Errorf("render charts: report has no series")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	specs := []chartSpec{
		{
			title:  "Energy Complexity Comparison",
			yLabel: "Energy (Joule)",
			file:   EnergyChartFile,
			value:  func(p report.Point) float64 { return p.AvgEnergy },
			max:    r.MaxEnergy(),
		},
		{
			title:  "Time Complexity Comparison",
			yLabel: "Time (seconds)",
			file:   TimeChartFile,
			value:  func(p report.Point) float64 { return p.AvgTime },
			max:    r.MaxTime(),
		},
	}

	paths := make([]string, 0, len(specs))
	for _, cs := range specs {
		path := filepath.Join(dir, cs.file)
		if err := writeChart(r, cs, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeChart(r *report.Report, cs chartSpec, path string) error {
	p := plot.New()
	p.Title.Text = cs.title
	p.X.Label.Text = "Input Size (n)"
	p.Y.Label.Text = cs.yLabel
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	var lines []interface{}
	for _, s := range r.Series {
		lines = append(lines, s.Algorithm, seriesXYs(s, cs.value))
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return fmt.Errorf("add %s series: %w", cs.file, err)
	}

	p.X.Min = 0
	p.X.Max = axisMax(float64(r.MaxSize()))
	p.Y.Min = 0
	p.Y.Max = axisMax(cs.max)

	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func seriesXYs(s report.Series, value func(report.Point) float64) plotter.XYs {
	xys := make(plotter.XYs, len(s.Points))
	for i, p := range s.Points {
		xys[i].X = float64(p.Size)
		xys[i].Y = value(p)
	}
	return xys
}

// axisMax keeps a zero-based axis non-degenerate when every value is zero.
func axisMax(peak float64) float64 {
	if peak <= 0 {
		return 1
	}
	return peak * headroom
}
