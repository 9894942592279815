package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/energy"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() *runner.BenchmarkRun {
	result := func(t, e float64) runner.Result {
		return runner.Result{AvgTime: t, AvgEnergy: e, Method: energy.MethodModel}
	}
	return &runner.BenchmarkRun{
		Sizes:      []int{1000, 2000},
		Algorithms: []string{"MergeSort", "QuickSort"},
		Methods:    []string{"model-based"},
		Config:     runner.Config{Runs: 5, Seed: 1},
		Cases: []runner.CaseResult{
			{Size: 1000, Algorithm: "MergeSort", Result: result(0.0012345678, 0.05)},
			{Size: 1000, Algorithm: "QuickSort", Result: result(0.001, 0.04)},
			{Size: 2000, Algorithm: "MergeSort", Result: result(0.0025, 0.11)},
			{Size: 2000, Algorithm: "QuickSort", Result: result(0.002, 0.09)},
		},
	}
}

func TestGenerate(t *testing.T) {
	r := Generate(sampleRun())

	require.Len(t, r.Series, 2)
	assert.Equal(t, "MergeSort", r.Series[0].Algorithm)
	assert.Equal(t, "QuickSort", r.Series[1].Algorithm)
	for _, s := range r.Series {
		assert.Equal(t, []int{1000, 2000}, s.Sizes())
	}
	assert.Equal(t, 0.11, r.Series[0].Points[1].AvgEnergy)
	assert.Equal(t, "model-based", r.Series[1].Points[0].Method)
	assert.Equal(t, 5, r.Config.Runs)
	assert.NotEmpty(t, r.Meta.RunID.String())

	assert.Equal(t, 2000, r.MaxSize())
	assert.InDelta(t, 0.0025, r.MaxTime(), 1e-12)
	assert.InDelta(t, 0.11, r.MaxEnergy(), 1e-12)
}

func TestConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := NewConsoleWriter(&buf)
	for _, c := range sampleRun().Cases {
		cw.WriteCase(c)
	}

	out := buf.String()
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Input Size: n = 1000")))
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Input Size: n = 2000")))
	assert.Contains(t, out, "MergeSort")
	assert.Contains(t, out, "Avg Time   : 0.001235 s")
	assert.Contains(t, out, "Avg Energy : 0.050000 J")
	assert.Contains(t, out, "Method     : model-based")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(Generate(sampleRun()), &buf)

	out := buf.String()
	assert.Contains(t, out, "runs=5")
	assert.Contains(t, out, "QuickSort")
	assert.Contains(t, out, "0.090000")
	assert.Contains(t, out, "5.500e-05")
}

func TestWriteJSON(t *testing.T) {
	r := Generate(sampleRun())
	path := filepath.Join(t.TempDir(), "nested", "report.json")

	require.NoError(t, WriteJSON(r, path))

	loaded, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, r.Meta.RunID, loaded.Meta.RunID)
	require.Len(t, loaded.Series, 2)
	assert.Equal(t, 0.001235, loaded.Series[0].Points[0].AvgTime, "values are rounded to 6 decimals")
	assert.Equal(t, 0.0012345678, r.Series[0].Points[0].AvgTime, "the in-memory report is untouched")
}

func TestMetrics(t *testing.T) {
	r := Generate(sampleRun())

	m := NewMetrics()
	m.Observe(r)
	assert.InDelta(t, 0.09, testutil.ToFloat64(m.AvgEnergy.WithLabelValues("QuickSort", "2000", "model-based")), 1e-12)
	assert.InDelta(t, 0.0025, testutil.ToFloat64(m.AvgTime.WithLabelValues("MergeSort", "2000", "model-based")), 1e-12)
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Runs))

	path := filepath.Join(t.TempDir(), "bench.prom")
	require.NoError(t, WriteMetrics(r, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `sortbench_avg_joules{algorithm="MergeSort",method="model-based",size="1000"} 0.05`)
	assert.Contains(t, string(data), "# TYPE sortbench_avg_seconds gauge")
}
