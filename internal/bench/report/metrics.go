package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "sortbench"

// Metrics holds the gauges exported for a finished run.
type Metrics struct {
	Registry  *prometheus.Registry
	AvgTime   *prometheus.GaugeVec
	AvgEnergy *prometheus.GaugeVec
	Runs      prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}
	labels := []string{"algorithm", "size", "method"}

	m.AvgTime = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "avg_seconds",
			Help:      "Mean wall time of one sort across repetitions",
		},
		labels,
	)
	m.AvgEnergy = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "avg_joules",
			Help:      "Mean energy of one sort across repetitions",
		},
		labels,
	)
	m.Runs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "repetitions",
			Help:      "Measured repetitions per case",
		},
	)

	m.Registry.MustRegister(m.AvgTime, m.AvgEnergy, m.Runs)
	return m
}

func (m *Metrics) Observe(r *Report) {
	m.Runs.Set(float64(r.Config.Runs))
	for _, s := range r.Series {
		for _, p := range s.Points {
			size := strconv.Itoa(p.Size)
			m.AvgTime.WithLabelValues(s.Algorithm, size, p.Method).Set(p.AvgTime)
			m.AvgEnergy.WithLabelValues(s.Algorithm, size, p.Method).Set(p.AvgEnergy)
		}
	}
}

// WriteMetrics writes the report in Prometheus text format, suitable for the
// node_exporter textfile collector.
func WriteMetrics(r *Report, path string) error {
	m := NewMetrics()
	m.Observe(r)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
