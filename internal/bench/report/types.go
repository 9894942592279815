package report

import (
	"runtime"
	"time"

	"github.com/google/uuid"
)

type Report struct {
	Meta   BenchMeta    `json:"meta"`
	Config ReportConfig `json:"config"`
	Series []Series     `json:"series"`
}

type BenchMeta struct {
	RunID       uuid.UUID       `json:"run_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Methods     []string        `json:"methods"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

type ReportConfig struct {
	Sizes  []int  `json:"sizes"`
	Runs   int    `json:"runs"`
	Warmup int    `json:"warmup"`
	Seed   uint64 `json:"seed"`
}

// Series is one algorithm's results, points in the order sizes were given.
type Series struct {
	Algorithm string  `json:"algorithm"`
	Points    []Point `json:"points"`
}

type Point struct {
	Size         int     `json:"size"`
	AvgTime      float64 `json:"avg_time_seconds"`
	AvgEnergy    float64 `json:"avg_energy_joules"`
	TimeStddev   float64 `json:"time_stddev_seconds"`
	EnergyStddev float64 `json:"energy_stddev_joules"`
	Method       string  `json:"method"`
}

// Sizes returns the x values of the series.
func (s Series) Sizes() []int {
	sizes := make([]int, len(s.Points))
	for i, p := range s.Points {
		sizes[i] = p.Size
	}
	return sizes
}
