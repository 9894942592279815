package energy

import "time"

// Method names the backend that produced a Measurement.
type Method string

const (
	MethodRAPL  Method = "rapl"
	MethodHwmon Method = "hwmon"
	MethodModel Method = "model-based"
)

func (m Method) String() string { return string(m) }

// Measurement is the outcome of measuring one call.
type Measurement struct {
	Elapsed time.Duration `json:"elapsed"`
	Energy  float64       `json:"energy_joules"`
	Method  Method        `json:"method"`
}

func (m Measurement) Seconds() float64 {
	return m.Elapsed.Seconds()
}

const microjoulesPerJoule = 1e6

func microjoulesToJoules(uj uint64) float64 {
	return float64(uj) / microjoulesPerJoule
}

// counterDelta returns end-start for a counter that wraps back to zero after maxRange.
// A zero maxRange means the range is unknown and a backwards step counts as no energy.
func counterDelta(start, end, maxRange uint64) uint64 {
	if end >= start {
		return end - start
	}
	if maxRange == 0 || start > maxRange {
		return 0
	}
	return maxRange - start + end
}
