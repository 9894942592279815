package runner

import "github.com/DjordjeVuckovic/sort-energy-bench/internal/energy"

// Result is the aggregate of all measured repetitions for one algorithm on one dataset.
type Result struct {
	AvgTime   float64       `json:"avg_time_seconds"`
	AvgEnergy float64       `json:"avg_energy_joules"`
	Method    energy.Method `json:"method"`
	Time      Stats         `json:"time"`
	Energy    Stats         `json:"energy"`
}

type CaseResult struct {
	Size      int    `json:"size"`
	Algorithm string `json:"algorithm"`
	Result    Result `json:"result"`
}

// BenchmarkRun holds every case in execution order: sizes as given, algorithms in
// selection order within each size.
type BenchmarkRun struct {
	Sizes      []int        `json:"sizes"`
	Algorithms []string     `json:"algorithms"`
	Cases      []CaseResult `json:"cases"`
	Config     Config       `json:"config"`
	Methods    []string     `json:"methods"`
}

// ForAlgorithm returns the cases of one algorithm in size order of the run.
func (br *BenchmarkRun) ForAlgorithm(name string) []CaseResult {
	var out []CaseResult
	for _, c := range br.Cases {
		if c.Algorithm == name {
			out = append(out, c)
		}
	}
	return out
}
