package runner

import (
	"math"
	"sort"
)

// Stats summarises the samples of one quantity (seconds or joules) across repetitions.
type Stats struct {
	Min         float64   `json:"min"`
	Max         float64   `json:"max"`
	Mean        float64   `json:"mean"`
	Median      float64   `json:"median"`
	Stddev      float64   `json:"stddev"`
	SampleCount int       `json:"sample_count"`
	Raw         []float64 `json:"-"`
}

func ComputeStats(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	stats := Stats{
		Min:         sorted[0],
		Max:         sorted[len(sorted)-1],
		Median:      percentile(sorted, 50),
		SampleCount: len(samples),
		Raw:         samples,
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	stats.Mean = sum / float64(len(samples))

	if len(sorted) > 1 {
		var sumSquares float64
		for _, v := range sorted {
			diff := v - stats.Mean
			sumSquares += diff * diff
		}
		stats.Stddev = math.Sqrt(sumSquares / float64(len(sorted)-1))
	}

	return stats
}

func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := float64(p) / 100.0 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s Stats) IsZero() bool {
	return s.SampleCount == 0
}
