package analytics

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"

	"playpulse/domain/stats"
	"playpulse/internal/sample"
)

// Summarize computes the descriptive statistics of a numeric sample.
// Holes are dropped first; an empty sample yields the zero BasicStats.
func Summarize(values []float64) (result stats.BasicStats) {
	defer guard("Summarize", &result, func() stats.BasicStats { return stats.BasicStats{} })

	sorted := sample.Clean(values)
	if len(sorted) == 0 {
		return stats.BasicStats{}
	}
	sort.Float64s(sorted)
	n := len(sorted)

	mean, err := mstats.Mean(sorted)
	if err != nil {
		return stats.BasicStats{}
	}
	median, err := mstats.Median(sorted)
	if err != nil {
		return stats.BasicStats{}
	}
	variance, err := mstats.PopulationVariance(sorted)
	if err != nil {
		return stats.BasicStats{}
	}

	// nearest rank, no interpolation
	q1 := sorted[n/4]
	q3 := sorted[(3*n)/4]

	return stats.BasicStats{
		Count:    n,
		Mean:     sample.Finite(mean),
		Median:   median,
		Mode:     mode(sorted),
		Min:      sorted[0],
		Max:      sorted[n-1],
		Std:      sample.Finite(math.Sqrt(variance)),
		Variance: sample.Finite(variance),
		Q1:       q1,
		Q3:       q3,
		IQR:      q3 - q1,
	}
}

// mode returns the smallest value with the highest frequency, or nil when
// every value occurs exactly once. sorted must be ascending.
func mode(sorted []float64) *float64 {
	if len(sorted) == 0 {
		return nil
	}

	best, bestCount := sorted[0], 0
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if j-i > bestCount {
			best, bestCount = sorted[i], j-i
		}
		i = j
	}

	if bestCount <= 1 {
		return nil
	}
	return &best
}
