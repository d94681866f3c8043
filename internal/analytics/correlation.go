package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"playpulse/internal/sample"
)

// Correlate returns the Pearson correlation of x and y in [-1, 1].
//
// Inputs of different length, empty inputs, fewer than two complete pairs and
// a zero-variance series all yield 0. Pairs with a hole on either side are
// skipped.
func Correlate(x, y []float64) (r float64) {
	defer guard("Correlate", &r, func() float64 { return 0 })

	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	xs, ys := sample.CleanPairs(x, y)
	if len(xs) < 2 {
		return 0
	}

	meanX := stat.Mean(xs, nil)
	meanY := stat.Mean(ys, nil)

	var numerator, sumXX, sumYY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		numerator += dx * dy
		sumXX += dx * dx
		sumYY += dy * dy
	}

	denominator := math.Sqrt(sumXX * sumYY)
	if denominator == 0 {
		return 0
	}

	r = numerator / denominator
	if sample.IsHole(r) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}
