// Package sample holds the reductions every analytics component shares:
// stripping holes from a sample, sums and means that are safe on empty
// input, and an order-preserving group-by.
//
// A hole in a numeric sample is NaN or an infinity. A hole in a categorical
// sample is the empty string. Nothing here mutates its input.
package sample

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// IsHole reports whether v carries no usable value
func IsHole(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// Clean returns a copy of values with every hole removed, preserving order
func Clean(values []float64) []float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !IsHole(v) {
			clean = append(clean, v)
		}
	}
	return clean
}

// CleanPairs pairs x and y positionally and drops any pair with a hole.
// Callers are expected to check lengths first; extra elements of the
// longer slice are ignored.
func CleanPairs(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if IsHole(x[i]) || IsHole(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// CleanStrings returns a copy of values without empty strings
func CleanStrings(values []string) []string {
	clean := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			clean = append(clean, v)
		}
	}
	return clean
}

// Sum adds values; an empty slice sums to 0
func Sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values)
}

// Mean is the arithmetic mean, 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

// Ratio divides part by total, returning 0 instead of NaN or Inf
func Ratio(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	r := part / total
	if IsHole(r) {
		return 0
	}
	return r
}

// Percent is Ratio scaled to 0..100
func Percent(part, total float64) float64 {
	return Ratio(part, total) * 100
}

// Finite returns v, or 0 when v is a hole
func Finite(v float64) float64 {
	if IsHole(v) {
		return 0
	}
	return v
}

// Group is one key of a GroupBy result with its members in input order
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy partitions items by key in a single pass. Groups are returned in
// the order their key was first seen, and members keep their input order.
func GroupBy[K comparable, T any](items []T, key func(T) K) []Group[K, T] {
	index := make(map[K]int)
	groups := make([]Group[K, T], 0)

	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

// Hole is the canonical missing numeric value
var Hole = math.NaN()
