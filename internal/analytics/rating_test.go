package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeRatingDistribution(t *testing.T) {
	result := AnalyzeRatingDistribution([]float64{1.2, 3.5, 4.6, 0, math.NaN(), 5.0})

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, map[string]int{
		"1.0-1.9": 1,
		"2.0-2.9": 0,
		"3.0-3.9": 1,
		"4.0-4.4": 0,
		"4.5-5.0": 2,
	}, result.Distribution)
	assert.Equal(t, 4, result.Stats.Count)
	assert.Equal(t, 1.2, result.Stats.Min)
}

func TestAnalyzeRatingDistributionBoundaries(t *testing.T) {
	result := AnalyzeRatingDistribution([]float64{1.0, 2.0, 3.0, 4.0, 4.4999, 4.5, 5.0})

	assert.Equal(t, 1, result.Distribution["1.0-1.9"])
	assert.Equal(t, 1, result.Distribution["2.0-2.9"])
	assert.Equal(t, 1, result.Distribution["3.0-3.9"])
	assert.Equal(t, 2, result.Distribution["4.0-4.4"])
	assert.Equal(t, 2, result.Distribution["4.5-5.0"])
	assert.Equal(t, 7, result.Total)
}

func TestAnalyzeRatingDistributionOutOfRangeCountsButIsNotBucketed(t *testing.T) {
	result := AnalyzeRatingDistribution([]float64{0.5, 5.5, 19, -1, 4.2})

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 1, result.Distribution["4.0-4.4"])
	bucketed := 0
	for _, n := range result.Distribution {
		bucketed += n
	}
	assert.Equal(t, 1, bucketed)
	assert.Equal(t, 4, result.Stats.Count)
	assert.InDelta(t, 7.3, result.Stats.Mean, 1e-9)
}

func TestAnalyzeRatingDistributionBelowOneStillCounted(t *testing.T) {
	result := AnalyzeRatingDistribution([]float64{0.5, 4.2})

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Stats.Count)
	assert.Equal(t, 0.5, result.Stats.Min)
	assert.Equal(t, 1, result.Distribution["4.0-4.4"])
}

func TestAnalyzeRatingDistributionEmpty(t *testing.T) {
	result := AnalyzeRatingDistribution(nil)

	assert.Equal(t, 0, result.Total)
	assert.Len(t, result.Distribution, 5)
	assert.Equal(t, 0, result.Stats.Count)
	assert.Nil(t, result.Stats.Mode)
}
