package analytics

import (
	"playpulse/domain/stats"
	"playpulse/internal/sample"
)

// AnalyzeRatingDistribution buckets ratings into the fixed RatingBuckets.
// A rating of 0 means unrated and is dropped along with holes. Ratings
// outside [1, 5] fall in no bucket but still count in Total and Stats.
func AnalyzeRatingDistribution(ratings []float64) (result stats.RatingDistribution) {
	defer guard("AnalyzeRatingDistribution", &result, emptyRatingDistribution)

	result = emptyRatingDistribution()
	rated := make([]float64, 0, len(ratings))

	for _, r := range sample.Clean(ratings) {
		if r <= 0 {
			continue
		}
		rated = append(rated, r)
		for _, b := range stats.RatingBuckets {
			if b.Contains(r) {
				result.Distribution[b.Label]++
				break
			}
		}
	}

	result.Total = len(rated)
	result.Stats = Summarize(rated)
	return result
}

func emptyRatingDistribution() stats.RatingDistribution {
	distribution := make(map[string]int, len(stats.RatingBuckets))
	for _, b := range stats.RatingBuckets {
		distribution[b.Label] = 0
	}
	return stats.RatingDistribution{Distribution: distribution}
}
