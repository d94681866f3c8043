package analytics

import (
	"sort"

	"playpulse/domain/apps"
	"playpulse/domain/stats"
	"playpulse/internal/sample"
)

// AnalyzeCategoryPerformance groups apps by their exact category string and
// aggregates each group. Results are ordered by AppCount descending; equal
// counts keep the order in which the categories first appear in records.
func AnalyzeCategoryPerformance(records []apps.AppRecord) (result []stats.CategoryPerformance) {
	defer guard("AnalyzeCategoryPerformance", &result, func() []stats.CategoryPerformance { return []stats.CategoryPerformance{} })

	groups := sample.GroupBy(records, func(a apps.AppRecord) string { return a.Category })

	result = make([]stats.CategoryPerformance, 0, len(groups))
	for _, g := range groups {
		result = append(result, summarizeCategory(g.Key, g.Items))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AppCount > result[j].AppCount
	})
	return result
}

func summarizeCategory(category string, members []apps.AppRecord) stats.CategoryPerformance {
	ratings := make([]float64, 0, len(members))
	var totalInstalls, totalReviews int64
	var paid, popular int

	for _, app := range members {
		if app.HasRating() {
			ratings = append(ratings, *app.Rating)
		}
		totalInstalls += app.InstallsNumber
		totalReviews += app.Reviews
		if app.IsPaid {
			paid++
		}
		if app.IsPopular {
			popular++
		}
	}

	ratingStats := Summarize(ratings)
	n := float64(len(members))

	return stats.CategoryPerformance{
		Category:         category,
		AppCount:         len(members),
		AvgRating:        ratingStats.Mean,
		MedianRating:     ratingStats.Median,
		TotalInstalls:    totalInstalls,
		AvgInstalls:      sample.Ratio(float64(totalInstalls), n),
		TotalReviews:     totalReviews,
		AvgReviews:       sample.Ratio(float64(totalReviews), n),
		PaidAppsCount:    paid,
		PopularAppsCount: popular,
		RatingStats:      ratingStats,
	}
}
