package analytics

import (
	"playpulse/domain/apps"
	"playpulse/domain/stats"
	"playpulse/internal/sample"
)

// CalculateMarketShare extends the category breakdown with each category's
// percentage of all apps and of all installs. A zero total forces the
// matching share to 0.
func CalculateMarketShare(records []apps.AppRecord) (result stats.MarketShareReport) {
	defer guard("CalculateMarketShare", &result, func() stats.MarketShareReport {
		return stats.MarketShareReport{CategoryBreakdown: []stats.MarketShare{}}
	})

	var totalInstalls int64
	for _, app := range records {
		totalInstalls += app.InstallsNumber
	}
	totalApps := len(records)

	categories := AnalyzeCategoryPerformance(records)
	breakdown := make([]stats.MarketShare, 0, len(categories))
	for _, c := range categories {
		breakdown = append(breakdown, stats.MarketShare{
			CategoryPerformance: c,
			AppMarketShare:      sample.Percent(float64(c.AppCount), float64(totalApps)),
			InstallMarketShare:  sample.Percent(float64(c.TotalInstalls), float64(totalInstalls)),
		})
	}

	return stats.MarketShareReport{
		TotalApps:         totalApps,
		TotalInstalls:     totalInstalls,
		CategoryBreakdown: breakdown,
	}
}
