package analytics

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"playpulse/domain/apps"
	"playpulse/domain/stats"
	"playpulse/internal/sample"
)

// trendThreshold is the absolute slope, in value units per step, above which
// a series counts as moving
const trendThreshold = 0.1

// AnalyzeTrend fits an ordinary least-squares line to the series, using the
// position of each point after sorting by date as x. Points without a date or
// value are ignored; fewer than two remaining points is insufficient data.
func AnalyzeTrend(points []stats.TrendPoint) (result stats.TrendResult) {
	defer guard("AnalyzeTrend", &result, func() stats.TrendResult { return insufficientTrend(0) })

	valid := make([]stats.TrendPoint, 0, len(points))
	for _, p := range points {
		if p.Date.IsZero() || sample.IsHole(p.Value) {
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) < 2 {
		return insufficientTrend(len(valid))
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Date.Before(valid[j].Date)
	})

	xs := make([]float64, len(valid))
	ys := make([]float64, len(valid))
	for i, p := range valid {
		xs[i] = float64(i)
		ys[i] = p.Value
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	slope = sample.Finite(slope)
	intercept = sample.Finite(intercept)

	return stats.TrendResult{
		Trend:       classifySlope(slope),
		Slope:       slope,
		Intercept:   intercept,
		Correlation: Correlate(xs, ys),
		RSquared:    sample.Finite(stat.RSquared(xs, ys, nil, intercept, slope)),
		DataPoints:  len(valid),
	}
}

func classifySlope(slope float64) stats.TrendDirection {
	switch {
	case slope > trendThreshold:
		return stats.TrendIncreasing
	case slope < -trendThreshold:
		return stats.TrendDecreasing
	default:
		return stats.TrendStable
	}
}

func insufficientTrend(points int) stats.TrendResult {
	return stats.TrendResult{
		Trend:      stats.TrendInsufficientData,
		DataPoints: points,
	}
}

// MonthlyRatingSeries averages the ratings of apps last updated in each
// calendar month. Apps without a rating or update date are skipped. Points
// are dated the first of their month (UTC) and returned in date order.
func MonthlyRatingSeries(records []apps.AppRecord) (result []stats.TrendPoint) {
	defer guard("MonthlyRatingSeries", &result, func() []stats.TrendPoint { return []stats.TrendPoint{} })

	dated := make([]apps.AppRecord, 0, len(records))
	for _, app := range records {
		if app.HasRating() && !app.LastUpdated.IsZero() {
			dated = append(dated, app)
		}
	}

	groups := sample.GroupBy(dated, func(a apps.AppRecord) time.Time {
		y, m, _ := a.LastUpdated.UTC().Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	})

	result = make([]stats.TrendPoint, 0, len(groups))
	for _, g := range groups {
		ratings := make([]float64, len(g.Items))
		for i, app := range g.Items {
			ratings[i] = *app.Rating
		}
		result = append(result, stats.TrendPoint{Date: g.Key, Value: sample.Mean(ratings)})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}
