package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playpulse/domain/apps"
	"playpulse/domain/stats"
)

var day0 = time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)

func dailySeries(values ...float64) []stats.TrendPoint {
	points := make([]stats.TrendPoint, len(values))
	for i, v := range values {
		points[i] = stats.TrendPoint{Date: day0.AddDate(0, 0, i), Value: v}
	}
	return points
}

func TestAnalyzeTrendLinearIncrease(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = float64(i) * 2
	}

	result := AnalyzeTrend(dailySeries(values...))

	assert.Equal(t, stats.TrendIncreasing, result.Trend)
	assert.InDelta(t, 2.0, result.Slope, 1e-9)
	assert.InDelta(t, 0.0, result.Intercept, 1e-9)
	assert.InDelta(t, 1.0, result.Correlation, 1e-9)
	assert.InDelta(t, 1.0, result.RSquared, 1e-9)
	assert.Equal(t, 10, result.DataPoints)
}

func TestAnalyzeTrendSortsByDate(t *testing.T) {
	points := dailySeries(10, 8, 6, 4)
	points[0], points[3] = points[3], points[0]

	result := AnalyzeTrend(points)

	assert.Equal(t, stats.TrendDecreasing, result.Trend)
	assert.InDelta(t, -2.0, result.Slope, 1e-9)
	assert.InDelta(t, -1.0, result.Correlation, 1e-9)
}

func TestAnalyzeTrendStable(t *testing.T) {
	result := AnalyzeTrend(dailySeries(4.1, 4.15, 4.1, 4.12, 4.14))

	assert.Equal(t, stats.TrendStable, result.Trend)
	assert.Less(t, math.Abs(result.Slope), 0.1)
}

func TestAnalyzeTrendFlatSeries(t *testing.T) {
	result := AnalyzeTrend(dailySeries(3, 3, 3))

	assert.Equal(t, stats.TrendStable, result.Trend)
	assert.Equal(t, 0.0, result.Slope)
	assert.Equal(t, 0.0, result.Correlation)
	assert.False(t, math.IsNaN(result.RSquared))
}

func TestAnalyzeTrendInsufficientData(t *testing.T) {
	cases := []struct {
		name   string
		points []stats.TrendPoint
		valid  int
	}{
		{"empty", nil, 0},
		{"single point", dailySeries(1), 1},
		{"holes removed", []stats.TrendPoint{
			{Date: day0, Value: 1},
			{Date: day0.AddDate(0, 0, 1), Value: math.NaN()},
			{Value: 3},
		}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := AnalyzeTrend(tc.points)
			assert.Equal(t, stats.TrendInsufficientData, result.Trend)
			assert.Equal(t, 0.0, result.Slope)
			assert.Equal(t, 0.0, result.Correlation)
			assert.Equal(t, tc.valid, result.DataPoints)
		})
	}
}

func TestMonthlyRatingSeries(t *testing.T) {
	records := []apps.AppRecord{
		{Rating: apps.Float(4.0), LastUpdated: time.Date(2018, time.March, 10, 0, 0, 0, 0, time.UTC)},
		{Rating: apps.Float(3.0), LastUpdated: time.Date(2018, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{Rating: apps.Float(5.0), LastUpdated: time.Date(2018, time.January, 28, 0, 0, 0, 0, time.UTC)},
		{Rating: nil, LastUpdated: time.Date(2018, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{Rating: apps.Float(4.4)},
	}

	series := MonthlyRatingSeries(records)

	require.Len(t, series, 2)
	assert.Equal(t, time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC), series[0].Date)
	assert.Equal(t, 4.0, series[0].Value)
	assert.Equal(t, time.Date(2018, time.March, 1, 0, 0, 0, 0, time.UTC), series[1].Date)
	assert.Equal(t, 4.0, series[1].Value)
}
