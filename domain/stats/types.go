package stats

import (
	"time"

	"playpulse/domain/apps"
)

// ============================================================================
// DESCRIPTIVE PRIMITIVES
// ============================================================================

// BasicStats summarizes one numeric sample.
// INVARIANTS:
// - Q1 <= Median <= Q3 whenever Count > 0
// - Std == sqrt(Variance) >= 0
// - every field is zero (Mode nil) for an empty sample, never NaN
type BasicStats struct {
	Count    int      `json:"count"`
	Mean     float64  `json:"mean"`
	Median   float64  `json:"median"`
	Mode     *float64 `json:"mode"` // nil when every value is distinct
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Std      float64  `json:"std"`      // population standard deviation
	Variance float64  `json:"variance"` // population variance (divide by n)
	Q1       float64  `json:"q1"`       // nearest rank, sorted[floor(n*0.25)]
	Q3       float64  `json:"q3"`       // nearest rank, sorted[floor(n*0.75)]
	IQR      float64  `json:"iqr"`
}

// FrequencyEntry is one ranked value of a categorical sample
type FrequencyEntry struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // of the cleaned total
}

// OutlierResult reports the values outside the Tukey fence
type OutlierResult struct {
	Outliers          []float64 `json:"outliers"` // clean input order
	LowerBound        float64   `json:"lowerBound"`
	UpperBound        float64   `json:"upperBound"`
	OutlierCount      int       `json:"outlierCount"`
	OutlierPercentage float64   `json:"outlierPercentage"`
}

// RatingDistribution is the bucketed histogram of rated apps
type RatingDistribution struct {
	Total        int            `json:"total"`
	Distribution map[string]int `json:"distribution"` // keyed by RatingBucket.Label
	Stats        BasicStats     `json:"stats"`
}

// RatingBucket is one histogram bin. Bins are half-open except the top one.
type RatingBucket struct {
	Label string
	Lower float64
	Upper float64
	Close bool // upper bound inclusive
}

// Contains reports whether r falls in the bucket
func (b RatingBucket) Contains(r float64) bool {
	if r < b.Lower {
		return false
	}
	if b.Close {
		return r <= b.Upper
	}
	return r < b.Upper
}

// RatingBuckets is the fixed, ordered bucket layout
var RatingBuckets = []RatingBucket{
	{Label: "1.0-1.9", Lower: 1.0, Upper: 2.0},
	{Label: "2.0-2.9", Lower: 2.0, Upper: 3.0},
	{Label: "3.0-3.9", Lower: 3.0, Upper: 4.0},
	{Label: "4.0-4.4", Lower: 4.0, Upper: 4.5},
	{Label: "4.5-5.0", Lower: 4.5, Upper: 5.0, Close: true},
}

// ============================================================================
// CATEGORY AGGREGATES
// ============================================================================

// CategoryPerformance aggregates every app of one category
type CategoryPerformance struct {
	Category         string     `json:"category"`
	AppCount         int        `json:"appCount"`
	AvgRating        float64    `json:"avgRating"`
	MedianRating     float64    `json:"medianRating"`
	TotalInstalls    int64      `json:"totalInstalls"`
	AvgInstalls      float64    `json:"avgInstalls"`
	TotalReviews     int64      `json:"totalReviews"`
	AvgReviews       float64    `json:"avgReviews"`
	PaidAppsCount    int        `json:"paidAppsCount"`
	PopularAppsCount int        `json:"popularAppsCount"`
	RatingStats      BasicStats `json:"ratingStats"`
}

// MarketShare extends CategoryPerformance with its share of the whole dataset
type MarketShare struct {
	CategoryPerformance
	AppMarketShare     float64 `json:"appMarketShare"`     // percent of all apps
	InstallMarketShare float64 `json:"installMarketShare"` // percent of all installs
}

// MarketShareReport is the dataset-wide market share breakdown
type MarketShareReport struct {
	TotalApps         int           `json:"totalApps"`
	TotalInstalls     int64         `json:"totalInstalls"`
	CategoryBreakdown []MarketShare `json:"categoryBreakdown"`
}

// ============================================================================
// TRENDS
// ============================================================================

// TrendDirection classifies the fitted slope
type TrendDirection string

const (
	TrendInsufficientData TrendDirection = "insufficient_data"
	TrendIncreasing       TrendDirection = "increasing"
	TrendDecreasing       TrendDirection = "decreasing"
	TrendStable           TrendDirection = "stable"
)

// TrendPoint is one observation of a time series. A zero Date is treated as missing.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TrendResult is a least-squares line over the positional index of the sorted series
type TrendResult struct {
	Trend       TrendDirection `json:"trend"`
	Slope       float64        `json:"slope"`
	Intercept   float64        `json:"intercept"`
	Correlation float64        `json:"correlation"`
	RSquared    float64        `json:"rSquared"`
	DataPoints  int            `json:"dataPoints"`
}

// ============================================================================
// DATASET-WIDE SUMMARIES
// ============================================================================

// SentimentCounts tallies review labels
type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// SentimentPercentages are SentimentCounts relative to labelled reviews
type SentimentPercentages struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// AppSentiment is the per-app view of review sentiment
type AppSentiment struct {
	App               string         `json:"app"`
	ReviewCount       int            `json:"reviewCount"`
	PositiveShare     float64        `json:"positiveShare"` // percent of labelled reviews
	NegativeShare     float64        `json:"negativeShare"`
	AvgPolarity       float64        `json:"avgPolarity"`
	AvgSubjectivity   float64        `json:"avgSubjectivity"`
	DominantSentiment apps.Sentiment `json:"dominantSentiment"`
}

// SentimentSummary aggregates all reviews
type SentimentSummary struct {
	TotalReviews         int                  `json:"totalReviews"`
	LabelledReviews      int                  `json:"labelledReviews"`
	SentimentCounts      SentimentCounts      `json:"sentimentCounts"`
	SentimentPercentages SentimentPercentages `json:"sentimentPercentages"`
	PolarityStats        BasicStats           `json:"polarityStats"`
	SubjectivityStats    BasicStats           `json:"subjectivityStats"`
	TopReviewedApps      []AppSentiment       `json:"topReviewedApps"`
}

// Correlations is the fixed set of pairwise app-field correlations
type Correlations struct {
	RatingVsReviews   float64 `json:"ratingVsReviews"`
	RatingVsInstalls  float64 `json:"ratingVsInstalls"`
	ReviewsVsInstalls float64 `json:"reviewsVsInstalls"`
	SizeVsInstalls    float64 `json:"sizeVsInstalls"`
	PriceVsRating     float64 `json:"priceVsRating"`
	PriceVsInstalls   float64 `json:"priceVsInstalls"`
}

// Overview is the headline block of the dashboard
type Overview struct {
	TotalApps       int     `json:"totalApps"`
	TotalCategories int     `json:"totalCategories"`
	RatedApps       int     `json:"ratedApps"`
	AvgRating       float64 `json:"avgRating"`
	TotalInstalls   int64   `json:"totalInstalls"`
	TotalReviews    int64   `json:"totalReviews"`
	PaidApps        int     `json:"paidApps"`
	FreeApps        int     `json:"freeApps"`
	PopularApps     int     `json:"popularApps"`
	AvgPrice        float64 `json:"avgPrice"` // over paid apps only
}

// Dashboard bundles every section computed for one dataset
type Dashboard struct {
	Overview            Overview              `json:"overview"`
	TopCategories       []FrequencyEntry      `json:"topCategories"`
	CategoryPerformance []CategoryPerformance `json:"categoryPerformance"`
	MarketShare         MarketShareReport     `json:"marketShare"`
	RatingDistribution  RatingDistribution    `json:"ratingDistribution"`
	RatingOutliers      OutlierResult         `json:"ratingOutliers"`
	InstallOutliers     OutlierResult         `json:"installOutliers"`
	Correlations        Correlations          `json:"correlations"`
	Sentiment           SentimentSummary      `json:"sentiment"`
	TopRatedApps        []apps.AppRecord      `json:"topRatedApps"`
	RatingTrend         TrendResult           `json:"ratingTrend"`
	RatingTrendSeries   []TrendPoint          `json:"ratingTrendSeries"`
}
