// Package report turns a computed dashboard into downloadable reports.
package report

import (
	"fmt"
	"strings"
	"time"

	"playpulse/domain/apps"
	"playpulse/domain/core"
	"playpulse/domain/stats"
	"playpulse/internal/analytics"
	"playpulse/internal/errors"
	"playpulse/internal/sample"
)

// Type selects which slice of the dashboard a report covers
type Type string

const (
	TypeOverview  Type = "overview"
	TypeCategory  Type = "category"
	TypeSentiment Type = "sentiment"
	TypeTrends    Type = "trends"
)

// Types lists every report type in display order
var Types = []Type{TypeOverview, TypeCategory, TypeSentiment, TypeTrends}

var titles = map[Type]string{
	TypeOverview:  "Google Play Store Overview Report",
	TypeCategory:  "Category Analysis Report",
	TypeSentiment: "Sentiment Analysis Report",
	TypeTrends:    "Trend Analysis Report",
}

// ParseType validates a report type name
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := titles[t]; !ok {
		return "", errors.InvalidInput(fmt.Sprintf("unknown report type %q", s))
	}
	return t, nil
}

// minRatedApps is how many rated apps a category needs to compete for best rated
const minRatedApps = 5

// Insight is one headline finding of an overview report
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Report is a rendered-format-independent report
type Report struct {
	ID          core.ID   `json:"id"`
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generatedAt"`
	GeneratedBy string    `json:"generatedBy"`
	DataRange   string    `json:"dataRange"`

	Summary         *stats.Overview             `json:"summary,omitempty"`
	Insights        []Insight                   `json:"insights,omitempty"`
	TopCategories   []stats.FrequencyEntry      `json:"topCategories,omitempty"`
	Categories      []stats.CategoryPerformance `json:"categories,omitempty"`
	MarketShare     *stats.MarketShareReport    `json:"marketShare,omitempty"`
	Sentiment       *stats.SentimentSummary     `json:"sentiment,omitempty"`
	Trend           *stats.TrendResult          `json:"trend,omitempty"`
	TrendSeries     []stats.TrendPoint          `json:"trendSeries,omitempty"`
	LeadingCategory string                      `json:"leadingCategory,omitempty"` // largest category by app count
}

// Generator builds reports from dashboards
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a generator using the wall clock
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Generate builds a report of type t over d
func (g *Generator) Generate(t Type, d *stats.Dashboard) (*Report, error) {
	if d == nil {
		return nil, errors.NoData("no dashboard to report on")
	}
	title, ok := titles[t]
	if !ok {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown report type %q", t))
	}

	r := &Report{
		ID:          core.NewID(),
		Type:        t,
		Title:       title,
		GeneratedAt: g.now().UTC(),
		GeneratedBy: "playpulse",
		DataRange:   fmt.Sprintf("%d apps analyzed", d.Overview.TotalApps),
	}

	switch t {
	case TypeOverview:
		overview := d.Overview
		r.Summary = &overview
		r.TopCategories = d.TopCategories
		r.Insights = Insights(d)
	case TypeCategory:
		r.Categories = d.CategoryPerformance
		share := d.MarketShare
		r.MarketShare = &share
		r.TopCategories = d.TopCategories
	case TypeSentiment:
		sentiment := d.Sentiment
		r.Sentiment = &sentiment
	case TypeTrends:
		trend := d.RatingTrend
		r.Trend = &trend
		r.TrendSeries = d.RatingTrendSeries
		if len(d.CategoryPerformance) > 0 {
			r.LeadingCategory = d.CategoryPerformance[0].Category
		}
	}

	return r, nil
}

// Insights derives the headline findings of a dashboard
func Insights(d *stats.Dashboard) []Insight {
	insights := make([]Insight, 0, 4)
	total := d.Overview.TotalApps

	if len(d.CategoryPerformance) > 0 {
		largest := d.CategoryPerformance[0]
		insights = append(insights, Insight{
			Title: "Largest category",
			Description: fmt.Sprintf("%s has the most apps (%d of %d, %.1f%%)",
				largest.Category, largest.AppCount, total, sample.Percent(float64(largest.AppCount), float64(total))),
		})
	}

	if best, ok := bestRatedCategory(d.CategoryPerformance); ok {
		insights = append(insights, Insight{
			Title: "Best rated category",
			Description: fmt.Sprintf("%s averages %.2f stars across %d rated apps",
				best.Category, best.AvgRating, best.RatingStats.Count),
		})
	}

	if total > 0 {
		insights = append(insights, Insight{
			Title: "Paid apps",
			Description: fmt.Sprintf("%.1f%% of apps are paid (%d of %d)",
				sample.Percent(float64(d.Overview.PaidApps), float64(total)), d.Overview.PaidApps, total),
		})
	}

	if s := d.Sentiment; s.LabelledReviews > 0 {
		dominant := analytics.DominantSentiment(s.SentimentCounts)
		share := s.SentimentPercentages.Positive
		switch dominant {
		case apps.SentimentNeutral:
			share = s.SentimentPercentages.Neutral
		case apps.SentimentNegative:
			share = s.SentimentPercentages.Negative
		}
		insights = append(insights, Insight{
			Title:       "Review sentiment",
			Description: fmt.Sprintf("%s reviews dominate (%.1f%% of %d labelled reviews)", dominant, share, s.LabelledReviews),
		})
	}

	return insights
}

// bestRatedCategory picks the highest average rating among categories with
// enough rated apps, falling back to every rated category. Ties keep the
// earlier category.
func bestRatedCategory(categories []stats.CategoryPerformance) (stats.CategoryPerformance, bool) {
	pick := func(minRated int) (stats.CategoryPerformance, bool) {
		var best stats.CategoryPerformance
		found := false
		for _, c := range categories {
			if c.RatingStats.Count < minRated {
				continue
			}
			if !found || c.AvgRating > best.AvgRating {
				best, found = c, true
			}
		}
		return best, found
	}

	if best, ok := pick(minRatedApps); ok {
		return best, true
	}
	return pick(1)
}
