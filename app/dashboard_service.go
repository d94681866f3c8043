package app

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"playpulse/domain/apps"
	"playpulse/domain/stats"
	"playpulse/internal/analytics"
	"playpulse/internal/errors"
	"playpulse/ports"
)

// DashboardService loads a dataset from an AppSource and computes dashboards over it
type DashboardService struct {
	source ports.AppSource
	topN   int

	mu       sync.RWMutex
	apps     []apps.AppRecord
	reviews  []apps.ReviewRecord
	loadedAt time.Time
}

// NewDashboardService creates a service; topN <= 0 uses the analytics default
func NewDashboardService(source ports.AppSource, topN int) *DashboardService {
	if topN <= 0 {
		topN = analytics.DefaultTopN
	}
	return &DashboardService{source: source, topN: topN}
}

// TopN returns the ranking size used for frequency and top-N sections
func (s *DashboardService) TopN() int {
	return s.topN
}

// Load pulls apps and reviews from the source concurrently and caches them
func (s *DashboardService) Load(ctx context.Context) error {
	if s.source == nil {
		return errors.ConfigInvalid("no app source configured")
	}

	start := time.Now()
	var (
		loadedApps    []apps.AppRecord
		loadedReviews []apps.ReviewRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		loadedApps, err = s.source.LoadApps(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		loadedReviews, err = s.source.LoadReviews(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "failed to load dataset")
	}

	s.mu.Lock()
	s.apps = loadedApps
	s.reviews = loadedReviews
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Printf("[DashboardService] Loaded %d apps and %d reviews in %v",
		len(loadedApps), len(loadedReviews), time.Since(start))
	return nil
}

// Data returns the cached dataset. ok is false until Load has succeeded.
func (s *DashboardService) Data() (records []apps.AppRecord, reviews []apps.ReviewRecord, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apps, s.reviews, !s.loadedAt.IsZero()
}

// Current builds a dashboard over the cached dataset
func (s *DashboardService) Current(ctx context.Context) (*stats.Dashboard, error) {
	records, reviews, ok := s.Data()
	if !ok {
		return nil, errors.NoData("dataset has not been loaded")
	}
	return s.Build(ctx, records, reviews)
}

// Build computes every dashboard section. Sections are independent and run
// concurrently; each goroutine writes only its own field.
func (s *DashboardService) Build(ctx context.Context, records []apps.AppRecord, reviews []apps.ReviewRecord) (*stats.Dashboard, error) {
	start := time.Now()
	d := &stats.Dashboard{}

	g, gctx := errgroup.WithContext(ctx)
	section := func(name string, fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Wrapf(err, "section %s skipped", name)
			}
			fn()
			return nil
		})
	}

	section("overview", func() { d.Overview = analytics.Overview(records) })
	section("topCategories", func() {
		categories, _ := analytics.CategoricalValues(records, "category")
		d.TopCategories = analytics.AnalyzeFrequency(categories, s.topN)
	})
	section("categoryPerformance", func() { d.CategoryPerformance = analytics.AnalyzeCategoryPerformance(records) })
	section("marketShare", func() { d.MarketShare = analytics.CalculateMarketShare(records) })
	section("ratings", func() {
		ratings, _ := analytics.ColumnValues(records, "rating")
		d.RatingDistribution = analytics.AnalyzeRatingDistribution(ratings)
		d.RatingOutliers = analytics.DetectOutliers(ratings)
	})
	section("installOutliers", func() {
		installs, _ := analytics.ColumnValues(records, "installs")
		d.InstallOutliers = analytics.DetectOutliers(installs)
	})
	section("correlations", func() { d.Correlations = analytics.AppCorrelations(records) })
	section("sentiment", func() { d.Sentiment = analytics.AnalyzeSentiment(reviews, s.topN) })
	section("topRated", func() { d.TopRatedApps = analytics.TopRatedApps(records, s.topN) })
	section("ratingTrend", func() {
		d.RatingTrendSeries = analytics.MonthlyRatingSeries(records)
		d.RatingTrend = analytics.AnalyzeTrend(d.RatingTrendSeries)
	})

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "dashboard build interrupted")
	}

	log.Printf("[DashboardService] Built dashboard for %d apps / %d reviews in %v",
		len(records), len(reviews), time.Since(start))
	return d, nil
}
