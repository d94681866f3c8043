package analytics

import (
	"sort"

	"playpulse/domain/apps"
	"playpulse/domain/stats"
	"playpulse/internal/sample"
)

// Overview computes the headline totals of a dataset
func Overview(records []apps.AppRecord) (result stats.Overview) {
	defer guard("Overview", &result, func() stats.Overview { return stats.Overview{} })

	categories := make(map[string]struct{})
	ratings := make([]float64, 0, len(records))
	prices := make([]float64, 0)

	for _, app := range records {
		categories[app.Category] = struct{}{}
		if app.HasRating() {
			ratings = append(ratings, *app.Rating)
		}
		result.TotalInstalls += app.InstallsNumber
		result.TotalReviews += app.Reviews
		if app.IsPaid {
			result.PaidApps++
			prices = append(prices, app.Price)
		}
		if app.IsPopular {
			result.PopularApps++
		}
	}

	result.TotalApps = len(records)
	result.TotalCategories = len(categories)
	result.FreeApps = result.TotalApps - result.PaidApps
	result.RatedApps = len(ratings)
	result.AvgRating = sample.Mean(ratings)
	result.AvgPrice = sample.Mean(sample.Clean(prices))
	return result
}

// AppCorrelations computes the fixed set of correlations the dashboard shows.
// Unrated apps and apps whose size varies with device contribute holes.
func AppCorrelations(records []apps.AppRecord) (result stats.Correlations) {
	defer guard("AppCorrelations", &result, func() stats.Correlations { return stats.Correlations{} })

	n := len(records)
	rating := make([]float64, n)
	reviews := make([]float64, n)
	installs := make([]float64, n)
	size := make([]float64, n)
	price := make([]float64, n)

	for i, app := range records {
		rating[i] = ratingOrHole(app)
		reviews[i] = float64(app.Reviews)
		installs[i] = float64(app.InstallsNumber)
		size[i] = app.SizeValue()
		price[i] = app.Price
	}

	return stats.Correlations{
		RatingVsReviews:   Correlate(rating, reviews),
		RatingVsInstalls:  Correlate(rating, installs),
		ReviewsVsInstalls: Correlate(reviews, installs),
		SizeVsInstalls:    Correlate(size, installs),
		PriceVsRating:     Correlate(price, rating),
		PriceVsInstalls:   Correlate(price, installs),
	}
}

// TopRatedApps returns up to n rated apps ordered by rating, then by review
// count, then by input order
func TopRatedApps(records []apps.AppRecord, n int) (result []apps.AppRecord) {
	defer guard("TopRatedApps", &result, func() []apps.AppRecord { return []apps.AppRecord{} })

	if n <= 0 {
		n = DefaultTopN
	}

	rated := make([]apps.AppRecord, 0, len(records))
	for _, app := range records {
		if app.HasRating() {
			rated = append(rated, app)
		}
	}

	sort.SliceStable(rated, func(i, j int) bool {
		ri, rj := *rated[i].Rating, *rated[j].Rating
		if ri != rj {
			return ri > rj
		}
		return rated[i].Reviews > rated[j].Reviews
	})

	if len(rated) > n {
		rated = rated[:n]
	}
	return rated
}

// ColumnValues extracts a named numeric field from every record, with holes
// where the field is missing. Known fields: rating, installs, reviews, price, size.
func ColumnValues(records []apps.AppRecord, field string) ([]float64, bool) {
	var pick func(apps.AppRecord) float64
	switch field {
	case "rating":
		pick = ratingOrHole
	case "installs":
		pick = func(a apps.AppRecord) float64 { return float64(a.InstallsNumber) }
	case "reviews":
		pick = func(a apps.AppRecord) float64 { return float64(a.Reviews) }
	case "price":
		pick = func(a apps.AppRecord) float64 { return a.Price }
	case "size":
		pick = apps.AppRecord.SizeValue
	default:
		return nil, false
	}

	values := make([]float64, len(records))
	for i, app := range records {
		values[i] = pick(app)
	}
	return values, true
}

// CategoricalValues extracts a named string field from every record.
// Known fields: category, contentRating, genres, type.
func CategoricalValues(records []apps.AppRecord, field string) ([]string, bool) {
	var pick func(apps.AppRecord) string
	switch field {
	case "category":
		pick = func(a apps.AppRecord) string { return a.Category }
	case "contentRating":
		pick = func(a apps.AppRecord) string { return a.ContentRating }
	case "genres":
		pick = func(a apps.AppRecord) string { return a.Genres }
	case "type":
		pick = func(a apps.AppRecord) string {
			if a.IsPaid {
				return "Paid"
			}
			return "Free"
		}
	default:
		return nil, false
	}

	values := make([]string, len(records))
	for i, app := range records {
		values[i] = pick(app)
	}
	return values, true
}

func ratingOrHole(app apps.AppRecord) float64 {
	if !app.HasRating() {
		return sample.Hole
	}
	return *app.Rating
}
