package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"time"

	"playpulse/domain/apps"
)

// PlayStoreGeneratorConfig configures the synthetic play-store generator
type PlayStoreGeneratorConfig struct {
	AppCount          int       `json:"app_count"`
	ReviewsPerApp     float64   `json:"reviews_per_app"`
	PaidRate          float64   `json:"paid_rate"`
	UnratedRate       float64   `json:"unrated_rate"`
	VariesSizeRate    float64   `json:"varies_size_rate"`
	UnlabelledRate    float64   `json:"unlabelled_rate"` // reviews without a sentiment label
	PopularThreshold  int64     `json:"popular_threshold"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	Seed              int64     `json:"seed"`
	Categories        []string  `json:"categories"`
	CategoryWeights   []float64 `json:"category_weights"` // same length as Categories, need not sum to 1
	RatingDriftPerDay float64   `json:"rating_drift_per_day"`
}

// DefaultPlayStoreConfig returns defaults that resemble the public dataset
func DefaultPlayStoreConfig() PlayStoreGeneratorConfig {
	return PlayStoreGeneratorConfig{
		AppCount:         500,
		ReviewsPerApp:    4,
		PaidRate:         0.08,
		UnratedRate:      0.12,
		VariesSizeRate:   0.15,
		UnlabelledRate:   0.1,
		PopularThreshold: 1_000_000,
		StartDate:        time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2018, 8, 31, 0, 0, 0, 0, time.UTC),
		Seed:             42,
		Categories:       []string{"FAMILY", "GAMES", "TOOLS", "PRODUCTIVITY", "MEDICAL", "FOOD_AND_DRINK"},
		CategoryWeights:  []float64{0.3, 0.25, 0.15, 0.12, 0.1, 0.08},
	}
}

// installTiers are the install buckets the store reports, "N+" on the listing
var installTiers = []int64{100, 1_000, 10_000, 100_000, 500_000, 1_000_000, 5_000_000, 10_000_000, 100_000_000}

var contentRatings = []string{"Everyone", "Everyone 10+", "Teen", "Mature 17+"}

// PlayStoreGenerator produces deterministic app listings and reviews
type PlayStoreGenerator struct {
	config PlayStoreGeneratorConfig
	rng    *rand.Rand
}

// NewPlayStoreGenerator creates a generator seeded from config.Seed
func NewPlayStoreGenerator(config PlayStoreGeneratorConfig) *PlayStoreGenerator {
	if len(config.Categories) == 0 {
		config.Categories = DefaultPlayStoreConfig().Categories
		config.CategoryWeights = DefaultPlayStoreConfig().CategoryWeights
	}
	if config.PopularThreshold <= 0 {
		config.PopularThreshold = DefaultPlayStoreConfig().PopularThreshold
	}
	if !config.EndDate.After(config.StartDate) {
		config.StartDate = DefaultPlayStoreConfig().StartDate
		config.EndDate = DefaultPlayStoreConfig().EndDate
	}
	return &PlayStoreGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate returns AppCount apps followed by their reviews
func (g *PlayStoreGenerator) Generate() ([]apps.AppRecord, []apps.ReviewRecord) {
	records := make([]apps.AppRecord, 0, g.config.AppCount)
	var reviews []apps.ReviewRecord

	for i := 0; i < g.config.AppCount; i++ {
		app := g.generateApp(i)
		records = append(records, app)
		reviews = append(reviews, g.generateReviews(app)...)
	}
	if reviews == nil {
		reviews = []apps.ReviewRecord{}
	}
	return records, reviews
}

func (g *PlayStoreGenerator) generateApp(i int) apps.AppRecord {
	category := g.pickCategory()
	updated := g.randomTimeInRange(g.config.StartDate, g.config.EndDate)
	installs := installTiers[g.rng.Intn(len(installTiers))]

	var rating *float64
	if g.rng.Float64() >= g.config.UnratedRate {
		days := updated.Sub(g.config.StartDate).Hours() / 24
		r := 4.1 + g.rng.NormFloat64()*0.5 + days*g.config.RatingDriftPerDay
		r = math.Round(math.Max(1, math.Min(5, r))*10) / 10
		rating = &r
	}

	var size *float64
	if g.rng.Float64() >= g.config.VariesSizeRate {
		s := math.Round((1+g.rng.ExpFloat64()*20)*10) / 10
		size = &s
	}

	price := 0.0
	paid := g.rng.Float64() < g.config.PaidRate
	if paid {
		price = []float64{0.99, 1.99, 2.99, 4.99, 9.99}[g.rng.Intn(5)]
	}

	reviewCount := int64(float64(installs) * (0.01 + g.rng.Float64()*0.04))

	return apps.AppRecord{
		App:            fmt.Sprintf("%s App %04d", category, i+1),
		Category:       category,
		Rating:         rating,
		InstallsNumber: installs,
		Reviews:        reviewCount,
		Price:          price,
		SizeMB:         size,
		IsPaid:         paid,
		IsPopular:      installs >= g.config.PopularThreshold,
		ContentRating:  contentRatings[g.rng.Intn(len(contentRatings))],
		Genres:         category,
		LastUpdated:    updated,
	}
}

func (g *PlayStoreGenerator) generateReviews(app apps.AppRecord) []apps.ReviewRecord {
	n := int(math.Round(g.config.ReviewsPerApp + g.rng.NormFloat64()))
	if n <= 0 {
		return nil
	}

	// better rated apps lean positive
	bias := 0.0
	if app.HasRating() {
		bias = (*app.Rating - 3.5) / 3
	}

	reviews := make([]apps.ReviewRecord, 0, n)
	for j := 0; j < n; j++ {
		if g.rng.Float64() < g.config.UnlabelledRate {
			reviews = append(reviews, apps.ReviewRecord{App: app.App})
			continue
		}

		polarity := math.Max(-1, math.Min(1, bias+g.rng.NormFloat64()*0.4))
		subjectivity := math.Round(g.rng.Float64()*100) / 100
		sentiment := apps.SentimentNeutral
		switch {
		case polarity > 0.05:
			sentiment = apps.SentimentPositive
		case polarity < -0.05:
			sentiment = apps.SentimentNegative
		}

		reviews = append(reviews, apps.ReviewRecord{
			App:                   app.App,
			TranslatedReview:      fmt.Sprintf("review %d of %s", j+1, app.App),
			Sentiment:             sentiment,
			SentimentPolarity:     apps.Float(math.Round(polarity*1000) / 1000),
			SentimentSubjectivity: apps.Float(subjectivity),
		})
	}
	return reviews
}

func (g *PlayStoreGenerator) pickCategory() string {
	total := 0.0
	for i := range g.config.Categories {
		total += g.weight(i)
	}
	r := g.rng.Float64() * total
	for i, c := range g.config.Categories {
		r -= g.weight(i)
		if r < 0 {
			return c
		}
	}
	return g.config.Categories[len(g.config.Categories)-1]
}

func (g *PlayStoreGenerator) weight(i int) float64 {
	if i < len(g.config.CategoryWeights) && g.config.CategoryWeights[i] > 0 {
		return g.config.CategoryWeights[i]
	}
	return 1
}

func (g *PlayStoreGenerator) randomTimeInRange(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, g.rng.Intn(days+1))
}

// WriteAppsCSV writes apps in the raw export format ("10,000+", "$2.99", "25M")
func WriteAppsCSV(w io.Writer, records []apps.AppRecord) error {
	cw := csv.NewWriter(w)
	header := []string{"App", "Category", "Rating", "Reviews", "Size", "Installs", "Type", "Price", "Content Rating", "Genres", "Last Updated"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, a := range records {
		rating := "NaN"
		if a.Rating != nil {
			rating = strconv.FormatFloat(*a.Rating, 'f', 1, 64)
		}
		size := "Varies with device"
		if a.SizeMB != nil {
			size = strconv.FormatFloat(*a.SizeMB, 'f', -1, 64) + "M"
		}
		kind, price := "Free", "0"
		if a.IsPaid {
			kind, price = "Paid", "$"+strconv.FormatFloat(a.Price, 'f', 2, 64)
		}
		updated := ""
		if !a.LastUpdated.IsZero() {
			updated = a.LastUpdated.Format("January 2, 2006")
		}

		row := []string{
			a.App, a.Category, rating, strconv.FormatInt(a.Reviews, 10), size,
			groupThousands(a.InstallsNumber) + "+", kind, price, a.ContentRating, a.Genres, updated,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteReviewsCSV writes reviews in the raw export format, "nan" for holes
func WriteReviewsCSV(w io.Writer, reviews []apps.ReviewRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"App", "Translated_Review", "Sentiment", "Sentiment_Polarity", "Sentiment_Subjectivity"}); err != nil {
		return err
	}

	for _, r := range reviews {
		text, label := "nan", "nan"
		if r.TranslatedReview != "" {
			text = r.TranslatedReview
		}
		if r.Sentiment != apps.SentimentUnknown {
			label = string(r.Sentiment)
		}
		row := []string{r.App, text, label, formatOptional(r.SentimentPolarity), formatOptional(r.SentimentSubjectivity)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatOptional(v *float64) string {
	if v == nil {
		return "nan"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// groupThousands formats 1234567 as "1,234,567"
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
