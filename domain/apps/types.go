package apps

import (
	"math"
	"strings"
	"time"
)

// AppRecord is one cleaned play-store listing.
// INVARIANTS (guaranteed by ingestion):
// - InstallsNumber >= 0
// - Reviews >= 0
// - Category is non-empty and already normalized
type AppRecord struct {
	App            string    `json:"app"`
	Category       string    `json:"category"`
	Rating         *float64  `json:"rating"`         // nil when the listing has no rating
	InstallsNumber int64     `json:"installsNumber"` // "10,000+" parsed to 10000
	Reviews        int64     `json:"reviews"`
	Price          float64   `json:"price"`  // USD, 0 for free apps
	SizeMB         *float64  `json:"sizeMB"` // nil for "Varies with device"
	IsPaid         bool      `json:"isPaid"`
	IsPopular      bool      `json:"isPopular"`
	ContentRating  string    `json:"contentRating,omitempty"`
	Genres         string    `json:"genres,omitempty"`
	LastUpdated    time.Time `json:"lastUpdated"` // zero when unknown
}

// RatingValue returns the rating as a sample value, NaN when absent
func (a AppRecord) RatingValue() float64 {
	if a.Rating == nil {
		return math.NaN()
	}
	return *a.Rating
}

// SizeValue returns the size in MB as a sample value, NaN when it varies with device
func (a AppRecord) SizeValue() float64 {
	if a.SizeMB == nil {
		return math.NaN()
	}
	return *a.SizeMB
}

// HasRating reports whether the app carries a usable, non-zero rating.
// A zero rating is treated as unrated.
func (a AppRecord) HasRating() bool {
	if a.Rating == nil {
		return false
	}
	r := *a.Rating
	return !math.IsNaN(r) && !math.IsInf(r, 0) && r != 0
}

// Float returns a pointer to v, for building records with optional fields
func Float(v float64) *float64 {
	return &v
}

// Sentiment is the label attached to a user review
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
	SentimentUnknown  Sentiment = ""
)

// ParseSentiment normalizes a raw label; anything unrecognized is SentimentUnknown
func ParseSentiment(raw string) Sentiment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive":
		return SentimentPositive
	case "neutral":
		return SentimentNeutral
	case "negative":
		return SentimentNegative
	default:
		return SentimentUnknown
	}
}

// ReviewRecord is one cleaned user review
type ReviewRecord struct {
	App                   string    `json:"app"`
	TranslatedReview      string    `json:"translatedReview,omitempty"`
	Sentiment             Sentiment `json:"sentiment"`
	SentimentPolarity     *float64  `json:"sentimentPolarity"`     // [-1, 1]
	SentimentSubjectivity *float64  `json:"sentimentSubjectivity"` // [0, 1]
}

// PolarityValue returns the polarity as a sample value, NaN when absent
func (r ReviewRecord) PolarityValue() float64 {
	if r.SentimentPolarity == nil {
		return math.NaN()
	}
	return *r.SentimentPolarity
}

// SubjectivityValue returns the subjectivity as a sample value, NaN when absent
func (r ReviewRecord) SubjectivityValue() float64 {
	if r.SentimentSubjectivity == nil {
		return math.NaN()
	}
	return *r.SentimentSubjectivity
}
