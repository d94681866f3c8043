package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"playpulse/domain/apps"
)

// Column names of the play-store exports
const (
	ColApp           = "App"
	ColCategory      = "Category"
	ColRating        = "Rating"
	ColReviews       = "Reviews"
	ColSize          = "Size"
	ColInstalls      = "Installs"
	ColType          = "Type"
	ColPrice         = "Price"
	ColContentRating = "Content Rating"
	ColGenres        = "Genres"
	ColLastUpdated   = "Last Updated"

	ColTranslatedReview      = "Translated_Review"
	ColSentiment             = "Sentiment"
	ColSentimentPolarity     = "Sentiment_Polarity"
	ColSentimentSubjectivity = "Sentiment_Subjectivity"
)

// varies is the size sentinel used by listings that ship per-device builds
const varies = "varies with device"

var whitespace = regexp.MustCompile(`\s+`)

// CoercionConfig controls how raw fields turn into record values
type CoercionConfig struct {
	PopularInstallThreshold int64 `json:"popular_install_threshold"` // installs at or above mark an app popular
	NormalizeCategories     bool  `json:"normalize_categories"`      // trim, upper-case, spaces to underscores
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		PopularInstallThreshold: 1_000_000,
		NormalizeCategories:     true,
	}
}

// Coercer deterministically converts raw play-store strings into typed values
type Coercer struct {
	config CoercionConfig
}

// NewCoercer creates a coercer with the given config
func NewCoercer(config CoercionConfig) *Coercer {
	if config.PopularInstallThreshold <= 0 {
		config.PopularInstallThreshold = DefaultCoercionConfig().PopularInstallThreshold
	}
	return &Coercer{config: config}
}

// CoerceApp converts one raw row into an AppRecord. ok is false when the row
// has no category and cannot be grouped.
func (c *Coercer) CoerceApp(row map[string]string) (app apps.AppRecord, ok bool) {
	category := c.Category(row[ColCategory])
	if category == "" {
		return apps.AppRecord{}, false
	}

	installs, _ := c.ParseCount(row[ColInstalls])
	reviews, _ := c.ParseCount(row[ColReviews])
	price, _ := c.ParsePrice(row[ColPrice])
	updated, _ := c.ParseDate(row[ColLastUpdated])

	return apps.AppRecord{
		App:            strings.TrimSpace(row[ColApp]),
		Category:       category,
		Rating:         c.ParseRating(row[ColRating]),
		InstallsNumber: installs,
		Reviews:        reviews,
		Price:          price,
		SizeMB:         c.ParseSize(row[ColSize]),
		IsPaid:         c.IsPaid(row[ColType], price),
		IsPopular:      installs >= c.config.PopularInstallThreshold,
		ContentRating:  strings.TrimSpace(row[ColContentRating]),
		Genres:         strings.TrimSpace(row[ColGenres]),
		LastUpdated:    updated,
	}, true
}

// CoerceReview converts one raw review row
func (c *Coercer) CoerceReview(row map[string]string) apps.ReviewRecord {
	review := strings.TrimSpace(row[ColTranslatedReview])
	if isMissing(review) {
		review = ""
	}

	return apps.ReviewRecord{
		App:                   strings.TrimSpace(row[ColApp]),
		TranslatedReview:      review,
		Sentiment:             apps.ParseSentiment(row[ColSentiment]),
		SentimentPolarity:     c.parseBounded(row[ColSentimentPolarity], -1, 1),
		SentimentSubjectivity: c.parseBounded(row[ColSentimentSubjectivity], 0, 1),
	}
}

// Category normalizes a category label
func (c *Coercer) Category(raw string) string {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return ""
	}
	if !c.config.NormalizeCategories {
		return s
	}
	s = whitespace.ReplaceAllString(s, "_")
	return strings.ToUpper(s)
}

// ParseCount parses install and review counts: "10,000+", "500", "3.0M", "12k".
// Anything unparseable yields (0, false); negative values are rejected.
func (c *Coercer) ParseCount(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "+")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	multiplier := 1.0
	switch last := s[len(s)-1]; last {
	case 'k', 'K':
		multiplier = 1e3
	case 'm', 'M':
		multiplier = 1e6
	case 'b', 'B':
		multiplier = 1e9
	}
	if multiplier != 1 {
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return int64(math.Round(v * multiplier)), true
}

// ParsePrice parses "$2.99", "0", "Free". Unparseable prices are (0, false).
func (c *Coercer) ParsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, "free") {
		return 0, true
	}
	for _, symbol := range []string{"$", "€", "£", "USD"} {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// ParseSize parses "25M", "512k", "1.2G" into megabytes. "Varies with
// device" and anything unparseable give nil.
func (c *Coercer) ParseSize(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, varies) {
		return nil
	}

	scale := 1.0
	switch last := s[len(s)-1]; last {
	case 'M', 'm':
		s = s[:len(s)-1]
	case 'k', 'K':
		scale = 1.0 / 1024
		s = s[:len(s)-1]
	case 'G', 'g':
		scale = 1024
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return apps.Float(v * scale)
}

// ParseRating parses a 0..5 rating. Missing, NaN and out-of-range values give nil.
func (c *Coercer) ParseRating(raw string) *float64 {
	return c.parseBounded(raw, 0, 5)
}

// ParseDate parses "January 7, 2018" and the common ISO layouts
func (c *Coercer) ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return time.Time{}, false
	}

	layouts := []string{
		"January 2, 2006",
		"Jan 2, 2006",
		time.RFC3339,
		"2006-01-02",
		"2006-01-02 15:04:05",
		"01/02/2006",
		"2006/01/02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsPaid decides the paid flag from the Type column, falling back to price
func (c *Coercer) IsPaid(rawType string, price float64) bool {
	switch strings.ToLower(strings.TrimSpace(rawType)) {
	case "paid":
		return true
	case "free":
		return false
	}
	return price > 0
}

func (c *Coercer) parseBounded(raw string, lo, hi float64) *float64 {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < lo || v > hi {
		return nil
	}
	return apps.Float(v)
}

// isMissing reports the textual null markers found in exported datasets
func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "n/a", "na":
		return true
	}
	return false
}
