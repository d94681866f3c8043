package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playpulse/domain/apps"
)

func TestParseCount(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())

	cases := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"10,000+", 10000, true},
		{"1,000,000,000+", 1_000_000_000, true},
		{"0", 0, true},
		{"159", 159, true},
		{"3.0M", 3_000_000, true},
		{"12k", 12000, true},
		{"Free", 0, false},
		{"", 0, false},
		{"-5", 0, false},
	}
	for _, tc := range cases {
		got, ok := c.ParseCount(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestParsePrice(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())

	v, ok := c.ParsePrice("$2.99")
	assert.True(t, ok)
	assert.InDelta(t, 2.99, v, 1e-9)

	v, ok = c.ParsePrice("0")
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = c.ParsePrice("Everyone")
	assert.False(t, ok)
}

func TestParseSize(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())

	require.NotNil(t, c.ParseSize("25M"))
	assert.Equal(t, 25.0, *c.ParseSize("25M"))
	assert.InDelta(t, 0.5, *c.ParseSize("512k"), 1e-9)
	assert.Equal(t, 2048.0, *c.ParseSize("2G"))
	assert.Nil(t, c.ParseSize("Varies with device"))
	assert.Nil(t, c.ParseSize("1,000+"))
	assert.Nil(t, c.ParseSize(""))
}

func TestParseRating(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())

	assert.Equal(t, 4.1, *c.ParseRating("4.1"))
	assert.Nil(t, c.ParseRating("NaN"))
	assert.Nil(t, c.ParseRating("19"))
	assert.Nil(t, c.ParseRating(""))
}

func TestParseDate(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())
	want := time.Date(2018, time.January, 7, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"January 7, 2018", "2018-01-07", "01/07/2018"} {
		got, ok := c.ParseDate(raw)
		assert.True(t, ok, raw)
		assert.True(t, want.Equal(got), raw)
	}

	_, ok := c.ParseDate("1.0.19")
	assert.False(t, ok)
}

func TestCategoryNormalization(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())
	assert.Equal(t, "FOOD_AND_DRINK", c.Category("  food and drink "))
	assert.Equal(t, "", c.Category("NaN"))

	raw := NewCoercer(CoercionConfig{})
	assert.Equal(t, "food and drink", raw.Category(" food and drink "))
}

func TestCoerceApp(t *testing.T) {
	c := NewCoercer(CoercionConfig{PopularInstallThreshold: 1_000_000, NormalizeCategories: true})

	app, ok := c.CoerceApp(map[string]string{
		ColApp:           "Sketch Pro",
		ColCategory:      "ART_AND_DESIGN",
		ColRating:        "4.4",
		ColReviews:       "215644",
		ColSize:          "25M",
		ColInstalls:      "50,000,000+",
		ColType:          "Paid",
		ColPrice:         "$4.99",
		ColContentRating: "Teen",
		ColGenres:        "Art & Design",
		ColLastUpdated:   "June 8, 2018",
	})
	require.True(t, ok)

	assert.Equal(t, "Sketch Pro", app.App)
	assert.Equal(t, 4.4, *app.Rating)
	assert.Equal(t, int64(215644), app.Reviews)
	assert.Equal(t, int64(50_000_000), app.InstallsNumber)
	assert.True(t, app.IsPaid)
	assert.True(t, app.IsPopular)
	assert.InDelta(t, 4.99, app.Price, 1e-9)
	assert.Equal(t, 2018, app.LastUpdated.Year())
}

func TestCoerceAppDropsMissingCategory(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())
	_, ok := c.CoerceApp(map[string]string{ColApp: "Orphan"})
	assert.False(t, ok)
}

func TestCoerceAppFallsBackToPriceForType(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())
	app, ok := c.CoerceApp(map[string]string{ColCategory: "TOOLS", ColPrice: "$0.99", ColInstalls: "100+"})
	require.True(t, ok)
	assert.True(t, app.IsPaid)
	assert.False(t, app.IsPopular)
	assert.Nil(t, app.Rating)
	assert.True(t, app.LastUpdated.IsZero())
}

func TestCoerceReview(t *testing.T) {
	c := NewCoercer(DefaultCoercionConfig())

	review := c.CoerceReview(map[string]string{
		ColApp:                   "Sketch Pro",
		ColTranslatedReview:      "nan",
		ColSentiment:             "positive",
		ColSentimentPolarity:     "0.5",
		ColSentimentSubjectivity: "1.5",
	})

	assert.Equal(t, apps.SentimentPositive, review.Sentiment)
	assert.Equal(t, "", review.TranslatedReview)
	assert.Equal(t, 0.5, *review.SentimentPolarity)
	assert.Nil(t, review.SentimentSubjectivity)
}
