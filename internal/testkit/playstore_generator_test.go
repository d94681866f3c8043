package testkit

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playpulse/adapters/ingest"
)

func smallConfig() PlayStoreGeneratorConfig {
	config := DefaultPlayStoreConfig()
	config.AppCount = 40
	return config
}

func TestPlayStoreGeneratorIsDeterministic(t *testing.T) {
	a1, r1 := NewPlayStoreGenerator(smallConfig()).Generate()
	a2, r2 := NewPlayStoreGenerator(smallConfig()).Generate()

	assert.Equal(t, a1, a2)
	assert.Equal(t, r1, r2)
}

func TestPlayStoreGeneratorRespectsInvariants(t *testing.T) {
	config := smallConfig()
	records, reviews := NewPlayStoreGenerator(config).Generate()

	require.Len(t, records, config.AppCount)
	assert.NotEmpty(t, reviews)

	for _, app := range records {
		assert.NotEmpty(t, app.Category)
		assert.GreaterOrEqual(t, app.InstallsNumber, int64(0))
		assert.GreaterOrEqual(t, app.Reviews, int64(0))
		assert.Equal(t, app.InstallsNumber >= config.PopularThreshold, app.IsPopular)
		assert.Equal(t, app.IsPaid, app.Price > 0)
		if app.Rating != nil {
			assert.True(t, *app.Rating >= 1 && *app.Rating <= 5)
		}
	}
	for _, r := range reviews {
		if r.SentimentPolarity != nil {
			assert.True(t, *r.SentimentPolarity >= -1 && *r.SentimentPolarity <= 1)
		}
	}
}

func TestGeneratedCSVRoundTripsThroughIngestion(t *testing.T) {
	records, reviews := NewPlayStoreGenerator(smallConfig()).Generate()
	dir := t.TempDir()

	var appsBuf, reviewsBuf bytes.Buffer
	require.NoError(t, WriteAppsCSV(&appsBuf, records))
	require.NoError(t, WriteReviewsCSV(&reviewsBuf, reviews))
	appsPath := filepath.Join(dir, "apps.csv")
	reviewsPath := filepath.Join(dir, "reviews.csv")
	require.NoError(t, os.WriteFile(appsPath, appsBuf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(reviewsPath, reviewsBuf.Bytes(), 0o644))

	src := ingest.NewFileSource(appsPath, reviewsPath, "", nil)
	loaded, err := src.LoadApps(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, len(records))

	for i := range records {
		assert.Equal(t, records[i].App, loaded[i].App)
		assert.Equal(t, records[i].InstallsNumber, loaded[i].InstallsNumber)
		assert.Equal(t, records[i].IsPaid, loaded[i].IsPaid)
		assert.Equal(t, records[i].Rating == nil, loaded[i].Rating == nil)
		assert.True(t, records[i].LastUpdated.Equal(loaded[i].LastUpdated))
	}

	loadedReviews, err := src.LoadReviews(context.Background())
	require.NoError(t, err)
	assert.Len(t, loadedReviews, len(reviews))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "100", groupThousands(100))
	assert.Equal(t, "1,000", groupThousands(1000))
	assert.Equal(t, "10,000", groupThousands(10000))
	assert.Equal(t, "1,000,000,000", groupThousands(1_000_000_000))
}

func TestMemorySource(t *testing.T) {
	src := NewGeneratedSource(smallConfig())

	records, err := src.LoadApps(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 40)

	src.FailWith(errors.New("boom"))
	_, err = src.LoadReviews(context.Background())
	assert.EqualError(t, err, "boom")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewMemorySource(nil, nil).LoadApps(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
