package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playpulse/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APPS_FILE", "REVIEWS_FILE", "SHEET_NAME", "PORT", "TOP_N", "POPULAR_INSTALLS", "REPORT_DIR"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "Sheet1", cfg.Data.SheetName)
	assert.Equal(t, 10, cfg.Analytics.TopN)
	assert.Equal(t, int64(1_000_000), cfg.Analytics.PopularInstallThreshold)
	assert.Equal(t, "./reports", cfg.Reports.Dir)
	assert.Empty(t, cfg.Data.AppsFile)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APPS_FILE", "data/googleplaystore.csv")
	t.Setenv("REVIEWS_FILE", "data/googleplaystore_user_reviews.csv")
	t.Setenv("PORT", "9090")
	t.Setenv("TOP_N", "5")
	t.Setenv("POPULAR_INSTALLS", "500000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/googleplaystore.csv", cfg.Data.AppsFile)
	assert.Equal(t, "data/googleplaystore_user_reviews.csv", cfg.Data.ReviewsFile)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Analytics.TopN)
	assert.Equal(t, int64(500_000), cfg.Analytics.PopularInstallThreshold)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("TOP_N", "ten")
	t.Setenv("POPULAR_INSTALLS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Analytics.TopN)
}

func TestLoadRejectsNonPositiveTopN(t *testing.T) {
	t.Setenv("TOP_N", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidateThreshold(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: "8080"},
		Data:      DataConfig{SheetName: "Sheet1"},
		Analytics: AnalyticsConfig{TopN: 10, PopularInstallThreshold: -1},
	}
	assert.Error(t, cfg.Validate())

	cfg.Analytics.PopularInstallThreshold = 1
	assert.NoError(t, cfg.Validate())
}
