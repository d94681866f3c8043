package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playpulse/domain/apps"
)

func TestCalculateMarketShare(t *testing.T) {
	records := fixtureApps()

	result := CalculateMarketShare(records)

	assert.Equal(t, 6, result.TotalApps)
	assert.Equal(t, int64(6_560_100), result.TotalInstalls)
	require.Len(t, result.CategoryBreakdown, 3)

	games := result.CategoryBreakdown[0]
	assert.Equal(t, "GAMES", games.Category)
	assert.InDelta(t, 50.0, games.AppMarketShare, 1e-9)
	assert.InDelta(t, 6_010_000.0/6_560_100*100, games.InstallMarketShare, 1e-9)

	appShare, installShare := 0.0, 0.0
	for _, c := range result.CategoryBreakdown {
		appShare += c.AppMarketShare
		installShare += c.InstallMarketShare
	}
	assert.InDelta(t, 100.0, appShare, 1e-9)
	assert.InDelta(t, 100.0, installShare, 1e-9)
}

func TestCalculateMarketShareZeroInstalls(t *testing.T) {
	result := CalculateMarketShare([]apps.AppRecord{
		{Category: "NEW"},
		{Category: "NEW"},
		{Category: "OLD"},
	})

	require.Len(t, result.CategoryBreakdown, 2)
	for _, c := range result.CategoryBreakdown {
		assert.Equal(t, 0.0, c.InstallMarketShare)
	}
	assert.InDelta(t, 200.0/3, result.CategoryBreakdown[0].AppMarketShare, 1e-9)
}

func TestCalculateMarketShareEmpty(t *testing.T) {
	result := CalculateMarketShare(nil)

	assert.Equal(t, 0, result.TotalApps)
	assert.Equal(t, int64(0), result.TotalInstalls)
	assert.Empty(t, result.CategoryBreakdown)
}
