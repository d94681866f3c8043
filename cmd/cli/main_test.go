package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playpulse/domain/stats"
	"playpulse/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Data:      config.DataConfig{SheetName: "Sheet1"},
		Server:    config.ServerConfig{Port: "8080"},
		Analytics: config.AnalyticsConfig{TopN: 5, PopularInstallThreshold: 1_000_000},
		Reports:   config.ReportConfig{Dir: "./reports"},
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(testConfig())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummarizeCommand(t *testing.T) {
	out, err := run(t, "summarize", "1", "2", "nan", "3", "4", "5")
	require.NoError(t, err)

	var s stats.BasicStats
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 3.0, s.Median)
}

func TestDashboardCommandSynthetic(t *testing.T) {
	out, err := run(t, "dashboard", "--synthetic", "--seed", "3")
	require.NoError(t, err)

	var d stats.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 500, d.Overview.TotalApps)
	assert.LessOrEqual(t, len(d.TopCategories), 5)
}

func TestFrequencyCommandRejectsUnknownField(t *testing.T) {
	_, err := run(t, "frequency", "--synthetic", "--field", "colour")
	assert.Error(t, err)
}

func TestCommandsRequireData(t *testing.T) {
	_, err := run(t, "categories")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no apps file")
}

func TestTrendCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,value\n2024-01-02,2\n2024-01-01,1\n2024-01-03,3\nbad,4\n"), 0o644))

	out, err := run(t, "trend", path)
	require.NoError(t, err)

	var res stats.TrendResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, stats.TrendIncreasing, res.Trend)
	assert.Equal(t, 3, res.DataPoints)
}

func TestGenerateThenReport(t *testing.T) {
	dataDir := t.TempDir()
	out, err := run(t, "generate", "--count", "50", "--out", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 50 apps")

	reportDir := t.TempDir()
	out, err = run(t, "report",
		"--apps", filepath.Join(dataDir, "apps.csv"),
		"--reviews", filepath.Join(dataDir, "reviews.csv"),
		"--type", "sentiment", "--format", "txt", "--out", reportDir)
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, reportDir, filepath.Dir(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Sentiment Analysis Report")
	assert.Contains(t, string(content), "50 apps analyzed")
}

func TestLoadEnvMissingFileFallsBack(t *testing.T) {
	var ok bool
	assert.NotPanics(t, func() { ok = loadEnv(filepath.Join(t.TempDir(), "absent.env")) })
	assert.False(t, ok)
}

func TestLoadEnvReadsFile(t *testing.T) {
	const key = "PLAYPULSE_CLI_ENV_TEST"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o644))

	assert.True(t, loadEnv(path))
	assert.Equal(t, "from-file", os.Getenv(key))
}
