package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dessperado95/weather-dashboard/internal/weather"
)

func currentRecords() []weather.CurrentRecord {
	now := time.Now()
	return []weather.CurrentRecord{
		{City: "Moscow", Temperature: 20.5, Humidity: 60, WindSpeed: 3.2, Pressure: 1012, Timestamp: now},
		{City: "Kazan", Temperature: 17.2, Humidity: 71, WindSpeed: 5.1, Pressure: 1009, Timestamp: now},
	}
}

func forecastRecords(now time.Time) []weather.ForecastRecord {
	return []weather.ForecastRecord{
		{City: "Moscow", Temperature: 12.1, Timestamp: now.Add(3 * time.Hour)},
		{City: "Moscow", Temperature: 11.3, Timestamp: now.Add(6 * time.Hour)},
		{City: "Kazan", Temperature: 9.8, Timestamp: now.Add(3 * time.Hour)},
	}
}

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestTemperatureComparison_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temperature_comparison.png")
	require.NoError(t, TemperatureComparison(currentRecords(), path))
	requireNonEmptyFile(t, path)
}

func TestForecastTrends_WritesPNG(t *testing.T) {
	now := time.Now()
	path := filepath.Join(t.TempDir(), "forecast_trends.png")
	require.NoError(t, ForecastTrends(forecastRecords(now), []string{"Moscow", "Kazan"}, now, path))
	requireNonEmptyFile(t, path)
}

func TestForecastTrends_SkipsCityWithoutPoints(t *testing.T) {
	now := time.Now()
	path := filepath.Join(t.TempDir(), "forecast_trends.png")
	// Novosibirsk has no records at all; it must not break rendering.
	err := ForecastTrends(forecastRecords(now), []string{"Moscow", "Kazan", "Novosibirsk"}, now, path)
	require.NoError(t, err)
	requireNonEmptyFile(t, path)
}

func TestWeatherParameters_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_parameters.png")
	require.NoError(t, WeatherParameters(currentRecords(), path))
	requireNonEmptyFile(t, path)
}

func TestWithinWindow_DropsSlotsBeyondFiveDays(t *testing.T) {
	now := time.Now()
	records := []weather.ForecastRecord{
		{City: "Moscow", Timestamp: now.Add(time.Hour)},
		{City: "Moscow", Timestamp: now.Add(ForecastWindow - time.Hour)},
		{City: "Moscow", Timestamp: now.Add(ForecastWindow + time.Hour)},
		{City: "Kazan", Timestamp: now.Add(ForecastWindow + 24*time.Hour)},
	}

	windowed := WithinWindow(records, now)
	require.Len(t, windowed, 2)
	for _, r := range windowed {
		assert.False(t, r.Timestamp.After(now.Add(ForecastWindow)))
	}
}

func TestWithinWindow_KeepsExactCutoff(t *testing.T) {
	now := time.Now()
	records := []weather.ForecastRecord{
		{City: "Moscow", Timestamp: now.Add(ForecastWindow)},
	}
	assert.Len(t, WithinWindow(records, now), 1)
}
