// Package dashboard drives the fetch, transform, chart and export pipeline
// for one run of the weather dashboard.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dessperado95/weather-dashboard/internal/chart"
	"github.com/dessperado95/weather-dashboard/internal/report"
	"github.com/dessperado95/weather-dashboard/internal/weather"
)

// Output file names, all written under the dashboard's output directory.
const (
	TemperatureComparisonFile = "temperature_comparison.png"
	ForecastTrendsFile        = "forecast_trends.png"
	WeatherParametersFile     = "weather_parameters.png"
	ReportFile                = "weather_report.md"
	CurrentCSVFile            = "current_weather.csv"
	ForecastCSVFile           = "forecast_weather.csv"
	CurrentJSONFile           = "current_weather.json"
)

// Dashboard orchestrates the pipeline: fetch current → fetch forecast →
// flatten → render charts → write report → export data. It is the sole
// owner of the payload maps and the flattened tables; a run is strictly
// sequential.
type Dashboard struct {
	fetcher   weather.Fetcher
	outputDir string
	logger    *zap.Logger

	cities []string

	current  map[string]*weather.CurrentResponse
	forecast map[string]*weather.ForecastResponse

	currentTable  []weather.CurrentRecord
	forecastTable []weather.ForecastRecord
}

// New returns a Dashboard with an empty city list.
func New(fetcher weather.Fetcher, outputDir string, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		fetcher:   fetcher,
		outputDir: outputDir,
		logger:    logger,
	}
}

// AddCity appends a city to track. Returns the dashboard for chaining.
func (d *Dashboard) AddCity(name string) *Dashboard {
	d.cities = append(d.cities, name)
	return d
}

// CurrentTable returns the flattened current-weather table of the last run.
func (d *Dashboard) CurrentTable() []weather.CurrentRecord { return d.currentTable }

// ForecastTable returns the flattened forecast table of the last run.
func (d *Dashboard) ForecastTable() []weather.ForecastRecord { return d.forecastTable }

// Run executes the whole pipeline once. Per-city non-200 responses are
// logged and the city is dropped from every downstream table; any other
// error aborts the remaining steps. The payload maps are reset at the start
// so repeated runs never accumulate stale cities.
func (d *Dashboard) Run(ctx context.Context) error {
	runID := uuid.New()
	log := d.logger.With(zap.String("run_id", runID.String()))
	log.Info("starting dashboard run", zap.Strings("cities", d.cities))

	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	d.current = make(map[string]*weather.CurrentResponse)
	d.forecast = make(map[string]*weather.ForecastResponse)

	if err := d.fetchCurrent(ctx, log); err != nil {
		return err
	}
	if err := d.fetchForecast(ctx, log); err != nil {
		return err
	}
	if err := d.prepareData(); err != nil {
		return err
	}
	if err := d.renderCharts(); err != nil {
		return err
	}

	reportPath := filepath.Join(d.outputDir, ReportFile)
	if err := report.WriteMarkdown(d.currentTable, time.Now(), reportPath); err != nil {
		return err
	}
	log.Info("report generated", zap.String("path", reportPath))

	if err := d.exportData(); err != nil {
		return err
	}

	log.Info("dashboard generated successfully", zap.String("output", d.outputDir))
	return nil
}

func (d *Dashboard) fetchCurrent(ctx context.Context, log *zap.Logger) error {
	for _, city := range d.cities {
		data, err := d.fetcher.FetchCurrent(ctx, city)
		if err != nil {
			var statusErr *weather.StatusError
			if errors.As(err, &statusErr) {
				log.Warn("error fetching data",
					zap.String("city", city),
					zap.Int("status", statusErr.StatusCode))
				continue
			}
			return fmt.Errorf("fetch current weather for %q: %w", city, err)
		}
		d.current[city] = data
	}
	return nil
}

func (d *Dashboard) fetchForecast(ctx context.Context, log *zap.Logger) error {
	for _, city := range d.cities {
		data, err := d.fetcher.FetchForecast(ctx, city)
		if err != nil {
			var statusErr *weather.StatusError
			if errors.As(err, &statusErr) {
				log.Warn("error fetching forecast data",
					zap.String("city", city),
					zap.Int("status", statusErr.StatusCode))
				continue
			}
			return fmt.Errorf("fetch forecast for %q: %w", city, err)
		}
		d.forecast[city] = data
	}
	return nil
}

func (d *Dashboard) prepareData() error {
	currentTable, err := weather.FlattenCurrent(d.cities, d.current)
	if err != nil {
		return fmt.Errorf("prepare current weather data: %w", err)
	}
	forecastTable, err := weather.FlattenForecast(d.cities, d.forecast)
	if err != nil {
		return fmt.Errorf("prepare forecast data: %w", err)
	}
	d.currentTable = currentTable
	d.forecastTable = forecastTable
	return nil
}

func (d *Dashboard) renderCharts() error {
	if err := chart.TemperatureComparison(d.currentTable,
		filepath.Join(d.outputDir, TemperatureComparisonFile)); err != nil {
		return err
	}
	if err := chart.ForecastTrends(d.forecastTable, d.cities, time.Now(),
		filepath.Join(d.outputDir, ForecastTrendsFile)); err != nil {
		return err
	}
	return chart.WeatherParameters(d.currentTable,
		filepath.Join(d.outputDir, WeatherParametersFile))
}

func (d *Dashboard) exportData() error {
	currentRecords := d.currentTable
	if err := report.ExportCSV(&currentRecords,
		filepath.Join(d.outputDir, CurrentCSVFile)); err != nil {
		return err
	}
	forecastRecords := d.forecastTable
	if err := report.ExportCSV(&forecastRecords,
		filepath.Join(d.outputDir, ForecastCSVFile)); err != nil {
		return err
	}
	return report.ExportJSON(d.currentTable,
		filepath.Join(d.outputDir, CurrentJSONFile))
}
