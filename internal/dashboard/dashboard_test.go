package dashboard_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dessperado95/weather-dashboard/internal/dashboard"
	"github.com/dessperado95/weather-dashboard/internal/weather/openweathermap"
)

const forecastSlots = 3

// newAPIServer serves canned /weather and /forecast payloads. Any city
// named "Nowhere" gets a 404 from both endpoints.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("q")
		if city == "Nowhere" {
			http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"main": {"temp": 20.5, "feels_like": 19.8, "humidity": 60, "pressure": 1012},
			"wind": {"speed": 3.2},
			"weather": [{"description": "clear sky"}],
			"dt": %d
		}`, time.Now().Unix())
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("q")
		if city == "Nowhere" {
			http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
			return
		}
		var slots []string
		for i := 0; i < forecastSlots; i++ {
			ts := time.Now().Add(time.Duration(3*(i+1)) * time.Hour)
			slots = append(slots, fmt.Sprintf(`{
				"main": {"temp": %f, "feels_like": 11.0, "humidity": 72, "pressure": 1008},
				"wind": {"speed": 4.5},
				"weather": [{"description": "light rain"}],
				"dt": %d,
				"dt_txt": %q
			}`, 12.1-float64(i), ts.Unix(), ts.Format("2006-01-02 15:04:05")))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"list": [%s]}`, strings.Join(slots, ","))
	})
	return httptest.NewServer(mux)
}

func newTestDashboard(t *testing.T, baseURL string, cities ...string) (*dashboard.Dashboard, string) {
	t.Helper()
	outputDir := filepath.Join(t.TempDir(), "output")
	d := dashboard.New(openweathermap.NewClient(baseURL, "test-key"), outputDir, zap.NewNop())
	for _, city := range cities {
		d.AddCity(city)
	}
	return d, outputDir
}

func TestRun_GeneratesAllOutputs(t *testing.T) {
	srv := newAPIServer(t)
	defer srv.Close()

	d, outputDir := newTestDashboard(t, srv.URL, "Moscow", "Kazan")
	require.NoError(t, d.Run(context.Background()))

	for _, name := range []string{
		dashboard.TemperatureComparisonFile,
		dashboard.ForecastTrendsFile,
		dashboard.WeatherParametersFile,
		dashboard.ReportFile,
		dashboard.CurrentCSVFile,
		dashboard.ForecastCSVFile,
		dashboard.CurrentJSONFile,
	} {
		info, err := os.Stat(filepath.Join(outputDir, name))
		require.NoError(t, err, "expected output file %s", name)
		assert.Greater(t, info.Size(), int64(0), "output file %s is empty", name)
	}

	require.Len(t, d.CurrentTable(), 2)
	require.Len(t, d.ForecastTable(), 2*forecastSlots)
}

func TestRun_404CityLoggedAndExcluded(t *testing.T) {
	srv := newAPIServer(t)
	defer srv.Close()

	core, observed := observer.New(zap.WarnLevel)
	outputDir := filepath.Join(t.TempDir(), "output")
	d := dashboard.New(openweathermap.NewClient(srv.URL, "test-key"), outputDir, zap.New(core))
	d.AddCity("Moscow").AddCity("Nowhere")

	require.NoError(t, d.Run(context.Background()))

	// One current row and one city's worth of forecast rows.
	require.Len(t, d.CurrentTable(), 1)
	assert.Equal(t, "Moscow", d.CurrentTable()[0].City)
	require.Len(t, d.ForecastTable(), forecastSlots)

	// The failed city is absent from the CSV export.
	data, err := os.ReadFile(filepath.Join(outputDir, dashboard.CurrentCSVFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2) // header + Moscow
	assert.NotContains(t, string(data), "Nowhere")

	// Both fetch failures (current and forecast) were logged as warnings.
	assert.Equal(t, 1, observed.FilterMessage("error fetching data").Len())
	assert.Equal(t, 1, observed.FilterMessage("error fetching forecast data").Len())
}

func TestRun_RepeatedRunsDoNotAccumulate(t *testing.T) {
	srv := newAPIServer(t)
	defer srv.Close()

	d, _ := newTestDashboard(t, srv.URL, "Moscow")
	require.NoError(t, d.Run(context.Background()))
	require.NoError(t, d.Run(context.Background()))

	assert.Len(t, d.CurrentTable(), 1)
	assert.Len(t, d.ForecastTable(), forecastSlots)
}

func TestRun_ServerUnreachableFails(t *testing.T) {
	srv := newAPIServer(t)
	srv.Close() // transport errors are hard failures, unlike non-200 responses

	d, _ := newTestDashboard(t, srv.URL, "Moscow")
	require.Error(t, d.Run(context.Background()))
}

func TestRun_CreatesOutputDirectory(t *testing.T) {
	srv := newAPIServer(t)
	defer srv.Close()

	d, outputDir := newTestDashboard(t, srv.URL, "Moscow")
	_, err := os.Stat(outputDir)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, d.Run(context.Background()))

	info, err := os.Stat(outputDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
