// Package report renders the Markdown weather report and exports the
// flattened tables to CSV and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gocarina/gocsv"

	"github.com/dessperado95/weather-dashboard/internal/weather"
)

// Markdown renders the current-weather report, one section per record in
// table order, headed by the generation timestamp.
func Markdown(records []weather.CurrentRecord, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("# Current Weather Report\n\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", generatedAt.Format("2006-01-02 15:04:05"))

	for _, r := range records {
		fmt.Fprintf(&b, "## %s\n\n", r.City)
		fmt.Fprintf(&b, "- **Temperature**: %.1f°C (Feels like: %.1f°C)\n", r.Temperature, r.FeelsLike)
		fmt.Fprintf(&b, "- **Description**: %s\n", capitalize(r.Description))
		fmt.Fprintf(&b, "- **Humidity**: %d%%\n", r.Humidity)
		fmt.Fprintf(&b, "- **Wind Speed**: %s m/s\n", formatSpeed(r.WindSpeed))
		fmt.Fprintf(&b, "- **Pressure**: %g hPa\n\n", r.Pressure)
	}
	return b.String()
}

// WriteMarkdown writes the rendered report to path.
func WriteMarkdown(records []weather.CurrentRecord, generatedAt time.Time, path string) error {
	if err := os.WriteFile(path, []byte(Markdown(records, generatedAt)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ExportCSV serializes a record slice to path. Pass a pointer to the slice,
// e.g. ExportCSV(&records, "output/current_weather.csv"). Timestamps come
// out in RFC 3339 via time.Time's text marshaller.
func ExportCSV(records any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := gocsv.MarshalFile(records, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ExportJSON serializes the current-weather table to a JSON array of
// records with ISO-8601 timestamps.
func ExportJSON(records []weather.CurrentRecord, path string) error {
	if records == nil {
		records = []weather.CurrentRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// formatSpeed prints wind speed at full precision, keeping a trailing .0 on
// whole numbers (3.0 m/s, not 3 m/s).
func formatSpeed(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// capitalize upper-cases the first rune and lower-cases the rest, matching
// how descriptions like "clear sky" appear in the report.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
