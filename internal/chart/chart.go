// Package chart renders the dashboard's three PNG artifacts from the
// flattened weather tables.
package chart

import (
	"fmt"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	ptext "gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/dessperado95/weather-dashboard/internal/weather"
)

// ForecastWindow is how far ahead of "now" the trend chart plots.
const ForecastWindow = 5 * 24 * time.Hour

// TemperatureComparison writes a bar chart with one bar per city from the
// current-weather table, each annotated with its value.
func TemperatureComparison(records []weather.CurrentRecord, path string) error {
	p := plot.New()
	p.Title.Text = "Current Temperature Comparison Across Cities"
	p.X.Label.Text = "City"
	p.Y.Label.Text = "Temperature (°C)"

	names := make([]string, len(records))
	values := make(plotter.Values, len(records))
	for i, r := range records {
		names[i] = r.City
		values[i] = r.Temperature
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("temperature comparison bars: %w", err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)

	if err := addBarLabels(p, values, "%.1f°C"); err != nil {
		return err
	}
	return p.Save(12*vg.Inch, 6*vg.Inch, path)
}

// ForecastTrends writes a line chart of temperature against time, one line
// per city, restricted to slots no later than now plus ForecastWindow.
func ForecastTrends(records []weather.ForecastRecord, cities []string, now time.Time, path string) error {
	p := plot.New()
	p.Title.Text = "5-Day Temperature Forecast"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Temperature (°C)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02 15:04"}
	p.Legend.Top = true

	windowed := WithinWindow(records, now)
	for i, city := range cities {
		var pts plotter.XYs
		for _, r := range windowed {
			if r.City == city {
				pts = append(pts, plotter.XY{X: float64(r.Timestamp.Unix()), Y: r.Temperature})
			}
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("forecast trend line for %q: %w", city, err)
		}
		line.LineStyle.Width = vg.Points(2.5)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(city, line)
	}

	return p.Save(14*vg.Inch, 8*vg.Inch, path)
}

// WithinWindow returns the records whose timestamp falls at or before
// now plus ForecastWindow. Later slots are dropped from the trend chart.
func WithinWindow(records []weather.ForecastRecord, now time.Time) []weather.ForecastRecord {
	cutoff := now.Add(ForecastWindow)
	out := make([]weather.ForecastRecord, 0, len(records))
	for _, r := range records {
		if !r.Timestamp.After(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// WeatherParameters writes a 2x2 grid of bar charts for temperature,
// humidity, wind speed and pressure, in that order.
func WeatherParameters(records []weather.CurrentRecord, path string) error {
	params := []struct {
		title string
		value func(weather.CurrentRecord) float64
	}{
		{"Current Temperature", func(r weather.CurrentRecord) float64 { return r.Temperature }},
		{"Current Humidity", func(r weather.CurrentRecord) float64 { return float64(r.Humidity) }},
		{"Current Wind Speed", func(r weather.CurrentRecord) float64 { return r.WindSpeed }},
		{"Current Pressure", func(r weather.CurrentRecord) float64 { return r.Pressure }},
	}

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.City
	}

	plots := make([][]*plot.Plot, 2)
	for i, prm := range params {
		p := plot.New()
		p.Title.Text = prm.title

		values := make(plotter.Values, len(records))
		for j, r := range records {
			values[j] = prm.value(r)
		}

		bars, err := plotter.NewBarChart(values, vg.Points(30))
		if err != nil {
			return fmt.Errorf("%s bars: %w", prm.title, err)
		}
		bars.Color = plotutil.Color(i)
		p.Add(bars)
		p.NominalX(names...)

		if err := addBarLabels(p, values, "%.1f"); err != nil {
			return err
		}
		plots[i/2] = append(plots[i/2], p)
	}

	img := vgimg.New(16*vg.Inch, 12*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: vg.Points(20), PadY: vg.Points(20),
		PadTop: vg.Points(10), PadBottom: vg.Points(10),
		PadLeft: vg.Points(10), PadRight: vg.Points(10),
	}
	canvases := plot.Align(plots, tiles, dc)
	for row := range plots {
		for col := range plots[row] {
			plots[row][col].Draw(canvases[row][col])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// addBarLabels annotates each bar with its value, centered above the bar top.
func addBarLabels(p *plot.Plot, values plotter.Values, format string) error {
	xys := make(plotter.XYs, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v}
		labels[i] = fmt.Sprintf(format, v)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("bar labels: %w", err)
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = ptext.XCenter
		l.TextStyle[i].YAlign = ptext.YBottom
	}
	p.Add(l)
	return nil
}
