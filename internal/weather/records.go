package weather

import (
	"fmt"
	"time"
)

// CurrentRecord is one flattened row of the current-weather table.
type CurrentRecord struct {
	City        string    `csv:"city" json:"city"`
	Temperature float64   `csv:"temperature" json:"temperature"`
	FeelsLike   float64   `csv:"feels_like" json:"feels_like"`
	Humidity    int       `csv:"humidity" json:"humidity"`
	Pressure    float64   `csv:"pressure" json:"pressure"`
	WindSpeed   float64   `csv:"wind_speed" json:"wind_speed"`
	Description string    `csv:"description" json:"description"`
	Timestamp   time.Time `csv:"timestamp" json:"timestamp"`
}

// ForecastRecord is one flattened row of the forecast table, one per
// (city, 3-hour slot) pair.
type ForecastRecord struct {
	City         string    `csv:"city" json:"city"`
	Temperature  float64   `csv:"temperature" json:"temperature"`
	FeelsLike    float64   `csv:"feels_like" json:"feels_like"`
	Humidity     int       `csv:"humidity" json:"humidity"`
	Pressure     float64   `csv:"pressure" json:"pressure"`
	WindSpeed    float64   `csv:"wind_speed" json:"wind_speed"`
	Description  string    `csv:"description" json:"description"`
	Timestamp    time.Time `csv:"timestamp" json:"timestamp"`
	ForecastTime string    `csv:"forecast_time" json:"forecast_time"`
}

// FlattenCurrent builds the current-weather table from the raw payload map.
// Rows come out in city-list order; cities absent from the map (failed
// fetches) are skipped and duplicate city entries collapse to a single row,
// since there is only one payload per city. A payload missing a required
// object is a contract violation and fails the whole transform.
func FlattenCurrent(cities []string, payloads map[string]*CurrentResponse) ([]CurrentRecord, error) {
	records := make([]CurrentRecord, 0, len(payloads))
	seen := make(map[string]bool, len(payloads))
	for _, city := range cities {
		data, ok := payloads[city]
		if !ok || seen[city] {
			continue
		}
		seen[city] = true
		if err := validatePayload(city, data.Main, data.Wind, data.Weather); err != nil {
			return nil, err
		}
		records = append(records, CurrentRecord{
			City:        city,
			Temperature: data.Main.Temp,
			FeelsLike:   data.Main.FeelsLike,
			Humidity:    data.Main.Humidity,
			Pressure:    data.Main.Pressure,
			WindSpeed:   data.Wind.Speed,
			Description: data.Weather[0].Description,
			Timestamp:   time.Unix(data.Dt, 0),
		})
	}
	return records, nil
}

// FlattenForecast builds the forecast table, one row per slot of each
// present city's "list" array.
func FlattenForecast(cities []string, payloads map[string]*ForecastResponse) ([]ForecastRecord, error) {
	var records []ForecastRecord
	seen := make(map[string]bool, len(payloads))
	for _, city := range cities {
		data, ok := payloads[city]
		if !ok || seen[city] {
			continue
		}
		seen[city] = true
		for _, slot := range data.List {
			if err := validatePayload(city, slot.Main, slot.Wind, slot.Weather); err != nil {
				return nil, err
			}
			records = append(records, ForecastRecord{
				City:         city,
				Temperature:  slot.Main.Temp,
				FeelsLike:    slot.Main.FeelsLike,
				Humidity:     slot.Main.Humidity,
				Pressure:     slot.Main.Pressure,
				WindSpeed:    slot.Wind.Speed,
				Description:  slot.Weather[0].Description,
				Timestamp:    time.Unix(slot.Dt, 0),
				ForecastTime: slot.DtTxt,
			})
		}
	}
	return records, nil
}

func validatePayload(city string, main *Conditions, wind *Wind, conditions []Condition) error {
	switch {
	case main == nil:
		return fmt.Errorf("payload for %q is missing the \"main\" object", city)
	case wind == nil:
		return fmt.Errorf("payload for %q is missing the \"wind\" object", city)
	case len(conditions) == 0:
		return fmt.Errorf("payload for %q has an empty \"weather\" array", city)
	}
	return nil
}
