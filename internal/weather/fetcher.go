package weather

import (
	"context"
	"fmt"
	"net/http"
)

// Fetcher retrieves raw weather payloads for a single city.
type Fetcher interface {
	FetchCurrent(ctx context.Context, city string) (*CurrentResponse, error)
	FetchForecast(ctx context.Context, city string) (*ForecastResponse, error)
}

// StatusError reports a non-200 response from the weather API. Callers treat
// it as a soft, per-city failure: the city is logged and skipped while the
// rest of the pipeline continues.
type StatusError struct {
	City       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s fetching weather for %q",
		e.StatusCode, http.StatusText(e.StatusCode), e.City)
}

// Conditions is the "main" object shared by the current-weather and forecast
// payloads.
type Conditions struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
	Pressure  float64 `json:"pressure"`
}

// Wind is the "wind" object of a weather payload.
type Wind struct {
	Speed float64 `json:"speed"`
}

// Condition is one entry of the "weather" array.
type Condition struct {
	Description string `json:"description"`
}

// CurrentResponse is the relevant subset of the /weather payload. Main and
// Wind are pointers so a payload that violates the API contract is
// detectable when flattening.
type CurrentResponse struct {
	Main    *Conditions `json:"main"`
	Wind    *Wind       `json:"wind"`
	Weather []Condition `json:"weather"`
	Dt      int64       `json:"dt"`
}

// ForecastSlot is one 3-hour entry of the /forecast "list" array.
type ForecastSlot struct {
	Main    *Conditions `json:"main"`
	Wind    *Wind       `json:"wind"`
	Weather []Condition `json:"weather"`
	Dt      int64       `json:"dt"`
	DtTxt   string      `json:"dt_txt"`
}

// ForecastResponse is the relevant subset of the /forecast payload.
type ForecastResponse struct {
	List []ForecastSlot `json:"list"`
}
