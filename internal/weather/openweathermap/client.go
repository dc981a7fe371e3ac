package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dessperado95/weather-dashboard/internal/weather"
)

// Client queries the OpenWeatherMap current-weather and 5-day forecast
// endpoints with metric units.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ weather.Fetcher = (*Client)(nil)

// NewClient returns a client rooted at baseURL (normally
// https://api.openweathermap.org/data/2.5). Requests time out after
// 10 seconds.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchCurrent implements weather.Fetcher for the /weather endpoint.
func (c *Client) FetchCurrent(ctx context.Context, city string) (*weather.CurrentResponse, error) {
	var body weather.CurrentResponse
	if err := c.get(ctx, "/weather", city, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// FetchForecast implements weather.Fetcher for the /forecast endpoint,
// which returns 3-hour slots covering the next five days.
func (c *Client) FetchForecast(ctx context.Context, city string) (*weather.ForecastResponse, error) {
	var body weather.ForecastResponse
	if err := c.get(ctx, "/forecast", city, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (c *Client) get(ctx context.Context, path, city string, out any) error {
	reqURL := fmt.Sprintf("%s%s?q=%s&appid=%s&units=metric",
		c.baseURL, path, url.QueryEscape(city), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("openweathermap: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openweathermap: HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &weather.StatusError{City: city, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openweathermap: JSON decode error: %w", err)
	}
	return nil
}
