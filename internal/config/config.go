package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// DefaultCities is the city list used when --cities is not given.
var DefaultCities = []string{"Moscow", "Saint Petersburg", "Novosibirsk", "Yekaterinburg", "Kazan"}

// Config holds the settings needed to talk to the OpenWeatherMap API.
type Config struct {
	APIKey  string
	BaseURL string
}

// Load resolves the API key and base URL. A non-empty apiKey argument (from
// the --api-key flag) takes precedence over the OPENWEATHER_API_KEY
// environment variable. A .env file in the working directory is loaded
// best-effort first, so keys kept there are picked up like any other
// environment variable.
func Load(apiKey string) (*Config, error) {
	_ = godotenv.Load()

	if apiKey == "" {
		apiKey = os.Getenv("OPENWEATHER_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required: set the OPENWEATHER_API_KEY environment variable or pass it with --api-key")
	}

	baseURL := os.Getenv("OPENWEATHER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Config{
		APIKey:  apiKey,
		BaseURL: baseURL,
	}, nil
}
