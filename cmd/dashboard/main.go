package main

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dessperado95/weather-dashboard/internal/config"
	"github.com/dessperado95/weather-dashboard/internal/dashboard"
	"github.com/dessperado95/weather-dashboard/internal/weather/openweathermap"
)

func main() {
	// Exit code stays 0 even on failure; errors are reported with a
	// recovery hint instead.
	_ = newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	var (
		cities    []string
		apiKey    string
		outputDir string
		schedule  string
	)

	cmd := &cobra.Command{
		Use:   "weather-dashboard",
		Short: "Fetch weather data and generate charts, a report and data exports",
		Long: "weather-dashboard fetches current weather and 5-day forecasts for a list of\n" +
			"cities from OpenWeatherMap and writes charts, a Markdown report and CSV/JSON\n" +
			"exports to the output directory.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(cities, apiKey, outputDir, schedule); err != nil {
				fmt.Printf("Error: %v\n\n", err)
				fmt.Println("To use this dashboard:")
				fmt.Println("  1. Get a free API key from https://openweathermap.org/")
				fmt.Println("  2. Set it as the OPENWEATHER_API_KEY environment variable or pass it with --api-key")
				fmt.Println("  3. Run the command again")
			}
		},
	}

	cmd.Flags().StringSliceVar(&cities, "cities", config.DefaultCities,
		"cities to fetch weather data for")
	cmd.Flags().StringVar(&apiKey, "api-key", "",
		"OpenWeatherMap API key (optional if OPENWEATHER_API_KEY is set)")
	cmd.Flags().StringVar(&outputDir, "output", "output",
		"directory for generated charts, report and exports")
	cmd.Flags().StringVar(&schedule, "schedule", "",
		"cron spec to re-run the dashboard periodically (default: run once)")
	return cmd
}

func run(cities []string, apiKey, outputDir, schedule string) error {
	cfg, err := config.Load(apiKey)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("cannot initialize logger: %w", err)
	}
	defer logger.Sync()

	client := openweathermap.NewClient(cfg.BaseURL, cfg.APIKey)
	d := dashboard.New(client, outputDir, logger)
	for _, city := range cities {
		d.AddCity(city)
	}

	ctx := context.Background()
	if schedule == "" {
		return d.Run(ctx)
	}

	// Scheduled mode: validate the spec, run once immediately, then keep
	// re-running on the schedule. Failed runs are logged, not fatal.
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := d.Run(ctx); err != nil {
			logger.Error("scheduled dashboard run failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid --schedule %q: %w", schedule, err)
	}

	if err := d.Run(ctx); err != nil {
		logger.Error("dashboard run failed", zap.Error(err))
	}
	logger.Info("starting scheduler", zap.String("cronSpec", schedule))
	c.Run()
	return nil
}
