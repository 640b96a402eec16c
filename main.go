// backend/main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/flexwatch/flexwatch/backend/ai"
	"github.com/flexwatch/flexwatch/backend/config"
	"github.com/flexwatch/flexwatch/backend/handlers"
	"github.com/flexwatch/flexwatch/backend/runways"
	"github.com/flexwatch/flexwatch/backend/scraper"
	"github.com/flexwatch/flexwatch/backend/services"
	"github.com/flexwatch/flexwatch/backend/weather"
)

func main() {
	log.Println("Starting FLEX WATCH Backend Application...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment and config file")
	}

	configPath := "config/config.yaml"
	if env := os.Getenv("FLEXWATCH_CONFIG"); env != "" {
		configPath = env
	}
	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Printf("Configuration loaded. Server port: %s, portal: %s",
		config.AppConfig.Server.Port, config.AppConfig.Portal.URL)

	runwayIndex, err := runways.Load(config.AppConfig.Runways.CSVPath)
	if err != nil {
		// Degraded mode: briefings proceed without runway context.
		log.Printf("WARN: %v", err)
	}

	aiClient := ai.NewClient(config.AppConfig.AI.BaseURL, config.AppConfig.AI.APIKey, config.AppConfig.AI.CallTimeout)
	weatherSource := weather.NewSource(
		config.AppConfig.Weather.BaseURL,
		config.AppConfig.Weather.ObservationHours,
		config.AppConfig.Weather.CacheTTL,
		config.AppConfig.Weather.FetchTimeout,
	)
	notamSource := scraper.NewSource(config.AppConfig.Portal, config.AppConfig.Selectors, aiClient, config.AppConfig.AI.Models)

	briefingService := services.NewBriefingService(weatherSource, aiClient, config.AppConfig.AI.Models)
	healthService := services.NewHealthCheckService(weatherSource, notamSource, runwayIndex, aiClient, config.AppConfig.AI.Models)

	briefingHandler := &handlers.BriefingHandler{Briefings: briefingService}
	notamHandler := &handlers.NotamHandler{Notams: notamSource, Runways: runwayIndex}
	healthHandler := &handlers.HealthCheckHandler{Pipeline: healthService}

	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status": "ok", "message": "FLEX WATCH backend is healthy"}`)
	})
	http.HandleFunc("/api/weather/briefing", briefingHandler.GetWeatherBriefing)
	http.HandleFunc("/api/notams/analyze", notamHandler.AnalyzeNotams)
	http.HandleFunc("/api/itinerary/health", healthHandler.RunItineraryHealthCheck)

	serverAddr := ":" + config.AppConfig.Server.Port
	log.Printf("Server starting on http://localhost%s\n", serverAddr)
	if err := http.ListenAndServe(serverAddr, nil); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
