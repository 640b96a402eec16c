// backend/cmd/notamfetch/main.go
//
// notamfetch fetches and analyzes the NOTAMs for exactly one station
// and writes the summary to notam_result_<ICAO>.txt. Exit code 0 means
// a results file with the analysis; exit code 1 means a results file
// with error content. Callers only look at the exit code and the file.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/flexwatch/flexwatch/backend/ai"
	"github.com/flexwatch/flexwatch/backend/config"
	"github.com/flexwatch/flexwatch/backend/models"
	"github.com/flexwatch/flexwatch/backend/runways"
	"github.com/flexwatch/flexwatch/backend/scraper"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: notamfetch <ICAO_CODE>")
		os.Exit(1)
	}

	station := models.NormalizeStationCode(os.Args[1])
	resultFile := fmt.Sprintf("notam_result_%s.txt", station)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment and config file")
	}
	if err := config.LoadConfig(os.Getenv("FLEXWATCH_CONFIG")); err != nil {
		fail(resultFile, station, err)
	}

	if !station.IsValid() {
		fail(resultFile, station, fmt.Errorf("invalid station code %q", os.Args[1]))
	}

	runwayIndex, err := runways.Load(config.AppConfig.Runways.CSVPath)
	if err != nil {
		log.Printf("WARN: %v", err)
	}

	aiClient := ai.NewClient(config.AppConfig.AI.BaseURL, config.AppConfig.AI.APIKey, config.AppConfig.AI.CallTimeout)
	source := scraper.NewSource(config.AppConfig.Portal, config.AppConfig.Selectors, aiClient, config.AppConfig.AI.Models)

	ctx := context.Background()
	batch, err := source.FetchNotices(ctx, station)
	if err != nil {
		fail(resultFile, station, err)
	}

	summary := source.Classify(ctx, batch, station, runwayIndex.RunwaysFor(station))
	if err := os.WriteFile(resultFile, []byte(summary), 0644); err != nil {
		log.Fatalf("Failed to write results file: %v", err)
	}
	log.Printf("SUCCESS: summary saved to %s", resultFile)
}

// fail writes an error-content results file and exits non-zero, so the
// calling process always finds a file to display.
func fail(resultFile string, station models.StationCode, cause error) {
	log.Printf("ERROR: could not retrieve NOTAM information for %s: %v", station, cause)
	content := fmt.Sprintf("❌ Could not retrieve NOTAM information for %s.", station)
	if err := os.WriteFile(resultFile, []byte(content), 0644); err != nil {
		log.Printf("ERROR: failed to write results file: %v", err)
	}
	os.Exit(1)
}
