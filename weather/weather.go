// backend/weather/weather.go
package weather

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/flexwatch/flexwatch/backend/cache"
	"github.com/flexwatch/flexwatch/backend/models"
)

// Source fetches TAF and METAR products from the aviationweather.gov
// data API. Every successful fetch, empty answers included, is cached
// per (kind, station) for the configured TTL; expired entries are
// refetched transparently.
// Failures degrade to empty results with a logged warning, never to a
// fatal error.
type Source struct {
	baseURL          string
	observationHours int
	ttl              time.Duration
	client           *http.Client

	forecasts    *cache.Cache[string]
	observations *cache.Cache[[]string]
}

func NewSource(baseURL string, observationHours int, ttl, fetchTimeout time.Duration) *Source {
	return &Source{
		baseURL:          strings.TrimRight(baseURL, "/"),
		observationHours: observationHours,
		ttl:              ttl,
		client:           &http.Client{Timeout: fetchTimeout},
		forecasts:        cache.New[string](),
		observations:     cache.New[[]string](),
	}
}

// Forecast returns the current TAF for a station as a single
// whitespace-collapsed line, or "" when none could be retrieved.
func (s *Source) Forecast(station models.StationCode) string {
	key := station.String()
	if cached, ok := s.forecasts.Get(key); ok {
		return cached
	}

	url := fmt.Sprintf("%s/api/data/taf?ids=%s", s.baseURL, station)
	lines, err := s.fetchLines(url)
	if err != nil {
		log.Printf("WARN Weather: TAF fetch for %s failed: %v", station, err)
		return ""
	}
	// A header-only response is a definitive "no TAF" answer; cache it
	// under the same TTL so the station is not re-fetched every call.
	taf := strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
	s.forecasts.Set(key, taf, s.ttl)
	return taf
}

// RecentObservations returns the station's METAR history for the
// configured lookback window, most recent first, or nil when none
// could be retrieved.
func (s *Source) RecentObservations(station models.StationCode) []string {
	key := station.String()
	if cached, ok := s.observations.Get(key); ok {
		return cached
	}

	url := fmt.Sprintf("%s/api/data/metar?ids=%s&hours=%d&format=raw",
		s.baseURL, station, s.observationHours)
	lines, err := s.fetchLines(url)
	if err != nil {
		log.Printf("WARN Weather: METAR fetch for %s failed: %v", station, err)
		return nil
	}
	// Empty histories cache too, matching the forecast behavior.
	s.observations.Set(key, lines, s.ttl)
	return lines
}

// Report bundles both products with a retrieval timestamp.
func (s *Source) Report(station models.StationCode) models.WeatherReport {
	return models.WeatherReport{
		Station:      station,
		Forecast:     s.Forecast(station),
		Observations: s.RecentObservations(station),
		RetrievedAt:  time.Now().UTC(),
	}
}

// fetchLines GETs a line-oriented API response, discards the one-line
// header the API prepends, and returns the trimmed data lines.
func (s *Source) fetchLines(url string) ([]string, error) {
	resp, err := s.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: received status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	raw := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(raw) < 2 {
		// Header only: the station has no data in the window.
		return nil, nil
	}

	lines := make([]string, 0, len(raw)-1)
	for _, line := range raw[1:] {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines, nil
}
