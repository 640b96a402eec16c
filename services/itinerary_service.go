// backend/services/itinerary_service.go
package services

import (
	"context"
	"log"

	"github.com/flexwatch/flexwatch/backend/models"
)

// WeatherProvider is the slice of the weather source the pipeline needs.
type WeatherProvider interface {
	Forecast(station models.StationCode) string
	RecentObservations(station models.StationCode) []string
	Report(station models.StationCode) models.WeatherReport
}

// RunwayLookup is the slice of the runway index the pipeline needs.
type RunwayLookup interface {
	RunwaysFor(station models.StationCode) models.RunwaySet
}

// NoticeFetcher is the slice of the NOTAM scraper the pipeline needs.
type NoticeFetcher interface {
	FetchNotices(ctx context.Context, stations ...models.StationCode) (models.NoticeBatch, error)
	Classify(ctx context.Context, batch models.NoticeBatch, station models.StationCode, runwaySet models.RunwaySet) models.AIResponse
}

// HealthCheckService runs the itinerary health-check pipeline:
// weather, notices and runway context in, one classified narrative per
// leg out. Stations are fetched sequentially; the portal does not
// tolerate concurrent automated sessions.
type HealthCheckService struct {
	weather WeatherProvider
	notams  NoticeFetcher
	runways RunwayLookup
	ai      Completer
	models  []string
}

func NewHealthCheckService(weather WeatherProvider, notams NoticeFetcher, runways RunwayLookup, ai Completer, modelList []string) *HealthCheckService {
	return &HealthCheckService{
		weather: weather,
		notams:  notams,
		runways: runways,
		ai:      ai,
		models:  modelList,
	}
}

// RunHealthCheck analyzes every leg of the itinerary and returns a new
// itinerary with an analysis attached to each leg, in the input order.
// The browser-driven NOTAM work is de-duplicated: each distinct station
// is fetched and classified exactly once no matter how many legs touch
// it. Legs with unresolved stations receive placeholder context and
// proceed, so leg count and ordering are always preserved.
func (s *HealthCheckService) RunHealthCheck(ctx context.Context, itinerary models.Itinerary) models.Itinerary {
	stations := distinctStations(itinerary)
	log.Printf("Service: health check for %d legs across %d distinct stations", len(itinerary), len(stations))

	noticeSummaries := make(map[models.StationCode]models.AIResponse, len(stations))
	for _, station := range stations {
		noticeSummaries[station] = s.fetchAndClassify(ctx, station)
	}

	result := make(models.Itinerary, 0, len(itinerary))
	for _, leg := range itinerary {
		leg.Analysis = s.evaluateLeg(ctx, leg, noticeSummaries)
		result = append(result, leg)
	}
	return result
}

func (s *HealthCheckService) fetchAndClassify(ctx context.Context, station models.StationCode) models.AIResponse {
	batch, err := s.notams.FetchNotices(ctx, station)
	if err != nil {
		log.Printf("ERROR Service: NOTAM fetch for %s failed: %v", station, err)
		return models.AIResponse("Could not retrieve NOTAMs for " + station.String() + ".")
	}
	return s.notams.Classify(ctx, batch, station, s.runways.RunwaysFor(station))
}

func (s *HealthCheckService) evaluateLeg(ctx context.Context, leg models.FlightLeg, noticeSummaries map[models.StationCode]models.AIResponse) models.AIResponse {
	wxOrigin := s.stationWeather(leg.FromICAO)
	wxDest := s.stationWeather(leg.ToICAO)

	noticesOrigin := summaryFor(noticeSummaries, leg.FromICAO)
	noticesDest := summaryFor(noticeSummaries, leg.ToICAO)

	return s.EvaluateFlightHealth(ctx, leg,
		wxOrigin, wxDest,
		noticesOrigin, noticesDest,
		s.runways.RunwaysFor(leg.FromICAO), s.runways.RunwaysFor(leg.ToICAO))
}

// stationWeather returns the leg endpoint's weather context. Unresolved
// stations get an explicit placeholder report instead of a fetch.
func (s *HealthCheckService) stationWeather(station models.StationCode) models.WeatherReport {
	if !station.IsValid() {
		return models.WeatherReport{Station: station, Forecast: "Invalid or unresolved station code"}
	}
	return s.weather.Report(station)
}

func summaryFor(summaries map[models.StationCode]models.AIResponse, station models.StationCode) models.AIResponse {
	if summary, ok := summaries[station]; ok {
		return summary
	}
	return ""
}

// distinctStations collects every resolvable station referenced by any
// leg endpoint, first-seen order, translation sentinel excluded.
func distinctStations(itinerary models.Itinerary) []models.StationCode {
	seen := make(map[models.StationCode]bool)
	var stations []models.StationCode
	for _, leg := range itinerary {
		for _, station := range []models.StationCode{leg.FromICAO, leg.ToICAO} {
			if station.IsValid() && !seen[station] {
				seen[station] = true
				stations = append(stations, station)
			}
		}
	}
	return stations
}
