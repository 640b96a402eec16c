// backend/services/briefing_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/flexwatch/flexwatch/backend/models"
)

// StationBriefing is the per-station weather analysis: a METAR trend
// read and a plain-language TAF translation.
type StationBriefing struct {
	Station          models.StationCode `json:"station"`
	RawForecast      string             `json:"raw_forecast,omitempty"`
	RawObservations  []string           `json:"raw_observations,omitempty"`
	ForecastSummary  models.AIResponse  `json:"forecast_summary,omitempty"`
	TrendSummary     models.AIResponse  `json:"trend_summary,omitempty"`
}

// BriefingService produces standalone weather briefings for stations,
// independent of any itinerary.
type BriefingService struct {
	weather WeatherProvider
	ai      Completer
	models  []string
}

func NewBriefingService(weather WeatherProvider, ai Completer, modelList []string) *BriefingService {
	return &BriefingService{weather: weather, ai: ai, models: modelList}
}

// WeatherBriefing fetches and analyzes both weather products for one
// station. Missing products are reported in the summaries rather than
// failing the briefing.
func (s *BriefingService) WeatherBriefing(ctx context.Context, station models.StationCode) StationBriefing {
	briefing := StationBriefing{Station: station}

	briefing.RawObservations = s.weather.RecentObservations(station)
	if len(briefing.RawObservations) > 0 {
		briefing.TrendSummary = models.AIResponse(
			s.ai.Complete(ctx, buildTrendPrompt(briefing.RawObservations, station), s.models))
	} else {
		log.Printf("WARN Service: no METAR history found for %s", station)
		briefing.TrendSummary = "No METAR history found."
	}

	briefing.RawForecast = s.weather.Forecast(station)
	if briefing.RawForecast != "" {
		briefing.ForecastSummary = models.AIResponse(
			s.ai.Complete(ctx, buildForecastPrompt(briefing.RawForecast, station), s.models))
	} else {
		log.Printf("WARN Service: no TAF found for %s", station)
		briefing.ForecastSummary = "No TAF found."
	}

	return briefing
}

func buildForecastPrompt(rawTAF string, station models.StationCode) string {
	return fmt.Sprintf(`You are an expert meteorologist. Translate the following TAF for station %s into a clear, concise summary, explaining wind, visibility, clouds and any change groups (TEMPO, BECMG, FM) in practical terms without omitting technical data. Finish with notes for the pilot and dispatcher stating the time of the most adverse conditions, and flag anything below weather minimums (500 ft ceiling).

RAW TAF:
%s`, station, rawTAF)
}

func buildTrendPrompt(observations []string, station models.StationCode) string {
	history := strings.Join(observations, "\n")
	return fmt.Sprintf(`You are an expert meteorologist. Below is the chronological sequence of the most recent METARs for station %s. Analyze these reports and determine the weather trend.

METAR HISTORY (most recent first):
%s

1. **Trend:** Reply with a brief summary (one or two sentences, keep the technical data) stating whether conditions are improving, deteriorating or holding stable. Focus on visibility changes, cloud ceilings (BKN/OVC) and significant phenomena. Use an up arrow (⬆️) when improving, a down arrow (⬇️) when deteriorating, and an equals sign (=) when stable. Include a very brief outlook for the next hour.
2. **Current METAR:** State the technical content of the most recent METAR (first in the list): wind, visibility, clouds and any significant phenomena.`, station, history)
}
