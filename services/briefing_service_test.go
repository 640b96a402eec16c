package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexwatch/flexwatch/backend/models"
)

type briefingWeather struct {
	forecast     string
	observations []string
}

func (b *briefingWeather) Forecast(models.StationCode) string             { return b.forecast }
func (b *briefingWeather) RecentObservations(models.StationCode) []string { return b.observations }

func (b *briefingWeather) Report(station models.StationCode) models.WeatherReport {
	return models.WeatherReport{Station: station, Forecast: b.forecast, Observations: b.observations}
}

func TestWeatherBriefing(t *testing.T) {
	weather := &briefingWeather{
		forecast:     "TAF SKRG 241100Z 2412/2512 36005KT 9999 BKN015",
		observations: []string{"SKRG 241300Z 36004KT 9999 BKN018", "SKRG 241200Z 35003KT 8000 BKN012"},
	}
	ai := &recordingCompleter{}
	svc := NewBriefingService(weather, ai, []string{"m1"})

	briefing := svc.WeatherBriefing(context.Background(), "SKRG")

	assert.Equal(t, models.StationCode("SKRG"), briefing.Station)
	assert.NotEmpty(t, briefing.TrendSummary)
	assert.NotEmpty(t, briefing.ForecastSummary)
	require.Len(t, ai.prompts, 2, "one trend analysis and one forecast translation")
	assert.Contains(t, ai.prompts[0], "SKRG 241300Z")
	assert.Contains(t, ai.prompts[0], "weather trend")
	assert.Contains(t, ai.prompts[1], "TAF SKRG 241100Z")
}

func TestWeatherBriefingMissingProducts(t *testing.T) {
	ai := &recordingCompleter{}
	svc := NewBriefingService(&briefingWeather{}, ai, []string{"m1"})

	briefing := svc.WeatherBriefing(context.Background(), "ZZZZ")

	assert.Equal(t, models.AIResponse("No METAR history found."), briefing.TrendSummary)
	assert.Equal(t, models.AIResponse("No TAF found."), briefing.ForecastSummary)
	assert.Empty(t, ai.prompts, "missing products must not reach the AI layer")
}
