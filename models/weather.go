// backend/models/weather.go
package models

import "time"

// WeatherReport holds the raw weather products retrieved for one
// station. Forecast is the TAF text ("" when unavailable); Observations
// is the METAR history, most recent first (nil when unavailable).
type WeatherReport struct {
	Station      StationCode `json:"station"`
	Forecast     string      `json:"forecast,omitempty"`
	Observations []string    `json:"observations,omitempty"`
	RetrievedAt  time.Time   `json:"retrieved_at"`
}

// HasForecast reports whether a TAF was retrieved.
func (w WeatherReport) HasForecast() bool {
	return w.Forecast != ""
}

// HasObservations reports whether any METAR history was retrieved.
func (w WeatherReport) HasObservations() bool {
	return len(w.Observations) > 0
}
