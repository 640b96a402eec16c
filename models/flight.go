// backend/models/flight.go
package models

import "strings"

// FlightLeg is one scheduled segment of an operator itinerary as pasted
// from the scheduling system. Endpoint codes are carried in both the
// commercial (IATA) and regulatory (ICAO) forms; the ICAO forms drive
// all data fetches. Analysis is attached exactly once by the pipeline.
type FlightLeg struct {
	Flight       string      `json:"flight"`
	FromIATA     string      `json:"from_iata"`
	ToIATA       string      `json:"to_iata"`
	FromICAO     StationCode `json:"from_icao"`
	ToICAO       StationCode `json:"to_icao"`
	STD          string      `json:"std"` // scheduled departure, UTC
	STA          string      `json:"sta"` // scheduled arrival, UTC
	Registration string      `json:"registration"`
	Analysis     AIResponse  `json:"analysis,omitempty"`
}

// Itinerary is the operator-entered ordered sequence of legs. Order is
// preserved end to end; it is the natural report ordering.
type Itinerary []FlightLeg

// HealthStatus is the coarse classification bucket parsed from the
// leading marker of a flight health narrative.
type HealthStatus string

const (
	HealthNormal  HealthStatus = "Normal"
	HealthMonitor HealthStatus = "Monitor"
	HealthAtRisk  HealthStatus = "At Risk"
	HealthUnknown HealthStatus = "Unknown"
)

// HealthStatusOf does a best-effort parse of the classification marker
// the evaluator asks models to lead with. The marker is a prompt
// convention, not a guarantee, so unrecognized output maps to
// HealthUnknown rather than an error.
func HealthStatusOf(a AIResponse) HealthStatus {
	head := string(a)
	if len(head) > 40 {
		head = head[:40]
	}
	switch {
	case strings.Contains(head, string(HealthAtRisk)), strings.Contains(head, "❌"):
		return HealthAtRisk
	case strings.Contains(head, string(HealthMonitor)), strings.Contains(head, "⚠️"):
		return HealthMonitor
	case strings.Contains(head, string(HealthNormal)), strings.Contains(head, "✅"):
		return HealthNormal
	default:
		return HealthUnknown
	}
}
