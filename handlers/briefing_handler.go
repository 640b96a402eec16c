// backend/handlers/briefing_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/flexwatch/flexwatch/backend/models"
	"github.com/flexwatch/flexwatch/backend/services"
	"github.com/flexwatch/flexwatch/backend/utils"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Handler ERROR: marshalling JSON response: %v", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	log.Printf("Handler API Error %d: %s", code, message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

// BriefingHandler exposes the per-station weather briefing.
type BriefingHandler struct {
	Briefings *services.BriefingService
}

// GetWeatherBriefing handles GET /api/weather/briefing?station=XXXX.
func (h *BriefingHandler) GetWeatherBriefing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	station := models.NormalizeStationCode(r.URL.Query().Get("station"))
	if !station.IsValid() {
		respondWithError(w, http.StatusBadRequest, "Missing or invalid 'station' query parameter (4-letter ICAO code expected)")
		return
	}

	briefing := h.Briefings.WeatherBriefing(r.Context(), station)
	respondWithJSON(w, http.StatusOK, briefing)
}

// itineraryRequest is the pasted-itinerary payload. Endpoint codes may
// be IATA or ICAO; translation happens server-side.
type itineraryRequest struct {
	Legs []struct {
		Flight       string `json:"flight"`
		From         string `json:"from"`
		To           string `json:"to"`
		STD          string `json:"std"`
		STA          string `json:"sta"`
		Registration string `json:"registration"`
	} `json:"legs"`
}

// HealthCheckHandler exposes the itinerary pipeline.
type HealthCheckHandler struct {
	Pipeline *services.HealthCheckService
}

// RunItineraryHealthCheck handles POST /api/itinerary/health.
func (h *HealthCheckHandler) RunItineraryHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req itineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if len(req.Legs) == 0 {
		respondWithError(w, http.StatusBadRequest, "Itinerary has no legs")
		return
	}

	itinerary := make(models.Itinerary, 0, len(req.Legs))
	for _, leg := range req.Legs {
		itinerary = append(itinerary, models.FlightLeg{
			Flight:       leg.Flight,
			FromIATA:     leg.From,
			ToIATA:       leg.To,
			FromICAO:     utils.TranslateToICAO(leg.From),
			ToICAO:       utils.TranslateToICAO(leg.To),
			STD:          leg.STD,
			STA:          leg.STA,
			Registration: leg.Registration,
		})
	}

	analyzed := h.Pipeline.RunHealthCheck(r.Context(), itinerary)

	type legResult struct {
		models.FlightLeg
		Status models.HealthStatus `json:"status"`
	}
	results := make([]legResult, 0, len(analyzed))
	for _, leg := range analyzed {
		results = append(results, legResult{FlightLeg: leg, Status: models.HealthStatusOf(leg.Analysis)})
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"legs": results})
}
