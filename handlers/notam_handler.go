// backend/handlers/notam_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flexwatch/flexwatch/backend/models"
	"github.com/flexwatch/flexwatch/backend/services"
)

// NotamHandler exposes standalone per-station NOTAM analysis.
type NotamHandler struct {
	Notams  services.NoticeFetcher
	Runways services.RunwayLookup
}

// AnalyzeNotams handles POST /api/notams/analyze with a body of
// {"stations": ["KMIA", ...]}. Stations are processed one at a time;
// a failed station degrades to an error entry instead of failing the
// whole request.
func (h *NotamHandler) AnalyzeNotams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req struct {
		Stations []string `json:"stations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if len(req.Stations) == 0 {
		respondWithError(w, http.StatusBadRequest, "Missing 'stations' in request body")
		return
	}

	type stationResult struct {
		Station models.StationCode `json:"station"`
		Notices int                `json:"notices"`
		Summary models.AIResponse  `json:"summary"`
		Error   string             `json:"error,omitempty"`
	}

	results := make([]stationResult, 0, len(req.Stations))
	for _, raw := range req.Stations {
		station := models.NormalizeStationCode(raw)
		if !station.IsValid() {
			results = append(results, stationResult{Station: station, Error: "invalid station code"})
			continue
		}

		batch, err := h.Notams.FetchNotices(r.Context(), station)
		if err != nil {
			results = append(results, stationResult{Station: station, Error: err.Error()})
			continue
		}
		summary := h.Notams.Classify(r.Context(), batch, station, h.Runways.RunwaysFor(station))
		results = append(results, stationResult{Station: station, Notices: len(batch), Summary: summary})
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
