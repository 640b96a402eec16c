// backend/utils/airports.go
package utils

import (
	"strings"

	"github.com/flexwatch/flexwatch/backend/models"
)

// iataToICAO covers the operator's network plus common alternates.
var iataToICAO = map[string]string{
	"MIA": "KMIA", "LAX": "KLAX", "JFK": "KJFK",
	"BOG": "SKBO", "MDE": "SKRG", "EOH": "SKMD",
	"FLN": "SBFL", "MAO": "SBEG", "VCP": "SBKP", "VIX": "SBVT",
	"GDL": "MMGL", "SJD": "MMSM",
	"UIO": "SEQM", "GYE": "SEGU",
	"EZE": "SAEZ", "SCL": "SCEL",
	"LIM": "SPJC", "SJO": "MROC", "SAL": "MSLP",
	"MVD": "SUMU", "GUA": "MGGT",
}

// TranslateToICAO converts a commercial (IATA) airport code to its
// 4-letter ICAO identifier. Codes that are already 4-letter ICAO pass
// through unchanged; anything untranslatable maps to the
// StationNotFound sentinel so the pipeline carries the leg instead of
// dropping it.
func TranslateToICAO(code string) models.StationCode {
	upper := strings.ToUpper(strings.TrimSpace(code))
	switch len(upper) {
	case 4:
		return models.StationCode(upper)
	case 3:
		if icao, ok := iataToICAO[upper]; ok {
			return models.StationCode(icao)
		}
		return models.StationNotFound
	default:
		return models.StationNotFound
	}
}
