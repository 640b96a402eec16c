// backend/models/station.go
package models

import "strings"

// StationCode is a 4-letter ICAO airport identifier, e.g. "KMIA".
type StationCode string

// StationNotFound is the sentinel used when a commercial (IATA) code
// cannot be translated to an ICAO identifier. It flows through the
// pipeline instead of a null so legs keep their place in the itinerary.
const StationNotFound StationCode = "NOT FOUND"

// IsValid reports whether the code is a usable 4-letter identifier
// (i.e. not empty and not the translation sentinel).
func (s StationCode) IsValid() bool {
	return len(s) == 4 && s != StationNotFound
}

func (s StationCode) String() string {
	return string(s)
}

// NormalizeStationCode trims and uppercases a raw identifier string.
func NormalizeStationCode(raw string) StationCode {
	return StationCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// RunwaySet is the sorted, duplicate-free list of runway designators
// known for one station. Loaded once at startup, read-only afterwards.
type RunwaySet []string

// IsEmpty reports whether no runway data is available. Callers must
// treat an empty set as "no runway data", not "all runways closed".
func (r RunwaySet) IsEmpty() bool {
	return len(r) == 0
}

// Joined renders the set for embedding in AI prompts.
func (r RunwaySet) Joined() string {
	if r.IsEmpty() {
		return "Not available"
	}
	return strings.Join(r, ", ")
}
