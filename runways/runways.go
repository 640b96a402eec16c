// backend/runways/runways.go
package runways

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/flexwatch/flexwatch/backend/models"
)

// ErrDataUnavailable marks a missing or malformed runway reference
// file. Load still returns a usable empty index alongside it; callers
// log the error and continue with degraded prompts.
var ErrDataUnavailable = errors.New("runway reference data unavailable")

// runwayRow mirrors the ourairports runways.csv schema. CSV tags must
// EXACTLY match the file headers. Only the columns we consume are
// declared; csvutil ignores the rest.
type runwayRow struct {
	AirportIdent string `csv:"airport_ident"`
	LowIdent     string `csv:"le_ident"`
	HighIdent    string `csv:"he_ident"`
	Closed       int    `csv:"closed"`
}

// Index maps station identifiers to their known runway designators.
// It is loaded once at startup and read-only thereafter.
type Index struct {
	byStation map[models.StationCode]models.RunwaySet
}

// Load reads the runway reference CSV into an Index. On any failure it
// returns an empty index and an ErrDataUnavailable-wrapped error so the
// pipeline can proceed; an empty result downstream means "no runway
// data", never "closed runways".
func Load(path string) (*Index, error) {
	idx := &Index{byStation: make(map[models.StationCode]models.RunwaySet)}

	file, err := os.Open(path)
	if err != nil {
		return idx, fmt.Errorf("%w: failed to open %s: %v", ErrDataUnavailable, path, err)
	}
	defer file.Close()

	rows, err := parseRows(file)
	if err != nil {
		return idx, fmt.Errorf("%w: failed to parse %s: %v", ErrDataUnavailable, path, err)
	}

	seen := make(map[models.StationCode]map[string]bool)
	for _, row := range rows {
		if row.Closed != 0 {
			continue
		}
		station := models.NormalizeStationCode(row.AirportIdent)
		if station == "" {
			continue
		}
		if seen[station] == nil {
			seen[station] = make(map[string]bool)
		}
		for _, ident := range []string{row.LowIdent, row.HighIdent} {
			ident = strings.TrimSpace(ident)
			if ident != "" {
				seen[station][ident] = true
			}
		}
	}

	for station, idents := range seen {
		set := make(models.RunwaySet, 0, len(idents))
		for ident := range idents {
			set = append(set, ident)
		}
		sort.Strings(set)
		idx.byStation[station] = set
	}

	log.Printf("Runways: loaded runway sets for %d stations from %s", len(idx.byStation), path)
	return idx, nil
}

func parseRows(r io.Reader) ([]runwayRow, error) {
	var rows []runwayRow
	decoder, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for runways: %w", err)
	}
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode runways CSV data: %w", err)
	}
	return rows, nil
}

// RunwaysFor returns the sorted runway set for a station. Unknown
// stations and the not-found sentinel yield an empty set; the lookup
// never fails.
func (i *Index) RunwaysFor(station models.StationCode) models.RunwaySet {
	if !station.IsValid() {
		return models.RunwaySet{}
	}
	set, ok := i.byStation[station]
	if !ok {
		return models.RunwaySet{}
	}
	return set
}

// Stations reports how many stations have runway data, mostly for
// startup logging.
func (i *Index) Stations() int {
	return len(i.byStation)
}
