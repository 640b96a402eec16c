// backend/scraper/notam_scraper.go
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/flexwatch/flexwatch/backend/config"
	"github.com/flexwatch/flexwatch/backend/models"
)

// Completer is the slice of the AI client the scraper needs.
type Completer interface {
	Complete(ctx context.Context, prompt string, modelList []string) string
}

// Source fetches and classifies NOTAMs via the portal. Each fetch runs
// a disposable browser session end to end; classification delegates to
// the fallback AI client.
type Source struct {
	portal    config.PortalConfig
	selectors config.PortalSelectorsConfig
	ai        Completer
	models    []string
}

func NewSource(portal config.PortalConfig, selectors config.PortalSelectorsConfig, ai Completer, modelList []string) *Source {
	return &Source{portal: portal, selectors: selectors, ai: ai, models: modelList}
}

// FetchNotices runs one full portal cycle for the given stations and
// returns the parsed batch. An ErrNoDataOrTimeout outcome surfaces as
// an empty batch with a warning: the stations likely have no active
// notices, and the pipeline must not abort for them either way.
func (s *Source) FetchNotices(ctx context.Context, stations ...models.StationCode) (models.NoticeBatch, error) {
	if len(stations) == 0 {
		return models.NoticeBatch{}, nil
	}

	session, err := NewSession(ctx, s.portal, s.selectors)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	exportPath, err := session.Fetch(stations)
	if err != nil {
		if errors.Is(err, ErrNoDataOrTimeout) {
			log.Printf("WARN Scraper: no result table for %v, treating as zero active notices", stations)
			return models.NoticeBatch{}, nil
		}
		return nil, err
	}

	batch, err := ParseExportFile(exportPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPortalInteraction, err)
	}
	session.markParsed()

	log.Printf("Scraper: parsed %d notices for %v", len(batch), stations)
	return batch, nil
}

// Classify summarizes a station's notice batch through the AI layer,
// cross-referencing runway-closure notices against the known runway
// set. An empty batch short-circuits to a fixed message without an AI
// call.
func (s *Source) Classify(ctx context.Context, batch models.NoticeBatch, station models.StationCode, runwaySet models.RunwaySet) models.AIResponse {
	if len(batch) == 0 {
		return models.AIResponse(fmt.Sprintf("✅ No active NOTAMs found for %s.", station))
	}
	prompt := buildClassifyPrompt(batch, station, runwaySet)
	return models.AIResponse(s.ai.Complete(ctx, prompt, s.models))
}

func buildClassifyPrompt(batch models.NoticeBatch, station models.StationCode, runwaySet models.RunwaySet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert flight operations assistant. Analyze the following NOTAMs for airport %s.\n\n", station)

	fmt.Fprintf(&b, "**Available Runway Infrastructure:**\n")
	fmt.Fprintf(&b, "* Runways at %s: [%s]\n\n", station, runwaySet.Joined())

	fmt.Fprintf(&b, "**NOTAM Data:**\n")
	for _, rec := range batch {
		fmt.Fprintf(&b, "%s | %s | %s | issued %s | effective %s | expires %s | %s\n",
			rec.Location, rec.NoticeID, rec.Class,
			rec.IssueDate, rec.EffectiveDate, rec.ExpirationDate, rec.Condition)
	}

	b.WriteString(`
**Your Task:**
1. Classify the NOTAMs by type (RUNWAY CLOSURES, OBSTACLES, TAXIWAY, etc.).
2. When analyzing a runway closure, cross-reference it against the available runway list and state explicitly which runways remain operative.
3. Produce a final summary highlighting only the most critical points affecting the operation.
4. Present the result in Markdown.
`)
	return b.String()
}
