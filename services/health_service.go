// backend/services/health_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/flexwatch/flexwatch/backend/models"
)

// Completer is the slice of the AI client the services need.
type Completer interface {
	Complete(ctx context.Context, prompt string, modelList []string) string
}

const notAvailable = "Not available"

// EvaluateFlightHealth composes weather, notice summaries and runway
// context for one leg into a single risk-classified narrative. Missing
// inputs are substituted with explicit placeholders rather than
// omitted, so the model always sees every field. The leading
// classification marker is requested by prompt instruction only;
// non-conforming output passes through unchanged.
func (s *HealthCheckService) EvaluateFlightHealth(
	ctx context.Context,
	leg models.FlightLeg,
	wxOrigin, wxDest models.WeatherReport,
	noticesOrigin, noticesDest models.AIResponse,
	runwaysOrigin, runwaysDest models.RunwaySet,
) models.AIResponse {
	prompt := buildHealthPrompt(leg, wxOrigin, wxDest, noticesOrigin, noticesDest, runwaysOrigin, runwaysDest)
	return models.AIResponse(s.ai.Complete(ctx, prompt, s.models))
}

func buildHealthPrompt(
	leg models.FlightLeg,
	wxOrigin, wxDest models.WeatherReport,
	noticesOrigin, noticesDest models.AIResponse,
	runwaysOrigin, runwaysDest models.RunwaySet,
) string {
	var b strings.Builder
	b.WriteString("Act as an expert flight dispatcher and meteorologist. Analyze the following flight and determine its operational health. All times provided (STD, STA, TAF, METAR, NOTAM) are UTC.\n\n")

	fmt.Fprintf(&b, "**Flight Data:**\n")
	fmt.Fprintf(&b, "* Flight: %s\n", orPlaceholder(leg.Flight))
	fmt.Fprintf(&b, "* Route: %s (%s) -> %s (%s)\n", leg.FromICAO, orPlaceholder(leg.FromIATA), leg.ToICAO, orPlaceholder(leg.ToIATA))
	fmt.Fprintf(&b, "* Registration: %s\n", orPlaceholder(leg.Registration))
	fmt.Fprintf(&b, "* Departure (STD UTC): %s\n", orPlaceholder(leg.STD))
	fmt.Fprintf(&b, "* Arrival (STA UTC): %s\n\n", orPlaceholder(leg.STA))

	fmt.Fprintf(&b, "**Runway Infrastructure:**\n")
	fmt.Fprintf(&b, "* Runways available at origin (%s): [%s]\n", leg.FromICAO, runwaysOrigin.Joined())
	fmt.Fprintf(&b, "* Runways available at destination (%s): [%s]\n\n", leg.ToICAO, runwaysDest.Joined())

	fmt.Fprintf(&b, "**Weather Data (UTC):**\n")
	fmt.Fprintf(&b, "* Origin TAF (%s): %s\n", leg.FromICAO, orPlaceholder(wxOrigin.Forecast))
	fmt.Fprintf(&b, "* Origin latest METAR (%s): %s\n", leg.FromICAO, orPlaceholder(latestObservation(wxOrigin)))
	fmt.Fprintf(&b, "* Destination TAF (%s): %s\n", leg.ToICAO, orPlaceholder(wxDest.Forecast))
	fmt.Fprintf(&b, "* Destination latest METAR (%s): %s\n\n", leg.ToICAO, orPlaceholder(latestObservation(wxDest)))

	fmt.Fprintf(&b, "**NOTAM Data (AI summaries, UTC):**\n")
	fmt.Fprintf(&b, "* Origin NOTAMs (%s): %s\n", leg.FromICAO, orPlaceholder(string(noticesOrigin)))
	fmt.Fprintf(&b, "* Destination NOTAMs (%s): %s\n\n", leg.ToICAO, orPlaceholder(string(noticesDest)))

	b.WriteString(`**Your Analysis:**
1. **Weather:** Does the origin or destination TAF show adverse conditions near the operating times?
2. **NOTAMs and Runways:** If a NOTAM mentions a runway closure, determine the real impact against the available runway list. Are runways still operative? Are they adequate? Name the runways that remain available.
3. **Conclusion:** Give a concise summary (3-4 sentences max) of the flight's status. Classify it with an emoji and a keyword at the very start of your reply: "✅ Normal", "⚠️ Monitor", or "❌ At Risk".
`)
	return b.String()
}

func latestObservation(wx models.WeatherReport) string {
	if !wx.HasObservations() {
		return ""
	}
	return wx.Observations[0]
}

func orPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return notAvailable
	}
	return v
}
