package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportHeader = `<html><body><table>
<tr><td>Federal Aviation Administration</td></tr>
<tr><td>NOTAM Search Results</td></tr>
<tr><td>Generated 2025-08-30 12:00 UTC</td></tr>
<tr><td>Location</td><td>NOTAM #/LTA #</td><td>Class</td><td>Issue Date (UTC)</td><td>Effective Date (UTC)</td><td>Expiration Date (UTC)</td><td>Condition</td></tr>
`

func TestParseExport(t *testing.T) {
	export := exportHeader + `
<tr><td>KMIA</td><td>08/123</td><td>D</td><td>08/20/2025 1410</td><td>08/21/2025 0000</td><td>09/15/2025 2359</td><td>RWY 09/27   CLSD</td></tr>
<tr><td>KMIA</td><td>08/124</td><td>D</td><td>08/22/2025 0915</td><td>08/22/2025 1000</td><td>08/30/2025 2200</td><td>TWY   B CLSD BTN TWY A AND TWY C</td></tr>
</table></body></html>`

	batch, err := ParseExport(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, batch, 2)

	first := batch[0]
	assert.Equal(t, "KMIA", first.Location)
	assert.Equal(t, "08/123", first.NoticeID)
	assert.Equal(t, "D", first.Class)
	assert.Equal(t, "08/20/2025 1410", first.IssueDate)
	assert.Equal(t, "08/21/2025 0000", first.EffectiveDate)
	assert.Equal(t, "09/15/2025 2359", first.ExpirationDate)
	assert.Equal(t, "RWY 09/27 CLSD", first.Condition, "internal whitespace must be collapsed")

	assert.Equal(t, "TWY B CLSD BTN TWY A AND TWY C", batch[1].Condition)
}

func TestParseExportEmptyAfterPreamble(t *testing.T) {
	batch, err := ParseExport(strings.NewReader(exportHeader + "</table></body></html>"))
	require.NoError(t, err)
	assert.NotNil(t, batch)
	assert.Empty(t, batch, "header-only export is a valid empty batch, not an error")
}

func TestParseExportSkipsShortRows(t *testing.T) {
	export := exportHeader + `
<tr><td>Report totals: 1</td></tr>
<tr><td>SKRG</td><td>A1234/25</td><td>I</td><td>08/25/2025 0900</td><td>08/25/2025 1200</td><td>PERM</td><td>OBST CRANE ERECTED</td></tr>
</table></body></html>`

	batch, err := ParseExport(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "SKRG", batch[0].Location)
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "TableReady", StateTableReady.String())
	assert.Equal(t, "Closed", StateClosed.String())
}
