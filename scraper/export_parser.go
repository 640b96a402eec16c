// backend/scraper/export_parser.go
package scraper

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/flexwatch/flexwatch/backend/models"
)

// The portal's "Excel" export is a legacy .xls wrapper around an HTML
// table: a fixed preamble block of report metadata rows, then one row
// per notice with a fixed 7-column layout.
const (
	exportPreambleRows = 4
	exportColumns      = 7
)

var collapseWhitespace = regexp.MustCompile(`\s+`)

// ParseExportFile opens a captured export file and parses it into a
// NoticeBatch.
func ParseExportFile(path string) (models.NoticeBatch, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file %s: %w", path, err)
	}
	defer file.Close()
	return ParseExport(file)
}

// ParseExport reads the export's table, skips the preamble block, and
// yields one NoticeRecord per remaining row. A table that is empty
// after the preamble is a valid empty batch, not an error.
func ParseExport(r io.Reader) (models.NoticeBatch, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse export document: %w", err)
	}

	batch := models.NoticeBatch{}
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i < exportPreambleRows {
			return
		}
		cells := row.Find("td")
		if cells.Length() < exportColumns {
			return
		}
		fields := make([]string, exportColumns)
		cells.EachWithBreak(func(j int, cell *goquery.Selection) bool {
			if j >= exportColumns {
				return false
			}
			fields[j] = cleanCellText(cell.Text())
			return true
		})
		batch = append(batch, models.NoticeRecord{
			Location:       fields[0],
			NoticeID:       fields[1],
			Class:          fields[2],
			IssueDate:      fields[3],
			EffectiveDate:  fields[4],
			ExpirationDate: fields[5],
			Condition:      fields[6],
		})
	})

	return batch, nil
}

func cleanCellText(text string) string {
	return strings.TrimSpace(collapseWhitespace.ReplaceAllString(text, " "))
}
