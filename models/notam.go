// backend/models/notam.go
package models

// NoticeRecord is one parsed row of the portal's NOTAM export.
// The export carries a fixed 7-column schema after its preamble block;
// the column tags match the export headers exactly.
type NoticeRecord struct {
	Location       string `csv:"Location" json:"location"`
	NoticeID       string `csv:"NOTAM #/LTA #" json:"notice_id"`
	Class          string `csv:"Class" json:"class"`
	IssueDate      string `csv:"Issue Date (UTC)" json:"issue_date_utc"`
	EffectiveDate  string `csv:"Effective Date (UTC)" json:"effective_date_utc"`
	ExpirationDate string `csv:"Expiration Date (UTC)" json:"expiration_date_utc"`
	Condition      string `csv:"Condition" json:"condition"`
}

// NoticeBatch is the ordered result of one successful fetch-and-parse
// cycle for one station. An empty batch means "no active notices",
// which is a legitimate outcome, not a failure.
type NoticeBatch []NoticeRecord

// AIResponse is opaque narrative text produced by a language model.
// The pipeline never parses it structurally; consumers may inspect a
// leading classification marker when one is present.
type AIResponse string
