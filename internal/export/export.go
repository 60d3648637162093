// Package export renders logbook records as CSV documents for download.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/it-logbook-api/internal/domain"
)

const (
	// ContentType is the MIME type of every exported document.
	ContentType = "text/csv; charset=utf-8"
	// Placeholder stands in for empty optional fields.
	Placeholder = "-"

	filenameDateLayout = "2006-01-02"
)

// Column describes one exported column. Value receives the 0-based position
// of the record in the exported sequence.
type Column[T any] struct {
	Label string
	Value func(i int, rec T) string
}

// Document is a ready-to-download export.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Format renders records as CSV: a header line of comma-joined labels, then
// one line per record with every field quoted. Identical input yields
// identical output.
func Format[T any](records []T, columns []Column[T]) []byte {
	var b strings.Builder

	for i, col := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(col.Label)
	}

	for i, rec := range records {
		b.WriteByte('\n')
		for j, col := range columns {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Quote(col.Value(i, rec)))
		}
	}

	return []byte(b.String())
}

// Quote wraps s in double quotes, doubling any embedded quote.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Filename builds "<prefix>_<YYYY-MM-DD>.csv" for the given day.
func Filename(prefix string, now time.Time) string {
	return prefix + "_" + now.Format(filenameDateLayout) + ".csv"
}

// New formats records into a Document named after prefix and now.
func New[T any](prefix string, now time.Time, records []T, columns []Column[T]) Document {
	return Document{
		Filename:    Filename(prefix, now),
		ContentType: ContentType,
		Body:        Format(records, columns),
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func rowNumber[T any](i int, _ T) string {
	return strconv.Itoa(i + 1)
}

// WorkEntryColumns are the columns of the work logbook export.
var WorkEntryColumns = []Column[domain.WorkEntry]{
	{Label: "No", Value: rowNumber[domain.WorkEntry]},
	{Label: "Start Date", Value: func(_ int, e domain.WorkEntry) string { return formatDate(&e.StartDate) }},
	{Label: "Work Type", Value: func(_ int, e domain.WorkEntry) string { return e.WorkType }},
	{Label: "Department", Value: func(_ int, e domain.WorkEntry) string { return e.Department }},
	{Label: "End Date", Value: func(_ int, e domain.WorkEntry) string { return orPlaceholder(formatDate(e.EndDate)) }},
	{Label: "PIC", Value: func(_ int, e domain.WorkEntry) string { return e.PersonInCharge }},
	{Label: "Status", Value: func(_ int, e domain.WorkEntry) string { return string(e.Status) }},
	{Label: "Notes", Value: func(_ int, e domain.WorkEntry) string { return orPlaceholder(e.Notes) }},
	{Label: "PR Number", Value: func(_ int, e domain.WorkEntry) string { return orPlaceholder(e.PurchaseRequestNumber) }},
}

// BackupEntryColumns are the columns of the backup log export.
var BackupEntryColumns = []Column[domain.BackupEntry]{
	{Label: "No", Value: rowNumber[domain.BackupEntry]},
	{Label: "Date", Value: func(_ int, e domain.BackupEntry) string { return formatDate(&e.Date) }},
	{Label: "Shift", Value: func(_ int, e domain.BackupEntry) string { return string(e.Shift) }},
	{Label: "PIC", Value: func(_ int, e domain.BackupEntry) string { return e.PersonInCharge }},
}
