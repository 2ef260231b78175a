// Package export renders the appointment collection as downloadable files.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
)

const (
	CSVContentType  = "text/csv"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Header is the fixed column order of every export.
var Header = []string{"ID", "Service", "First Name", "Last Name", "Email", "Phone", "Date", "Time", "Status", "Notes", "Created At"}

// Row maps an appointment to its export cells, resolving the service display name.
func Row(a model.Appointment) []string {
	return []string{
		a.ID,
		model.ServiceName(a.Service),
		a.FirstName,
		a.LastName,
		a.Email,
		a.Phone,
		a.Date,
		a.Time,
		string(a.Status),
		a.Notes,
		a.CreatedAt,
	}
}

// CSV quotes every cell, doubles embedded quotes, joins cells with commas and rows
// with "\n". The output has no trailing newline.
func CSV(appointments []model.Appointment) string {
	var b strings.Builder
	writeCSVRow(&b, Header)
	for _, a := range appointments {
		b.WriteByte('\n')
		writeCSVRow(&b, Row(a))
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
}

// Filename returns <brand>-appointments-<YYYY-MM-DD>.<ext>, dated in UTC.
func Filename(brand string, day time.Time, ext string) string {
	return fmt.Sprintf("%s-appointments-%s.%s", brand, day.UTC().Format(model.DateLayout), ext)
}
