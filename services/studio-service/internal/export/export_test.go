package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
)

func sampleAppointments() []model.Appointment {
	return []model.Appointment{
		{
			ID: "apt_1", Service: "microblading", FirstName: "Ana", LastName: "Petrou",
			Email: "ana@example.com", Phone: "+357 99 123456", Date: "2026-03-10", Time: "10:30",
			Notes: `He said "hi"`, Status: model.StatusPending, CreatedAt: "2026-03-01T09:00:00.000Z",
		},
		{
			ID: "apt_2", Service: "henna", FirstName: "Maria", LastName: "Ioannou, Jr",
			Email: "maria@example.com", Phone: "99000000", Date: "2026-03-11", Time: "14:00",
			Status: model.StatusConfirmed, CreatedAt: "2026-03-02T09:00:00.000Z",
		},
	}
}

func TestCSV_QuotesEveryCell(t *testing.T) {
	out := CSV(sampleAppointments())
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != `"ID","Service","First Name","Last Name","Email","Phone","Date","Time","Status","Notes","Created At"` {
		t.Fatalf("unexpected header %s", lines[0])
	}
	if !strings.Contains(lines[1], `"He said ""hi"""`) {
		t.Fatalf("expected doubled quotes in %s", lines[1])
	}
	if !strings.Contains(lines[1], `"Microblading"`) {
		t.Fatalf("expected service display name in %s", lines[1])
	}
	if !strings.Contains(lines[2], `"henna"`) {
		t.Fatalf("expected raw code fallback in %s", lines[2])
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatal("unexpected trailing newline")
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	appts := sampleAppointments()
	records, err := csv.NewReader(strings.NewReader(CSV(appts))).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != len(appts)+1 {
		t.Fatalf("expected %d records, got %d", len(appts)+1, len(records))
	}
	for i, a := range appts {
		want := Row(a)
		got := records[i+1]
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("row %d col %d: got %q want %q", i, j, got[j], want[j])
			}
		}
	}
	if records[1][9] != `He said "hi"` {
		t.Fatalf("notes did not survive round trip: %q", records[1][9])
	}
}

func TestCSV_EmptyCollection(t *testing.T) {
	if got := CSV(nil); strings.Count(got, "\n") != 0 || !strings.HasPrefix(got, `"ID"`) {
		t.Fatalf("expected header only, got %q", got)
	}
}

func TestFilename(t *testing.T) {
	day := time.Date(2026, 4, 5, 23, 0, 0, 0, time.UTC)
	if got := Filename("yaelle", day, "csv"); got != "yaelle-appointments-2026-04-05.csv" {
		t.Fatalf("unexpected filename %q", got)
	}

	// 01:30 on the 6th in Nicosia is still the 5th in UTC.
	nicosia := time.FixedZone("EET", 3*60*60)
	local := time.Date(2026, 4, 6, 1, 30, 0, 0, nicosia)
	if got := Filename("yaelle", local, "xlsx"); got != "yaelle-appointments-2026-04-05.xlsx" {
		t.Fatalf("expected UTC date in filename, got %q", got)
	}
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := XLSX(&buf, sampleAppointments()); err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := f.GetCellValue(SheetName, "A1"); got != "ID" {
		t.Fatalf("unexpected header cell %q", got)
	}
	if got := f.GetCellValue(SheetName, "J2"); got != `He said "hi"` {
		t.Fatalf("unexpected notes cell %q", got)
	}
	if got := f.GetCellValue(SheetName, "B3"); got != "henna" {
		t.Fatalf("unexpected service cell %q", got)
	}
}
