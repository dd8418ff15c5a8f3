package report

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/anupamroy/invigilation-api-go/pkg/models"
	"github.com/anupamroy/invigilation-api-go/pkg/reconcile"
)

func TestBuildSummary(t *testing.T) {
	roster := []models.FacultyMember{
		{Name: "A", Phone: "111", Email: "a@example.edu"},
		{Name: "B"},
	}
	assignments := []models.DutyAssignment{
		{Date: "2025-01-12", Shift: models.ShiftFirstHalf, Faculty: "A"},
		{Date: "2025-01-10", Shift: models.ShiftFirstHalf, Faculty: "A"},
		{Date: "2025-01-10", Shift: models.ShiftSecondHalf, Faculty: "B"},
	}
	unavail := models.Unavailability{
		"A": {FirstHalf: []string{"2025-01-15"}, SecondHalf: []string{}},
	}

	rows := BuildSummary(assignments, roster, unavail)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	a := rows[0]
	if a.FirstHalfDuties != 2 || a.SecondHalfDuties != 0 || a.TotalDuties != 2 {
		t.Errorf("Expected A duty counts 2/0/2, got %d/%d/%d", a.FirstHalfDuties, a.SecondHalfDuties, a.TotalDuties)
	}
	if a.FirstHalfDates != "10-01-2025, 12-01-2025" {
		t.Errorf("Expected sorted display dates, got %q", a.FirstHalfDates)
	}
	if a.FirstHalfUnavailable != "15-01-2025" || a.SecondHalfUnavailable != "None" {
		t.Errorf("Expected unavailable 15-01-2025/None, got %q/%q", a.FirstHalfUnavailable, a.SecondHalfUnavailable)
	}
	if a.TotalUnavailable != 1 {
		t.Errorf("Expected 1 unavailable slot, got %d", a.TotalUnavailable)
	}

	b := rows[1]
	if b.SecondHalfDates != "10-01-2025" || b.FirstHalfDates != "" {
		t.Errorf("Expected B dates ''/10-01-2025, got %q/%q", b.FirstHalfDates, b.SecondHalfDates)
	}
	if b.FirstHalfUnavailable != "None" {
		t.Errorf("Expected None for faculty without unavailability, got %q", b.FirstHalfUnavailable)
	}
}

func TestBuildSummary_NoRoster(t *testing.T) {
	assignments := []models.DutyAssignment{
		{Date: "2025-01-10", Shift: models.ShiftFirstHalf, Faculty: "B"},
		{Date: "2025-01-10", Shift: models.ShiftSecondHalf, Faculty: "A"},
	}

	rows := BuildSummary(assignments, nil, nil)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	// First-seen order from the assignments
	if rows[0].Faculty != "B" || rows[1].Faculty != "A" {
		t.Errorf("Expected first-seen order B, A, got %s, %s", rows[0].Faculty, rows[1].Faculty)
	}
}

// An exported summary fed back through the reconciler reproduces the
// assignments it was built from.
func TestSummaryRoundTrip(t *testing.T) {
	assignments := []models.DutyAssignment{
		{Date: "2025-01-10", Shift: models.ShiftFirstHalf, Faculty: "A"},
		{Date: "2025-01-12", Shift: models.ShiftFirstHalf, Faculty: "A"},
		{Date: "2025-01-10", Shift: models.ShiftSecondHalf, Faculty: "B"},
	}
	roster := []models.FacultyMember{{Name: "A"}, {Name: "B"}}

	rows := BuildSummary(assignments, roster, nil)

	tableRows := make([][]string, len(rows))
	for i, row := range rows {
		tableRows[i] = []string{
			row.Faculty,
			fmt.Sprint(row.FirstHalfDuties),
			fmt.Sprint(row.SecondHalfDuties),
			row.FirstHalfDates,
			row.SecondHalfDates,
			row.FirstHalfUnavailable,
			row.SecondHalfUnavailable,
		}
	}
	table := reconcile.NewTable([]string{
		"Faculty", "First Half Duties", "Second Half Duties",
		"First Half Dates", "Second Half Dates",
		"First Half Unavailable", "Second Half Unavailable",
	}, tableRows)

	result, err := reconcile.FromSummary(table, nil, nil)
	if err != nil {
		t.Fatalf("Expected reconciliation to succeed, got %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", result.Warnings)
	}

	count := func(list []models.DutyAssignment) map[models.DutyAssignment]int {
		m := map[models.DutyAssignment]int{}
		for _, a := range list {
			m[a]++
		}
		return m
	}
	if !reflect.DeepEqual(count(result.Assignments), count(assignments)) {
		t.Errorf("Expected round trip to reproduce assignments, got %v", result.Assignments)
	}
}

func TestSummaryXLSX(t *testing.T) {
	rows := BuildSummary([]models.DutyAssignment{
		{Date: "2025-01-10", Shift: models.ShiftFirstHalf, Faculty: "A"},
	}, []models.FacultyMember{{Name: "A"}}, nil)

	data, err := SummaryXLSX(rows)
	if err != nil {
		t.Fatalf("Expected workbook generation to succeed, got %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Expected generated workbook to open, got %v", err)
	}
	defer f.Close()

	sheetRows, err := f.GetRows("Faculty Duty Summary")
	if err != nil {
		t.Fatalf("Expected summary sheet, got %v", err)
	}
	if len(sheetRows) != 2 {
		t.Fatalf("Expected header plus 1 data row, got %d rows", len(sheetRows))
	}
	if !reflect.DeepEqual(sheetRows[0], SummaryHeader) {
		t.Errorf("Expected header %v, got %v", SummaryHeader, sheetRows[0])
	}
	if sheetRows[1][0] != "A" || sheetRows[1][6] != "10-01-2025" {
		t.Errorf("Expected A with duty date 10-01-2025, got %v", sheetRows[1])
	}
}

func TestChartCSV(t *testing.T) {
	assignments := []models.DutyAssignment{
		{Date: "2025-01-11", Shift: models.ShiftFirstHalf, Faculty: "C"},
		{Date: "2025-01-10", Shift: models.ShiftSecondHalf, Faculty: "B"},
		{Date: "2025-01-10", Shift: models.ShiftFirstHalf, Faculty: "A"},
	}
	roster := []models.FacultyMember{{Name: "A", Phone: "111", Email: "a@example.edu"}}

	data, err := ChartCSV(assignments, roster)
	if err != nil {
		t.Fatalf("Expected chart generation to succeed, got %v", err)
	}

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 lines, got %d", len(lines))
	}
	// Ordered by date, First Half before Second Half
	if !bytes.HasPrefix(lines[1], []byte("10-01-2025,First Half,A,111")) {
		t.Errorf("Expected first line for A, got %s", lines[1])
	}
	if !bytes.HasPrefix(lines[2], []byte("10-01-2025,Second Half,B")) {
		t.Errorf("Expected second line for B, got %s", lines[2])
	}
	if !bytes.HasPrefix(lines[3], []byte("11-01-2025,First Half,C")) {
		t.Errorf("Expected third line for C, got %s", lines[3])
	}
}
