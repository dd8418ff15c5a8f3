package reconcile

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/anupamroy/invigilation-api-go/pkg/models"
)

func summaryTable(rows ...[]string) *Table {
	header := []string{
		"Faculty", "First Half Duties", "Second Half Duties",
		"First Half Dates", "Second Half Dates",
		"First Half Unavailable", "Second Half Unavailable",
	}
	return NewTable(header, rows)
}

func TestFromSummary_SchemaGate(t *testing.T) {
	table := NewTable(
		[]string{"Faculty", "First Half Duties", "Second Half Duties", "First Half Dates"},
		[][]string{{"A", "1", "0", "10-01-2025"}},
	)

	_, err := FromSummary(table, nil, nil)
	if err == nil {
		t.Fatal("Expected schema error, got none")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %T", err)
	}
	if len(schemaErr.Missing) != 1 || schemaErr.Missing[0] != "Second Half Dates" {
		t.Errorf("Expected missing [Second Half Dates], got %v", schemaErr.Missing)
	}
	if !strings.Contains(schemaErr.Error(), "Second Half Dates") {
		t.Errorf("Expected error message to name the column, got %q", schemaErr.Error())
	}
}

func TestFromSummary_Assignments(t *testing.T) {
	table := summaryTable(
		[]string{"A", "2", "0", "10-01-2025, 12-01-2025", "", "None", "None"},
	)

	result, err := FromSummary(table, nil, nil)
	if err != nil {
		t.Fatalf("Expected reconciliation to succeed, got %v", err)
	}

	wantAssignments := []models.DutyAssignment{
		{Date: "2025-01-10", Shift: models.ShiftFirstHalf, Faculty: "A"},
		{Date: "2025-01-12", Shift: models.ShiftFirstHalf, Faculty: "A"},
	}
	if !reflect.DeepEqual(result.Assignments, wantAssignments) {
		t.Errorf("Expected %v, got %v", wantAssignments, result.Assignments)
	}

	wantSchedule := []models.SlotRequirement{
		{Date: "2025-01-10", FirstHalf: 1, SecondHalf: 0},
		{Date: "2025-01-12", FirstHalf: 1, SecondHalf: 0},
	}
	if !reflect.DeepEqual(result.Schedule, wantSchedule) {
		t.Errorf("Expected %v, got %v", wantSchedule, result.Schedule)
	}
}

func TestFromSummary_ScheduleMerge(t *testing.T) {
	table := summaryTable(
		[]string{"A", "1", "0", "10-01-2025", "", "None", "None"},
		[]string{"B", "0", "1", "", "10-01-2025", "None", "None"},
	)

	result, err := FromSummary(table, nil, nil)
	if err != nil {
		t.Fatalf("Expected reconciliation to succeed, got %v", err)
	}

	want := []models.SlotRequirement{{Date: "2025-01-10", FirstHalf: 1, SecondHalf: 1}}
	if !reflect.DeepEqual(result.Schedule, want) {
		t.Errorf("Expected single merged entry %v, got %v", want, result.Schedule)
	}
}

func TestFromSummary_BadTokenIsWarning(t *testing.T) {
	table := summaryTable(
		[]string{"A", "2", "0", "10-01-2025, notadate", "", "None", "None"},
	)

	result, err := FromSummary(table, nil, nil)
	if err != nil {
		t.Fatalf("Expected reconciliation to succeed, got %v", err)
	}
	if len(result.Assignments) != 1 {
		t.Errorf("Expected the valid date to survive, got %d assignments", len(result.Assignments))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(result.Warnings))
	}
	if result.Warnings[0].Value != "notadate" || result.Warnings[0].Faculty != "A" {
		t.Errorf("Expected warning to identify the bad token, got %+v", result.Warnings[0])
	}
}

func TestFromSummary_ScheduleOverride(t *testing.T) {
	summary := summaryTable(
		[]string{"A", "1", "0", "10-01-2025", "", "None", "None"},
	)
	schedule := NewTable(
		[]string{"Date", "First Half", "Second Half"},
		[][]string{
			{"2025-01-20", "3", "2"},
			{"21-01-2025", "1", "x"},
			{"nan", "1", "1"},
		},
	)

	result, err := FromSummary(summary, schedule, nil)
	if err != nil {
		t.Fatalf("Expected reconciliation to succeed, got %v", err)
	}

	want := []models.SlotRequirement{
		{Date: "2025-01-20", FirstHalf: 3, SecondHalf: 2},
		{Date: "2025-01-21", FirstHalf: 1, SecondHalf: 0},
	}
	if !reflect.DeepEqual(result.ScheduleOverride, want) {
		t.Errorf("Expected override %v, got %v", want, result.ScheduleOverride)
	}

	// The explicit table wins over the summary-derived schedule
	if !reflect.DeepEqual(result.EffectiveSchedule(), want) {
		t.Errorf("Expected override to win, got %v", result.EffectiveSchedule())
	}
	if len(result.Schedule) != 1 || result.Schedule[0].Date != "2025-01-10" {
		t.Errorf("Expected summary-derived schedule to still be computed, got %v", result.Schedule)
	}
}

func TestFromSummary_UnavailabilityLongFormDedup(t *testing.T) {
	summary := summaryTable(
		[]string{"A", "0", "0", "", "", "None", "None"},
	)
	unavail := NewTable(
		[]string{"Faculty", "Date", "Shift"},
		[][]string{
			{"A", "10-01-2025", "First Half"},
			{"A", "10-01-2025", "First Half"},
			{"A", "2025-01-11", "Second Half"},
		},
	)

	result, err := FromSummary(summary, nil, unavail)
	if err != nil {
		t.Fatalf("Expected reconciliation to succeed, got %v", err)
	}

	entry := result.Unavailability["A"]
	if entry == nil {
		t.Fatal("Expected an unavailability entry for A")
	}
	if len(entry.FirstHalf) != 1 || entry.FirstHalf[0] != "2025-01-10" {
		t.Errorf("Expected deduped first half [2025-01-10], got %v", entry.FirstHalf)
	}
	if len(entry.SecondHalf) != 1 || entry.SecondHalf[0] != "2025-01-11" {
		t.Errorf("Expected second half [2025-01-11], got %v", entry.SecondHalf)
	}
}

func TestFromSummary_UnavailabilityWideForm(t *testing.T) {
	summary := summaryTable(
		[]string{"A", "0", "0", "", "", "None", "None"},
	)
	unavail := NewTable(
		[]string{"Faculty", "First Half Dates", "Second Half Dates"},
		[][]string{
			{"A", "10-01-2025, 10-01-2025, 11-01-2025", ""},
		},
	)

	result, err := FromSummary(summary, nil, unavail)
	if err != nil {
		t.Fatalf("Expected reconciliation to succeed, got %v", err)
	}

	entry := result.Unavailability["A"]
	if entry == nil {
		t.Fatal("Expected an unavailability entry for A")
	}
	want := []string{"2025-01-10", "2025-01-11"}
	if !reflect.DeepEqual(entry.FirstHalf, want) {
		t.Errorf("Expected %v, got %v", want, entry.FirstHalf)
	}
	if len(entry.SecondHalf) != 0 {
		t.Errorf("Expected empty second half, got %v", entry.SecondHalf)
	}
}

func TestFromSummary_UnavailabilityFromSummaryColumns(t *testing.T) {
	table := summaryTable(
		[]string{"A", "0", "0", "", "", "10-01-2025, nan", "None"},
		[]string{"B", "0", "0", "", "", "None", "nan"},
	)

	result, err := FromSummary(table, nil, nil)
	if err != nil {
		t.Fatalf("Expected reconciliation to succeed, got %v", err)
	}

	a := result.Unavailability["A"]
	if a == nil || len(a.FirstHalf) != 1 || a.FirstHalf[0] != "2025-01-10" {
		t.Errorf("Expected A first half [2025-01-10], got %+v", a)
	}
	b := result.Unavailability["B"]
	if b == nil || len(b.FirstHalf) != 0 || len(b.SecondHalf) != 0 {
		t.Errorf("Expected empty entry for B, got %+v", b)
	}
}

func TestFromSummary_UnavailableTableSuppressesSummary(t *testing.T) {
	summary := summaryTable(
		[]string{"A", "0", "0", "", "", "10-01-2025", "None"},
	)
	// A supplied table without a Faculty column yields nothing, but the
	// summary columns must not be used as a fallback either
	unavail := NewTable(
		[]string{"Name", "Date"},
		[][]string{{"A", "10-01-2025"}},
	)

	result, err := FromSummary(summary, nil, unavail)
	if err != nil {
		t.Fatalf("Expected reconciliation to succeed, got %v", err)
	}
	if len(result.Unavailability) != 0 {
		t.Errorf("Expected no unavailability, got %v", result.Unavailability)
	}
}

func TestRosterFromTable_HeaderVariants(t *testing.T) {
	table := NewTable(
		[]string{"faculty", "Phone No", "email"},
		[][]string{
			{"Dr. A", "12345", "a@example.edu"},
			{"", "0", "ignored@example.edu"},
		},
	)

	faculty := RosterFromTable(table)
	if len(faculty) != 1 {
		t.Fatalf("Expected 1 faculty member, got %d", len(faculty))
	}
	want := models.FacultyMember{Name: "Dr. A", Phone: "12345", Email: "a@example.edu"}
	if faculty[0] != want {
		t.Errorf("Expected %+v, got %+v", want, faculty[0])
	}
}
