// Package report builds the exportable views of the duty roster: the
// per-faculty summary spreadsheet and the per-date duty chart. The
// summary is round-trip stable; an exported workbook can be edited and
// fed back through reconcile.FromSummary.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/anupamroy/invigilation-api-go/pkg/dates"
	"github.com/anupamroy/invigilation-api-go/pkg/models"
)

// SummaryHeader lists the summary columns in export order.
var SummaryHeader = []string{
	"Faculty",
	"Phone No",
	"Email ID",
	"First Half Duties",
	"Second Half Duties",
	"Total Duties",
	"First Half Dates",
	"Second Half Dates",
	"First Half Unavailable",
	"Second Half Unavailable",
	"Total Unavailable Slots",
}

// SummaryRow is one faculty member's line in the duty summary.
type SummaryRow struct {
	Faculty               string
	Phone                 string
	Email                 string
	FirstHalfDuties       int
	SecondHalfDuties      int
	TotalDuties           int
	FirstHalfDates        string
	SecondHalfDates       string
	FirstHalfUnavailable  string
	SecondHalfUnavailable string
	TotalUnavailable      int
}

func (r SummaryRow) cells() []any {
	return []any{
		r.Faculty,
		r.Phone,
		r.Email,
		r.FirstHalfDuties,
		r.SecondHalfDuties,
		r.TotalDuties,
		r.FirstHalfDates,
		r.SecondHalfDates,
		r.FirstHalfUnavailable,
		r.SecondHalfUnavailable,
		r.TotalUnavailable,
	}
}

// BuildSummary produces one summary row per faculty member in roster
// order. With no stored roster, faculty are taken from the assignments
// in first-seen order so the report still renders.
func BuildSummary(assignments []models.DutyAssignment, roster []models.FacultyMember, unavail models.Unavailability) []SummaryRow {
	contacts := map[string]models.FacultyMember{}
	var names []string
	if len(roster) > 0 {
		for _, f := range roster {
			contacts[f.Name] = f
			names = append(names, f.Name)
		}
	} else {
		seen := map[string]bool{}
		for _, a := range assignments {
			if !seen[a.Faculty] {
				seen[a.Faculty] = true
				names = append(names, a.Faculty)
			}
		}
	}

	byFaculty := map[string]map[models.Shift][]time.Time{}
	for _, a := range assignments {
		t, err := time.Parse(dates.StorageLayout, a.Date)
		if err != nil {
			continue
		}
		if byFaculty[a.Faculty] == nil {
			byFaculty[a.Faculty] = map[models.Shift][]time.Time{}
		}
		byFaculty[a.Faculty][a.Shift] = append(byFaculty[a.Faculty][a.Shift], t)
	}

	rows := make([]SummaryRow, 0, len(names))
	for _, name := range names {
		fh := byFaculty[name][models.ShiftFirstHalf]
		sh := byFaculty[name][models.ShiftSecondHalf]

		row := SummaryRow{
			Faculty:               name,
			Phone:                 contacts[name].Phone,
			Email:                 contacts[name].Email,
			FirstHalfDuties:       len(fh),
			SecondHalfDuties:      len(sh),
			TotalDuties:           len(fh) + len(sh),
			FirstHalfDates:        dates.JoinDisplay(fh),
			SecondHalfDates:       dates.JoinDisplay(sh),
			FirstHalfUnavailable:  "None",
			SecondHalfUnavailable: "None",
		}
		if entry, ok := unavail[name]; ok && entry != nil {
			row.FirstHalfUnavailable = dates.FormatUnavailable(entry.FirstHalf)
			row.SecondHalfUnavailable = dates.FormatUnavailable(entry.SecondHalf)
			row.TotalUnavailable = len(entry.FirstHalf) + len(entry.SecondHalf)
		}
		rows = append(rows, row)
	}
	return rows
}

// SummaryXLSX renders summary rows as a workbook with a single
// "Faculty Duty Summary" sheet. Column widths follow the widest cell,
// capped at 50.
func SummaryXLSX(rows []SummaryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Faculty Duty Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := make([]any, len(SummaryHeader))
	widths := make([]int, len(SummaryHeader))
	for i, name := range SummaryHeader {
		header[i] = name
		widths[i] = len(name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cells := row.cells()
		for j, cell := range cells {
			if n := len(fmt.Sprint(cell)); n > widths[j] {
				widths[j] = n
			}
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return nil, err
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		w := float64(width + 2)
		if w > 50 {
			w = 50
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ChartCSV renders the duty chart: one line per assignment ordered by
// date, First Half before Second Half, with contact details joined in
// from the roster.
func ChartCSV(assignments []models.DutyAssignment, roster []models.FacultyMember) ([]byte, error) {
	contacts := map[string]models.FacultyMember{}
	for _, f := range roster {
		contacts[f.Name] = f
	}

	ordered := make([]models.DutyAssignment, len(assignments))
	copy(ordered, assignments)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		return ordered[i].Shift == models.ShiftFirstHalf && ordered[j].Shift == models.ShiftSecondHalf
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Date", "Shift", "Faculty", "Phone No", "Email ID"}); err != nil {
		return nil, err
	}
	for _, a := range ordered {
		display := a.Date
		if t, err := time.Parse(dates.StorageLayout, a.Date); err == nil {
			display = dates.Display(t)
		}
		contact := contacts[a.Faculty]
		if err := w.Write([]string{display, string(a.Shift), a.Faculty, contact.Phone, contact.Email}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
