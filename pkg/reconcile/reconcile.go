// Package reconcile rebuilds scheduling state from an edited faculty
// summary report. It is the inverse of roster.Generate: staff export
// the duty summary, adjust it by hand, and upload it back; this package
// recovers the assignments, the per-date slot requirements, and the
// unavailability records implied by the edited cells.
package reconcile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/anupamroy/invigilation-api-go/pkg/dates"
	"github.com/anupamroy/invigilation-api-go/pkg/models"
)

// SummaryColumns are required on every uploaded summary. The gate runs
// before any other processing.
var SummaryColumns = []string{
	"Faculty",
	"First Half Duties",
	"Second Half Duties",
	"First Half Dates",
	"Second Half Dates",
}

// SchemaError reports required columns missing from the summary table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns in faculty summary: %s", strings.Join(e.Missing, ", "))
}

// Warning records a single skipped cell or token. Bad dates never abort
// a reconciliation; they are collected here so callers can report them.
type Warning struct {
	Faculty string `json:"faculty,omitempty"`
	Column  string `json:"column"`
	Value   string `json:"value"`
	Reason  string `json:"reason"`
}

// Result is the reconstructed state.
//
// Schedule is always derived from the summary itself. When an explicit
// schedule table was uploaded its rows land in ScheduleOverride and win
// for persistence; the derived schedule remains the fallback.
type Result struct {
	Assignments      []models.DutyAssignment
	Schedule         []models.SlotRequirement
	ScheduleOverride []models.SlotRequirement
	Unavailability   models.Unavailability
	Warnings         []Warning
}

// EffectiveSchedule returns the schedule to persist: the explicit
// override when one was supplied, the summary-derived one otherwise.
func (r *Result) EffectiveSchedule() []models.SlotRequirement {
	if len(r.ScheduleOverride) > 0 {
		return r.ScheduleOverride
	}
	return r.Schedule
}

// FromSummary reconstructs assignments, schedule and unavailability
// from an edited summary table, plus optional explicit schedule and
// unavailability tables. scheduleTable and unavailTable may be nil.
func FromSummary(summary, scheduleTable, unavailTable *Table) (*Result, error) {
	if missing := summary.Missing(SummaryColumns...); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	res := &Result{Unavailability: models.Unavailability{}}

	res.assignmentsFromSummary(summary)
	if scheduleTable != nil {
		res.scheduleFromTable(scheduleTable)
	}
	// A dedicated unavailability table, once supplied, suppresses the
	// summary-derived fallback even when it turns out to be unusable.
	if unavailTable != nil {
		res.unavailabilityFromTable(unavailTable)
	} else {
		res.unavailabilityFromSummary(summary)
	}

	return res, nil
}

func (r *Result) warnf(faculty, column, value, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		Faculty: faculty,
		Column:  column,
		Value:   value,
		Reason:  fmt.Sprintf(format, args...),
	})
}

// splitDates breaks a comma-joined cell into trimmed tokens, dropping
// empties and the literal "nan" that spreadsheet tools write into
// blank cells.
func splitDates(cell string) []string {
	var out []string
	for _, tok := range strings.Split(cell, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" || tok == "nan" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// assignmentsFromSummary emits one assignment per parsed duty date and
// tallies them into a per-date schedule, merged so each date appears
// once with both half counts.
func (r *Result) assignmentsFromSummary(summary *Table) {
	type tallyKey struct {
		date  string
		shift models.Shift
	}
	tally := map[tallyKey]int{}

	for _, row := range summary.Rows {
		faculty := summary.Cell(row, "Faculty")
		for _, half := range []struct {
			column string
			shift  models.Shift
		}{
			{"First Half Dates", models.ShiftFirstHalf},
			{"Second Half Dates", models.ShiftSecondHalf},
		} {
			for _, tok := range splitDates(summary.Cell(row, half.column)) {
				t, err := dates.ParseDisplay(tok)
				if err != nil {
					r.warnf(faculty, half.column, tok, "could not parse duty date")
					continue
				}
				key := dates.StorageKey(t)
				r.Assignments = append(r.Assignments, models.DutyAssignment{
					Date:    key,
					Shift:   half.shift,
					Faculty: faculty,
				})
				tally[tallyKey{key, half.shift}]++
			}
		}
	}

	merged := map[string]*models.SlotRequirement{}
	for key, count := range tally {
		slot, ok := merged[key.date]
		if !ok {
			slot = &models.SlotRequirement{Date: key.date}
			merged[key.date] = slot
		}
		if key.shift == models.ShiftFirstHalf {
			slot.FirstHalf += count
		} else {
			slot.SecondHalf += count
		}
	}

	for _, slot := range merged {
		r.Schedule = append(r.Schedule, *slot)
	}
	sort.Slice(r.Schedule, func(i, j int) bool { return r.Schedule[i].Date < r.Schedule[j].Date })
}

// scheduleFromTable reads an explicit schedule upload. Rows with
// unparseable dates are skipped with a warning; count cells default to
// zero when absent or not a number.
func (r *Result) scheduleFromTable(table *Table) {
	if !table.HasColumn("Date") {
		return
	}
	for _, row := range table.Rows {
		cell := table.Cell(row, "Date")
		if cell == "" || cell == "nan" {
			continue
		}
		t, err := dates.ParseFlexible(cell)
		if err != nil {
			r.warnf("", "Date", cell, "could not parse schedule date")
			continue
		}
		r.ScheduleOverride = append(r.ScheduleOverride, models.SlotRequirement{
			Date:       dates.StorageKey(t),
			FirstHalf:  parseCount(table.Cell(row, "First Half")),
			SecondHalf: parseCount(table.Cell(row, "Second Half")),
		})
	}
}

func parseCount(cell string) int {
	n, err := strconv.Atoi(cell)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// unavailabilityFromTable accepts either the long form (one row per
// Faculty/Date/Shift) or the wide form (comma-joined date lists per
// faculty row).
func (r *Result) unavailabilityFromTable(table *Table) {
	if !table.HasColumn("Faculty") {
		return
	}
	longForm := table.HasColumn("Date") && table.HasColumn("Shift")
	wideForm := table.HasColumn("First Half Dates") && table.HasColumn("Second Half Dates")

	for _, row := range table.Rows {
		faculty := table.Cell(row, "Faculty")
		if faculty == "" || faculty == "nan" {
			continue
		}
		entry := r.unavailEntry(faculty)

		switch {
		case longForm:
			cell := table.Cell(row, "Date")
			shift := table.Cell(row, "Shift")
			if cell == "" || cell == "nan" || shift == "" || shift == "nan" {
				continue
			}
			t, err := dates.ParseFlexible(cell)
			if err != nil {
				r.warnf(faculty, "Date", cell, "could not parse unavailable date")
				continue
			}
			key := dates.StorageKey(t)
			if strings.Contains(shift, string(models.ShiftFirstHalf)) {
				entry.FirstHalf = appendUnique(entry.FirstHalf, key)
			} else if strings.Contains(shift, string(models.ShiftSecondHalf)) {
				entry.SecondHalf = appendUnique(entry.SecondHalf, key)
			}

		case wideForm:
			r.addUnavailList(entry, faculty, "First Half Dates", table.Cell(row, "First Half Dates"), true)
			r.addUnavailList(entry, faculty, "Second Half Dates", table.Cell(row, "Second Half Dates"), false)
		}
	}
}

// unavailabilityFromSummary derives unavailability from the summary's
// own Unavailable columns when no dedicated table was uploaded. The
// exported summary writes "None" for empty sets, so that literal is
// skipped on the way back in.
func (r *Result) unavailabilityFromSummary(summary *Table) {
	for _, row := range summary.Rows {
		faculty := summary.Cell(row, "Faculty")
		entry := r.unavailEntry(faculty)

		fh := summary.Cell(row, "First Half Unavailable")
		if fh != "" && fh != "None" && fh != "nan" {
			r.addUnavailList(entry, faculty, "First Half Unavailable", fh, true)
		}
		sh := summary.Cell(row, "Second Half Unavailable")
		if sh != "" && sh != "None" && sh != "nan" {
			r.addUnavailList(entry, faculty, "Second Half Unavailable", sh, false)
		}
	}
}

func (r *Result) unavailEntry(faculty string) *models.ShiftDates {
	entry, ok := r.Unavailability[faculty]
	if !ok {
		entry = &models.ShiftDates{FirstHalf: []string{}, SecondHalf: []string{}}
		r.Unavailability[faculty] = entry
	}
	return entry
}

func (r *Result) addUnavailList(entry *models.ShiftDates, faculty, column, cell string, firstHalf bool) {
	for _, tok := range splitDates(cell) {
		t, err := dates.ParseDisplay(tok)
		if err != nil {
			r.warnf(faculty, column, tok, "could not parse unavailable date")
			continue
		}
		key := dates.StorageKey(t)
		if firstHalf {
			entry.FirstHalf = appendUnique(entry.FirstHalf, key)
		} else {
			entry.SecondHalf = appendUnique(entry.SecondHalf, key)
		}
	}
}

func appendUnique(list []string, key string) []string {
	for _, existing := range list {
		if existing == key {
			return list
		}
	}
	return append(list, key)
}
