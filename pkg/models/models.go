package models

// Shift is one of the two fixed daily exam periods.
type Shift string

const (
	ShiftFirstHalf  Shift = "First Half"
	ShiftSecondHalf Shift = "Second Half"
)

// FacultyMember represents one row of the uploaded faculty roster.
// Name is the unique identifier; contact fields are optional.
type FacultyMember struct {
	Name  string `json:"faculty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// SlotRequirement states how many invigilators a date needs per shift.
// Dates are storage-form strings (YYYY-MM-DD) and unique within a schedule.
type SlotRequirement struct {
	Date       string `json:"date"`
	FirstHalf  int    `json:"first_half"`
	SecondHalf int    `json:"second_half"`
}

// DutyAssignment pairs one faculty member with one (date, shift) slot.
type DutyAssignment struct {
	Date    string `json:"date"`
	Shift   Shift  `json:"shift"`
	Faculty string `json:"faculty"`
}

// ShiftDates holds per-shift unavailable date lists for one faculty member.
// The lists carry storage-form date strings and contain no duplicates.
type ShiftDates struct {
	FirstHalf  []string `json:"first_half"`
	SecondHalf []string `json:"second_half"`
}

// Unavailability maps faculty name to their unavailable dates per shift.
type Unavailability map[string]*ShiftDates

// ExamConfig is free-form report-header metadata. The core never
// interprets it beyond supplying defaults when nothing is stored.
type ExamConfig struct {
	ExamType   string `json:"examType"`
	Semester   string `json:"semester"`
	Year       string `json:"year"`
	Department string `json:"department"`
	Institute  string `json:"institute"`
}

// DefaultExamConfig returns the header values used when no config is stored.
func DefaultExamConfig() ExamConfig {
	return ExamConfig{
		ExamType:   "MID SEM",
		Semester:   "MO",
		Year:       "2025",
		Department: "Computer Science & Engineering",
		Institute:  "BIT MESRA, RANCHI",
	}
}
