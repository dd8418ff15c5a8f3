// Package roster distributes invigilation duties over a faculty list.
package roster

import (
	"github.com/anupamroy/invigilation-api-go/pkg/models"
)

// ScheduleConfigError reports a malformed schedule entry.
type ScheduleConfigError struct {
	Index  int
	Reason string
}

func (e *ScheduleConfigError) Error() string {
	return "invalid schedule entry: " + e.Reason
}

// Generate assigns faculty to every required slot by round-robin
// rotation. The rotation index is shared across the entire run, not
// reset per date or shift, so duties spread evenly over consecutive
// days. Unavailability and load are deliberately ignored; callers edit
// the resulting summary and re-import it to correct individual duties.
//
// For each schedule entry, in input order, First Half slots are filled
// before Second Half slots. With an empty faculty list the slots are
// left unfilled and the result is empty.
func Generate(facultyNames []string, schedule []models.SlotRequirement) ([]models.DutyAssignment, error) {
	assignments := []models.DutyAssignment{}
	idx := 0

	for i, day := range schedule {
		if day.Date == "" {
			return nil, &ScheduleConfigError{Index: i, Reason: "missing date"}
		}

		halves := []struct {
			shift models.Shift
			count int
		}{
			{models.ShiftFirstHalf, day.FirstHalf},
			{models.ShiftSecondHalf, day.SecondHalf},
		}

		for _, half := range halves {
			// Negative counts behave as zero repetitions.
			for n := 0; n < half.count; n++ {
				if len(facultyNames) == 0 {
					break
				}
				assignments = append(assignments, models.DutyAssignment{
					Date:    day.Date,
					Shift:   half.shift,
					Faculty: facultyNames[idx%len(facultyNames)],
				})
				idx++
			}
		}
	}

	return assignments, nil
}
