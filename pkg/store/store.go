// Package store persists the scheduling artifacts. Each artifact is a
// single load-all/replace-all resource; replaces run in one transaction
// so a failed write never leaves a half-written artifact behind.
package store

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anupamroy/invigilation-api-go/pkg/models"
)

// FacultyRow represents the faculty_rows table.
type FacultyRow struct {
	ID    uint   `gorm:"primaryKey" json:"-"`
	Name  string `gorm:"not null" json:"faculty"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ScheduleSlot represents the schedule_slots table.
type ScheduleSlot struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	Date       string `gorm:"index;not null" json:"date"`
	FirstHalf  int    `gorm:"default:0" json:"first_half"`
	SecondHalf int    `gorm:"default:0" json:"second_half"`
}

// AssignmentRow represents the assignment_rows table.
type AssignmentRow struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	Date    string `gorm:"index;not null" json:"date"`
	Shift   string `gorm:"not null" json:"shift"`
	Faculty string `gorm:"not null" json:"faculty"`
}

// UnavailabilityRow represents the unavailability_rows table, one row
// per (faculty, shift, date).
type UnavailabilityRow struct {
	ID      uint   `gorm:"primaryKey"`
	Faculty string `gorm:"index;not null"`
	Shift   string `gorm:"not null"`
	Date    string `gorm:"not null"`
}

// ArtifactBlob holds the opaque JSON artifacts (exam config, faculty
// groups) keyed by name.
type ArtifactBlob struct {
	Name string         `gorm:"primaryKey"`
	Data datatypes.JSON `gorm:"not null"`
}

// Store wraps the database handle behind artifact-level operations.
type Store struct {
	DB *gorm.DB
}

// Open connects to postgres when DATABASE_URL is set, otherwise to a
// local sqlite file (DATA_PATH, default duty_roster.db), and migrates
// the schema.
func Open() *Store {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "duty_roster.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&FacultyRow{}, &ScheduleSlot{}, &AssignmentRow{}, &UnavailabilityRow{}, &ArtifactBlob{})

	return &Store{DB: db}
}

// Faculty returns the stored roster in upload order. An empty store
// yields an empty roster, never an error.
func (s *Store) Faculty() ([]models.FacultyMember, error) {
	var rows []FacultyRow
	if err := s.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	roster := make([]models.FacultyMember, 0, len(rows))
	for _, row := range rows {
		roster = append(roster, models.FacultyMember{Name: row.Name, Phone: row.Phone, Email: row.Email})
	}
	return roster, nil
}

// ReplaceFaculty discards the stored roster and writes a new one.
func (s *Store) ReplaceFaculty(roster []models.FacultyMember) error {
	rows := make([]FacultyRow, 0, len(roster))
	for _, f := range roster {
		rows = append(rows, FacultyRow{Name: f.Name, Phone: f.Phone, Email: f.Email})
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&FacultyRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// Schedule returns the stored slot requirements in insertion order.
func (s *Store) Schedule() ([]models.SlotRequirement, error) {
	var rows []ScheduleSlot
	if err := s.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	schedule := make([]models.SlotRequirement, 0, len(rows))
	for _, row := range rows {
		schedule = append(schedule, models.SlotRequirement{
			Date:       row.Date,
			FirstHalf:  row.FirstHalf,
			SecondHalf: row.SecondHalf,
		})
	}
	return schedule, nil
}

// AppendScheduleSlot adds one slot requirement to the schedule.
func (s *Store) AppendScheduleSlot(slot models.SlotRequirement) error {
	return s.DB.Create(&ScheduleSlot{
		Date:       slot.Date,
		FirstHalf:  slot.FirstHalf,
		SecondHalf: slot.SecondHalf,
	}).Error
}

// DeleteScheduleDate removes every schedule entry for a date.
func (s *Store) DeleteScheduleDate(date string) error {
	return s.DB.Where("date = ?", date).Delete(&ScheduleSlot{}).Error
}

// ReplaceSchedule discards the stored schedule and writes a new one.
func (s *Store) ReplaceSchedule(schedule []models.SlotRequirement) error {
	rows := make([]ScheduleSlot, 0, len(schedule))
	for _, slot := range schedule {
		rows = append(rows, ScheduleSlot{Date: slot.Date, FirstHalf: slot.FirstHalf, SecondHalf: slot.SecondHalf})
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&ScheduleSlot{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// Assignments returns the stored duty list in insertion order.
func (s *Store) Assignments() ([]models.DutyAssignment, error) {
	var rows []AssignmentRow
	if err := s.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	assignments := make([]models.DutyAssignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, models.DutyAssignment{
			Date:    row.Date,
			Shift:   models.Shift(row.Shift),
			Faculty: row.Faculty,
		})
	}
	return assignments, nil
}

// ReplaceAssignments discards the stored duty list and writes a new one.
func (s *Store) ReplaceAssignments(assignments []models.DutyAssignment) error {
	rows := make([]AssignmentRow, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, AssignmentRow{Date: a.Date, Shift: string(a.Shift), Faculty: a.Faculty})
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&AssignmentRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// Unavailability returns the stored per-faculty unavailable date sets.
func (s *Store) Unavailability() (models.Unavailability, error) {
	var rows []UnavailabilityRow
	if err := s.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	unavail := models.Unavailability{}
	for _, row := range rows {
		entry, ok := unavail[row.Faculty]
		if !ok {
			entry = &models.ShiftDates{FirstHalf: []string{}, SecondHalf: []string{}}
			unavail[row.Faculty] = entry
		}
		if row.Shift == string(models.ShiftFirstHalf) {
			entry.FirstHalf = append(entry.FirstHalf, row.Date)
		} else {
			entry.SecondHalf = append(entry.SecondHalf, row.Date)
		}
	}
	return unavail, nil
}

// ReplaceUnavailability discards stored unavailability and writes a new set.
func (s *Store) ReplaceUnavailability(unavail models.Unavailability) error {
	var rows []UnavailabilityRow
	for faculty, entry := range unavail {
		if entry == nil {
			continue
		}
		for _, date := range entry.FirstHalf {
			rows = append(rows, UnavailabilityRow{Faculty: faculty, Shift: string(models.ShiftFirstHalf), Date: date})
		}
		for _, date := range entry.SecondHalf {
			rows = append(rows, UnavailabilityRow{Faculty: faculty, Shift: string(models.ShiftSecondHalf), Date: date})
		}
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&UnavailabilityRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// Config returns the stored exam config, or the defaults when nothing
// has been saved yet.
func (s *Store) Config() (models.ExamConfig, error) {
	var blob ArtifactBlob
	err := s.DB.Where("name = ?", "exam_config").First(&blob).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.DefaultExamConfig(), nil
		}
		return models.ExamConfig{}, err
	}
	cfg := models.DefaultExamConfig()
	if err := json.Unmarshal(blob.Data, &cfg); err != nil {
		return models.ExamConfig{}, err
	}
	return cfg, nil
}

// SaveConfig replaces the stored exam config.
func (s *Store) SaveConfig(cfg models.ExamConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.saveBlob("exam_config", data)
}

// Groups returns the stored faculty groups blob, or an empty JSON array
// when nothing has been saved. The payload is opaque to the core.
func (s *Store) Groups() (json.RawMessage, error) {
	var blob ArtifactBlob
	err := s.DB.Where("name = ?", "faculty_groups").First(&blob).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return json.RawMessage("[]"), nil
		}
		return nil, err
	}
	return json.RawMessage(blob.Data), nil
}

// SaveGroups replaces the stored faculty groups blob.
func (s *Store) SaveGroups(groups json.RawMessage) error {
	return s.saveBlob("faculty_groups", groups)
}

func (s *Store) saveBlob(name string, data []byte) error {
	blob := ArtifactBlob{Name: name, Data: datatypes.JSON(data)}
	// Single-query upsert, supported by both postgres and sqlite
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(&blob).Error
}
