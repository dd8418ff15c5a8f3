package reconcile

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/anupamroy/invigilation-api-go/pkg/models"
)

// ErrUnsupportedFormat reports an upload that is neither xlsx nor csv.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// ReadFile loads a tabular file into a Table. The format is chosen by
// extension: .xlsx workbooks read their first sheet, .csv files read
// with a tolerant field count. Anything else is ErrUnsupportedFormat.
func ReadFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return NewTable(nil, nil), nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return NewTable(nil, nil), nil
	}
	return NewTable(rows[0], rows[1:]), nil
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return NewTable(nil, nil), nil
	}
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		rows = append(rows, record)
	}
	return NewTable(header, rows), nil
}

// RosterFromTable extracts faculty members from a roster table. Header
// variants (faculty/Faculty, Email Id/Email ID/email) are already
// canonicalized by NewTable; rows without a name are dropped.
func RosterFromTable(t *Table) []models.FacultyMember {
	roster := make([]models.FacultyMember, 0, len(t.Rows))
	for _, row := range t.Rows {
		name := t.Cell(row, "Faculty")
		if name == "" || name == "nan" {
			continue
		}
		roster = append(roster, models.FacultyMember{
			Name:  name,
			Phone: t.Cell(row, "Phone No"),
			Email: t.Cell(row, "Email Id"),
		})
	}
	return roster
}
