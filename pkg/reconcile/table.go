package reconcile

import "strings"

// Table is a normalized tabular upload: a header row plus data rows.
// Handlers build one from whatever file format was uploaded; the
// reconciliation logic only ever sees this shape.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// headerAliases maps lowercased header variants seen in real uploads to
// their canonical column names.
var headerAliases = map[string]string{
	"faculty":  "Faculty",
	"date":     "Date",
	"shift":    "Shift",
	"phone no": "Phone No",
	"email id": "Email Id",
	"email":    "Email Id",
}

// NewTable builds a Table, canonicalizing known header variants so the
// rest of the package can match columns by exact name.
func NewTable(header []string, rows [][]string) *Table {
	canonical := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if alias, ok := headerAliases[strings.ToLower(name)]; ok {
			name = alias
		}
		canonical[i] = name
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return &Table{Header: canonical, Rows: rows, index: index}
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Missing returns the subset of required column names the table lacks.
func (t *Table) Missing(required ...string) []string {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Cell returns the named column of a row, or "" when the column is
// absent or the row is short.
func (t *Table) Cell(row []string, name string) string {
	idx, ok := t.index[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
