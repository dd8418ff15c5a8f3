// Package dates converts exam dates between the display form used in
// reports (DD-MM-YYYY) and the storage form used in persisted artifacts
// (YYYY-MM-DD).
package dates

import (
	"sort"
	"strings"
	"time"
)

const (
	// DisplayLayout is the human-facing form used in report cells.
	DisplayLayout = "02-01-2006"
	// StorageLayout is the canonical form used in persisted artifacts.
	StorageLayout = "2006-01-02"
)

// ParseError reports a string that could not be parsed as a date.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return "could not parse date: " + e.Value
}

// ParseDisplay parses a strict DD-MM-YYYY date.
func ParseDisplay(s string) (time.Time, error) {
	t, err := time.Parse(DisplayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ParseError{Value: s}
	}
	return t, nil
}

// ParseFlexible parses ISO-like year-first dates, falling back to the
// display form. The heuristic mirrors the summary importer: dashed
// strings are tried as YYYY-MM-DD first, so "2025-01-05" reads as
// January 5th while "05-01-2025" falls through to display order.
func ParseFlexible(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if t, err := time.Parse(StorageLayout, trimmed); err == nil {
		return t, nil
	}
	return ParseDisplay(trimmed)
}

// StorageKey formats a date in storage form.
func StorageKey(t time.Time) string {
	return t.Format(StorageLayout)
}

// Display formats a date in display form.
func Display(t time.Time) string {
	return t.Format(DisplayLayout)
}

// JoinDisplay renders dates sorted ascending as a comma-separated list
// of display-form strings. Empty input yields an empty string.
func JoinDisplay(ts []time.Time) string {
	if len(ts) == 0 {
		return ""
	}
	sorted := make([]time.Time, len(ts))
	copy(sorted, ts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	parts := make([]string, len(sorted))
	for i, t := range sorted {
		parts[i] = Display(t)
	}
	return strings.Join(parts, ", ")
}

// FormatUnavailable renders a set of storage-form date strings sorted
// ascending in display form, or the literal "None" when the set is
// empty. Entries that fail to parse are passed through unchanged, so a
// hand-edited cell survives export.
func FormatUnavailable(keys []string) string {
	if len(keys) == 0 {
		return "None"
	}
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	parts := make([]string, 0, len(sorted))
	for _, k := range sorted {
		t, err := time.Parse(StorageLayout, k)
		if err != nil {
			parts = append(parts, k)
			continue
		}
		parts = append(parts, Display(t))
	}
	return strings.Join(parts, ", ")
}
