package domain

import "time"

// Column names, matching the persisted CSV header exactly.
const (
	ColDate              = "Date"
	ColWeekday           = "Weekday"
	ColOrdinaryDay       = "Ordinary Day"
	ColScreenTime        = "Screen Time"
	ColStudyTime         = "Study Time"
	ColStudyQuality      = "Study Quality (1-10)"
	ColMeditation        = "Meditation"
	ColMorningStudy      = "Morning Study"
	ColMorningPhone      = "Morning Phone"
	ColLunchPhone        = "Lunch Phone"
	ColDinnerPhone       = "Dinner Phone"
	ColRunning           = "Running"
	ColP                 = "P"
	ColMorningWakeUpHour = "Morning Wake Up Hour"
	ColNotes             = "Notes"
	ColPlanStrategies    = "Plan/Strategies"
)

// Columns returns the fixed 16-column schema in file order.
func Columns() []string {
	return []string{
		ColDate, ColWeekday, ColOrdinaryDay, ColScreenTime, ColStudyTime,
		ColStudyQuality, ColMeditation, ColMorningStudy, ColMorningPhone,
		ColLunchPhone, ColDinnerPhone, ColRunning, ColP,
		ColMorningWakeUpHour, ColNotes, ColPlanStrategies,
	}
}

// Table is the ordered set of log entries. Order is append order; there is
// no primary key and duplicate dates are permitted (they simply produce two
// points on the same x position in the charts).
type Table struct {
	rows []LogEntry
}

// NewTable creates an empty table with the fixed column schema.
func NewTable() *Table {
	return &Table{}
}

// NewTableWithRows creates a table seeded with the given rows.
func NewTableWithRows(rows []LogEntry) *Table {
	t := &Table{rows: make([]LogEntry, len(rows))}
	copy(t.rows, rows)
	return t
}

// Append adds an entry at the end of the table.
func (t *Table) Append(entry LogEntry) {
	t.rows = append(t.rows, entry)
}

// Rows returns a copy of the entries in insertion order.
func (t *Table) Rows() []LogEntry {
	out := make([]LogEntry, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.rows)
}

// IsEmpty reports whether the table has no entries.
func (t *Table) IsEmpty() bool {
	return len(t.rows) == 0
}

// FilterRange returns the entries whose date falls within [from, to]
// inclusive, preserving insertion order.
func (t *Table) FilterRange(from, to time.Time) []LogEntry {
	var out []LogEntry
	for _, row := range t.rows {
		if row.Date.Before(from) || row.Date.After(to) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Recent returns up to n entries with the latest dates, most recent first.
// Ties keep their relative insertion order.
func (t *Table) Recent(n int) []LogEntry {
	if n <= 0 || len(t.rows) == 0 {
		return nil
	}
	sorted := t.Rows()
	// Stable insertion sort by date descending; tables are small.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Date.After(sorted[j-1].Date); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// DateBounds returns the earliest and latest dates in the table.
// ok is false when the table is empty.
func (t *Table) DateBounds() (min, max time.Time, ok bool) {
	if len(t.rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = t.rows[0].Date, t.rows[0].Date
	for _, row := range t.rows[1:] {
		if row.Date.Before(min) {
			min = row.Date
		}
		if row.Date.After(max) {
			max = row.Date
		}
	}
	return min, max, true
}
