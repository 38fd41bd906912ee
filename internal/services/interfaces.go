package services

import (
	"context"
	"time"

	"daily-log/internal/domain"
)

// DateRange represents an inclusive calendar-date window for views
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Summary represents aggregate statistics for a date-filtered view
type Summary struct {
	Count           int     `json:"count"`
	AvgScreenTime   float64 `json:"avg_screen_time"`
	AvgStudyTime    float64 `json:"avg_study_time"`
	AvgStudyQuality float64 `json:"avg_study_quality"`
	AvgWakeUpHour   float64 `json:"avg_wake_up_hour"`
}

// Point is one chart sample: a date paired with a numeric value
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// CorrelationMatrix holds pairwise Pearson correlations over the numeric
// columns. Values[i][j] is the correlation of Columns[i] with Columns[j];
// NaN marks pairs with too few complete observations.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// LogService owns one session's table and the read-modify-write sequence
// against the remote store. Instances are session-scoped, never global.
type LogService interface {
	// Load seeds the session table from the remote store. The table is
	// always usable afterwards; a non-nil error is an informational
	// notice that the store was unreadable and the session starts empty.
	Load(ctx context.Context) error

	// Append validates the entry, appends it to the session table and
	// pushes the whole table to the store, fetching a fresh revision
	// first. A failed push leaves the in-memory append in place.
	Append(ctx context.Context, entry domain.LogEntry) error

	// Entries returns all rows in insertion order.
	Entries() []domain.LogEntry

	// EntriesBetween returns the rows inside the inclusive date window.
	EntriesBetween(from, to time.Time) []domain.LogEntry

	// Recent returns up to n rows with the latest dates, newest first.
	Recent(n int) []domain.LogEntry

	// Bounds returns the earliest and latest dates in the table.
	Bounds() (min, max time.Time, ok bool)

	// Len returns the number of rows in the session table.
	Len() int
}

// StatsService computes the aggregate views rendered by the charts page
type StatsService interface {
	// Summary computes averages over the normalized numeric columns.
	Summary(entries []domain.LogEntry) *Summary

	// Series extracts the (date, value) samples for one numeric column,
	// skipping rows whose value is a legacy pass-through string.
	Series(entries []domain.LogEntry, column string) []Point

	// Correlation computes the pairwise Pearson matrix over the numeric
	// columns, using pairwise-complete observations.
	Correlation(entries []domain.LogEntry) *CorrelationMatrix
}
