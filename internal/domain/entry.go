package domain

import (
	"time"

	"daily-log/internal/hours"
)

// Flag is a binary habit choice. The log schema only knows Yes and No.
type Flag string

const (
	Yes Flag = "Yes"
	No  Flag = "No"
)

// IsValid checks that the flag is one of the two allowed values.
func (f Flag) IsValid() bool {
	return f == Yes || f == No
}

// DateLayout is the calendar-date text format used in the CSV file.
const DateLayout = "2006-01-02"

// LogEntry represents one day's habit log.
// This is a pure domain model without storage-specific concerns.
type LogEntry struct {
	Date              time.Time
	Weekday           string
	OrdinaryDay       Flag
	ScreenTime        hours.Result
	StudyTime         hours.Result
	StudyQuality      int
	Meditation        Flag
	MorningStudy      Flag
	MorningPhone      Flag
	LunchPhone        Flag
	DinnerPhone       Flag
	Running           Flag
	P                 Flag
	MorningWakeUpHour hours.Result
	Notes             string
	PlanStrategies    string
}

// NewLogEntry creates a LogEntry for the given date with the weekday derived
// from it. Callers must never set Weekday independently; the invariant is
// weekday == name of day(date).
func NewLogEntry(date time.Time) LogEntry {
	return LogEntry{
		Date:    date,
		Weekday: date.Weekday().String(),
	}
}

// SyncWeekday re-derives the weekday from the date. Used after loading rows
// whose stored weekday may disagree with the date column.
func (e *LogEntry) SyncWeekday() {
	e.Weekday = e.Date.Weekday().String()
}

// IsValid checks if the entry has valid data.
func (e LogEntry) IsValid() bool {
	if e.Date.IsZero() {
		return false
	}
	if e.Weekday != e.Date.Weekday().String() {
		return false
	}
	return true
}

// Flags returns the binary columns in schema order, keyed by column name.
// Validation and the correlation view iterate these rather than hardcoding
// the eight field names in multiple places.
func (e LogEntry) Flags() map[string]Flag {
	return map[string]Flag{
		ColOrdinaryDay:  e.OrdinaryDay,
		ColMeditation:   e.Meditation,
		ColMorningStudy: e.MorningStudy,
		ColMorningPhone: e.MorningPhone,
		ColLunchPhone:   e.LunchPhone,
		ColDinnerPhone:  e.DinnerPhone,
		ColRunning:      e.Running,
		ColP:            e.P,
	}
}
