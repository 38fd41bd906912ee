package domain

import (
	"fmt"
	"strconv"
	"time"

	"daily-log/internal/hours"
)

// dateLayouts are the accepted forms for the Date column. Historical files
// written by earlier tooling carry a midnight timestamp alongside the plain
// calendar date.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// RecordMapper converts between LogEntry and its CSV record form.
type RecordMapper struct{}

// NewRecordMapper creates a new RecordMapper instance.
func NewRecordMapper() *RecordMapper {
	return &RecordMapper{}
}

// ToRecord converts an entry to a CSV record in fixed column order.
func (m *RecordMapper) ToRecord(entry LogEntry) []string {
	return []string{
		entry.Date.Format(DateLayout),
		entry.Weekday,
		string(entry.OrdinaryDay),
		entry.ScreenTime.String(),
		entry.StudyTime.String(),
		strconv.Itoa(entry.StudyQuality),
		string(entry.Meditation),
		string(entry.MorningStudy),
		string(entry.MorningPhone),
		string(entry.LunchPhone),
		string(entry.DinnerPhone),
		string(entry.Running),
		string(entry.P),
		entry.MorningWakeUpHour.String(),
		entry.Notes,
		entry.PlanStrategies,
	}
}

// FromRecord converts a CSV record to an entry. index maps column names to
// positions in the record, built from the file's header row. All columns
// except Morning Wake Up Hour must be present; the wake-up column is the
// single tolerated legacy omission.
func (m *RecordMapper) FromRecord(record []string, index map[string]int) (LogEntry, error) {
	field := func(col string) (string, error) {
		i, ok := index[col]
		if !ok {
			return "", fmt.Errorf("missing column %q", col)
		}
		if i >= len(record) {
			return "", fmt.Errorf("record too short for column %q", col)
		}
		return record[i], nil
	}

	rawDate, err := field(ColDate)
	if err != nil {
		return LogEntry{}, err
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return LogEntry{}, err
	}

	entry := NewLogEntry(date)

	for col, dst := range map[string]*Flag{
		ColOrdinaryDay:  &entry.OrdinaryDay,
		ColMeditation:   &entry.Meditation,
		ColMorningStudy: &entry.MorningStudy,
		ColMorningPhone: &entry.MorningPhone,
		ColLunchPhone:   &entry.LunchPhone,
		ColDinnerPhone:  &entry.DinnerPhone,
		ColRunning:      &entry.Running,
		ColP:            &entry.P,
	} {
		raw, err := field(col)
		if err != nil {
			return LogEntry{}, err
		}
		*dst = Flag(raw)
	}

	rawScreen, err := field(ColScreenTime)
	if err != nil {
		return LogEntry{}, err
	}
	entry.ScreenTime = hours.Normalize(rawScreen)

	rawStudy, err := field(ColStudyTime)
	if err != nil {
		return LogEntry{}, err
	}
	entry.StudyTime = hours.Normalize(rawStudy)

	rawQuality, err := field(ColStudyQuality)
	if err != nil {
		return LogEntry{}, err
	}
	if quality, err := strconv.Atoi(rawQuality); err == nil {
		entry.StudyQuality = quality
	}

	// Legacy files may predate the wake-up column entirely.
	if _, ok := index[ColMorningWakeUpHour]; ok {
		raw, err := field(ColMorningWakeUpHour)
		if err != nil {
			return LogEntry{}, err
		}
		entry.MorningWakeUpHour = hours.Normalize(raw)
	}

	if entry.Notes, err = field(ColNotes); err != nil {
		return LogEntry{}, err
	}
	if entry.PlanStrategies, err = field(ColPlanStrategies); err != nil {
		return LogEntry{}, err
	}

	return entry, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}
