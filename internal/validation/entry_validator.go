package validation

import (
	"fmt"

	"daily-log/internal/config"
	"daily-log/internal/domain"
	"daily-log/internal/hours"
)

// EntryValidator provides validation for LogEntry submissions
type EntryValidator struct {
	config *config.Config
}

// NewEntryValidator creates a new entry validator with default limits
func NewEntryValidator() *EntryValidator {
	return &EntryValidator{config: config.NewConfig()}
}

// NewEntryValidatorWithConfig creates a new entry validator using the
// configured limits
func NewEntryValidatorWithConfig(cfg *config.Config) *EntryValidator {
	return &EntryValidator{config: cfg}
}

// ValidateEntry validates a complete entry before it is appended to the
// table. Hour values that carry a legacy pass-through string are tolerated
// as-is: they were never produced by this program and repairing them is out
// of scope.
func (ev *EntryValidator) ValidateEntry(entry domain.LogEntry) error {
	validationError := NewValidationError()

	if entry.Date.IsZero() {
		validationError.AddRequiredError("date")
	} else if entry.Weekday != entry.Date.Weekday().String() {
		validationError.AddInvalidValueError("weekday", entry.Weekday,
			fmt.Sprintf("must equal the weekday of %s", entry.Date.Format(domain.DateLayout)))
	}

	for col, flag := range entry.Flags() {
		if !flag.IsValid() {
			validationError.AddInvalidValueError(col, string(flag), `must be "Yes" or "No"`)
		}
	}

	min, max := ev.config.Validation.QualityMin, ev.config.Validation.QualityMax
	if entry.StudyQuality < min || entry.StudyQuality > max {
		validationError.AddInvalidRangeError("study_quality", entry.StudyQuality,
			fmt.Sprintf("must be between %d and %d", min, max))
	}

	ev.validateHours(validationError, "screen_time", entry.ScreenTime)
	ev.validateHours(validationError, "study_time", entry.StudyTime)
	ev.validateHours(validationError, "morning_wake_up_hour", entry.MorningWakeUpHour)

	maxNotes := ev.config.Validation.NotesMaxLength
	if len(entry.Notes) > maxNotes {
		validationError.AddInvalidLengthError("notes", entry.Notes, maxNotes)
	}
	if len(entry.PlanStrategies) > maxNotes {
		validationError.AddInvalidLengthError("plan_strategies", entry.PlanStrategies, maxNotes)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateClock validates an hour/minute pair from a time-of-day input.
func (ev *EntryValidator) ValidateClock(field string, hour, minute int) error {
	validationError := NewValidationError()

	if hour < 0 || hour > 23 {
		validationError.AddInvalidRangeError(field, hour, "hour must be between 0 and 23")
	}
	if minute < 0 || minute > 59 {
		validationError.AddInvalidRangeError(field, minute, "minute must be between 0 and 59")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

func (ev *EntryValidator) validateHours(ve *ValidationError, field string, value hours.Result) {
	if !value.Normalized {
		return
	}
	if value.Value < 0 || value.Value >= 24 {
		ve.AddInvalidRangeError(field, value.Value, "must be at least 0 and below 24")
	}
}
