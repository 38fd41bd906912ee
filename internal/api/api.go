package api

import (
	"context"
	"time"

	"daily-log/internal/config"
	"daily-log/internal/domain"
	"daily-log/internal/hours"
	"daily-log/internal/repository/github"
	"daily-log/internal/services"
	"daily-log/internal/validation"
)

// NewEntryInput carries one form submission. Time-of-day fields arrive as
// hour/minute pairs exactly as the form widgets produce them.
type NewEntryInput struct {
	Date time.Time

	ScreenHour   int
	ScreenMinute int
	StudyHour    int
	StudyMinute  int
	WakeHour     int
	WakeMinute   int

	StudyQuality int

	OrdinaryDay  domain.Flag
	Meditation   domain.Flag
	MorningStudy domain.Flag
	MorningPhone domain.Flag
	LunchPhone   domain.Flag
	DinnerPhone  domain.Flag
	Running      domain.Flag
	P            domain.Flag

	Notes          string
	PlanStrategies string
}

// API defines the interface for all daily log operations exposed to the
// web layer and the CLI. One instance serves one session.
type API interface {
	// Reload seeds the session table from the remote store. A non-nil
	// error is an informational notice; the session is usable either way.
	Reload(ctx context.Context) error

	// AddEntry builds, validates, appends and pushes a new entry.
	AddEntry(ctx context.Context, input NewEntryInput) (domain.LogEntry, error)

	// Views over the session table
	Entries() []domain.LogEntry
	EntriesBetween(from, to time.Time) []domain.LogEntry
	Recent() []domain.LogEntry
	Bounds() (min, max time.Time, ok bool)
	Len() int

	// Analytics over a date-filtered view
	Summary(entries []domain.LogEntry) *services.Summary
	Series(entries []domain.LogEntry, column string) []services.Point
	Correlation(entries []domain.LogEntry) *services.CorrelationMatrix

	// ExportCSV serializes the session table in the persisted file format.
	ExportCSV() ([]byte, error)
}

type apiImpl struct {
	logs      services.LogService
	stats     services.StatsService
	validator *validation.EntryValidator
	cfg       *config.Config
}

// New creates a new API instance bound to one session.
func New(repo github.Repository, cfg *config.Config) API {
	return &apiImpl{
		logs:      services.NewLogService(repo, cfg),
		stats:     services.NewStatsService(),
		validator: validation.NewEntryValidatorWithConfig(cfg),
		cfg:       cfg,
	}
}

func (a *apiImpl) Reload(ctx context.Context) error {
	return a.logs.Load(ctx)
}

// AddEntry converts the raw form input into a LogEntry and runs the full
// append-and-push sequence. Clock pairs are validated before conversion so
// a bad widget value never reaches the table.
func (a *apiImpl) AddEntry(ctx context.Context, input NewEntryInput) (domain.LogEntry, error) {
	if err := a.validator.ValidateClock("screen_time", input.ScreenHour, input.ScreenMinute); err != nil {
		return domain.LogEntry{}, err
	}
	if err := a.validator.ValidateClock("study_time", input.StudyHour, input.StudyMinute); err != nil {
		return domain.LogEntry{}, err
	}
	if err := a.validator.ValidateClock("morning_wake_up_hour", input.WakeHour, input.WakeMinute); err != nil {
		return domain.LogEntry{}, err
	}

	entry := domain.NewLogEntry(input.Date)
	entry.OrdinaryDay = input.OrdinaryDay
	entry.ScreenTime = hours.FromDecimal(hours.FromClock(input.ScreenHour, input.ScreenMinute))
	entry.StudyTime = hours.FromDecimal(hours.FromClock(input.StudyHour, input.StudyMinute))
	entry.StudyQuality = input.StudyQuality
	entry.Meditation = input.Meditation
	entry.MorningStudy = input.MorningStudy
	entry.MorningPhone = input.MorningPhone
	entry.LunchPhone = input.LunchPhone
	entry.DinnerPhone = input.DinnerPhone
	entry.Running = input.Running
	entry.P = input.P
	entry.MorningWakeUpHour = hours.FromDecimal(hours.FromClock(input.WakeHour, input.WakeMinute))
	entry.Notes = input.Notes
	entry.PlanStrategies = input.PlanStrategies

	if err := a.logs.Append(ctx, entry); err != nil {
		return domain.LogEntry{}, err
	}
	return entry, nil
}

func (a *apiImpl) Entries() []domain.LogEntry {
	return a.logs.Entries()
}

func (a *apiImpl) EntriesBetween(from, to time.Time) []domain.LogEntry {
	return a.logs.EntriesBetween(from, to)
}

func (a *apiImpl) Recent() []domain.LogEntry {
	return a.logs.Recent(a.cfg.Display.RecentRows)
}

func (a *apiImpl) Bounds() (time.Time, time.Time, bool) {
	return a.logs.Bounds()
}

func (a *apiImpl) Len() int {
	return a.logs.Len()
}

func (a *apiImpl) Summary(entries []domain.LogEntry) *services.Summary {
	return a.stats.Summary(entries)
}

func (a *apiImpl) Series(entries []domain.LogEntry, column string) []services.Point {
	return a.stats.Series(entries, column)
}

func (a *apiImpl) Correlation(entries []domain.LogEntry) *services.CorrelationMatrix {
	return a.stats.Correlation(entries)
}

func (a *apiImpl) ExportCSV() ([]byte, error) {
	return github.NewCodec().Encode(domain.NewTableWithRows(a.logs.Entries()))
}
