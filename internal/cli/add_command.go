package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"daily-log/internal/api"
	"daily-log/internal/domain"
)

// AddOptions carries one entry submission as it arrives from the flags.
// Clock values use the H:MM form the log file itself used historically.
type AddOptions struct {
	Date    string
	Screen  string
	Study   string
	Wake    string
	Quality int

	Ordinary     bool
	Meditation   bool
	MorningStudy bool
	MorningPhone bool
	LunchPhone   bool
	DinnerPhone  bool
	Running      bool
	P            bool

	Notes string
	Plan  string
}

// AddCommand handles the add command
type AddCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, errorHdl: NewErrorHandler()}
}

// Execute appends one entry and pushes the table to the remote store.
// The table is seeded from the store first so the push carries the full
// history, not just the new row.
func (c *AddCommand) Execute(ctx context.Context, opts AddOptions) error {
	date := timeNow()
	if opts.Date != "" {
		parsed, err := time.Parse(domain.DateLayout, opts.Date)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected a date like 2006-01-02", opts.Date)
		}
		date = parsed
	}

	screenH, screenM, err := parseClock(opts.Screen)
	if err != nil {
		return fmt.Errorf("invalid --screen %q: %w", opts.Screen, err)
	}
	studyH, studyM, err := parseClock(opts.Study)
	if err != nil {
		return fmt.Errorf("invalid --study %q: %w", opts.Study, err)
	}
	wakeH, wakeM, err := parseClock(opts.Wake)
	if err != nil {
		return fmt.Errorf("invalid --wake %q: %w", opts.Wake, err)
	}

	if notice := c.app.api.Reload(ctx); notice != nil {
		fmt.Fprintf(c.app.out, "warning: stored log could not be read, starting from an empty table: %v\n", notice)
	}

	input := api.NewEntryInput{
		Date:           date,
		ScreenHour:     screenH,
		ScreenMinute:   screenM,
		StudyHour:      studyH,
		StudyMinute:    studyM,
		WakeHour:       wakeH,
		WakeMinute:     wakeM,
		StudyQuality:   opts.Quality,
		OrdinaryDay:    flagFromBool(opts.Ordinary),
		Meditation:     flagFromBool(opts.Meditation),
		MorningStudy:   flagFromBool(opts.MorningStudy),
		MorningPhone:   flagFromBool(opts.MorningPhone),
		LunchPhone:     flagFromBool(opts.LunchPhone),
		DinnerPhone:    flagFromBool(opts.DinnerPhone),
		Running:        flagFromBool(opts.Running),
		P:              flagFromBool(opts.P),
		Notes:          opts.Notes,
		PlanStrategies: opts.Plan,
	}

	entry, err := c.app.api.AddEntry(ctx, input)
	if err != nil {
		return c.errorHdl.Handle("add entry", err)
	}

	fmt.Fprintf(c.app.out, "Saved entry for %s (%s)\n", entry.Date.Format(domain.DateLayout), entry.Weekday)
	return nil
}

// parseClock parses an H:MM value such as "3:30". An empty value means
// zero hours.
func parseClock(value string) (hour, minute int, err error) {
	if value == "" {
		return 0, 0, nil
	}
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected H:MM")
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("expected H:MM")
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("expected H:MM")
	}
	return hour, minute, nil
}

func flagFromBool(b bool) domain.Flag {
	if b {
		return domain.Yes
	}
	return domain.No
}
