package cli

import (
	"context"
	"fmt"
	"time"

	"daily-log/internal/domain"
)

// ListCommand handles the list command
type ListCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHdl: NewErrorHandler()}
}

// Execute lists entries from the remote store. Without arguments it shows
// the most recent rows; with one or two date arguments it shows the rows
// inside that inclusive window.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if notice := c.app.api.Reload(ctx); notice != nil {
		fmt.Fprintf(c.app.out, "warning: stored log could not be read: %v\n", notice)
	}

	entries, err := c.selectEntries(args)
	if err != nil {
		return err
	}

	return c.printEntries(entries)
}

func (c *ListCommand) selectEntries(args []string) ([]domain.LogEntry, error) {
	switch len(args) {
	case 0:
		return c.app.api.Recent(), nil
	case 1, 2:
		from, err := time.Parse(domain.DateLayout, args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: expected a date like 2006-01-02", args[0])
		}
		to := timeNow()
		if len(args) == 2 {
			to, err = time.Parse(domain.DateLayout, args[1])
			if err != nil {
				return nil, fmt.Errorf("invalid date %q: expected a date like 2006-01-02", args[1])
			}
		}
		return c.app.api.EntriesBetween(from, to), nil
	default:
		return nil, fmt.Errorf("expected at most two date arguments")
	}
}

// printEntries prints one line per entry:
// date (weekday): screen Xh, study Yh quality Q, woke up at W
func (c *ListCommand) printEntries(entries []domain.LogEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(c.app.out, "No entries found")
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(c.app.out, "%s (%s): screen %sh, study %sh quality %d, woke up at %s\n",
			entry.Date.Format(domain.DateLayout),
			entry.Weekday,
			entry.ScreenTime.String(),
			entry.StudyTime.String(),
			entry.StudyQuality,
			entry.MorningWakeUpHour.String(),
		)
		if entry.Notes != "" {
			fmt.Fprintf(c.app.out, "  notes: %s\n", entry.Notes)
		}
	}
	return nil
}
