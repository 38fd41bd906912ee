package cli

import (
	"context"
	"fmt"
	"math"
	"time"

	"daily-log/internal/domain"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{app: app, errorHdl: NewErrorHandler()}
}

// Execute prints the averages and the correlation matrix for the selected
// date window. Without arguments the window spans the whole table.
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	if notice := c.app.api.Reload(ctx); notice != nil {
		fmt.Fprintf(c.app.out, "warning: stored log could not be read: %v\n", notice)
	}

	entries, err := c.selectEntries(args)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.app.out, "No entries found")
		return nil
	}

	summary := c.app.api.Summary(entries)
	fmt.Fprintf(c.app.out, "Days logged:       %d\n", summary.Count)
	fmt.Fprintf(c.app.out, "Avg screen time:   %s\n", fmtAvg(summary.AvgScreenTime))
	fmt.Fprintf(c.app.out, "Avg study time:    %s\n", fmtAvg(summary.AvgStudyTime))
	fmt.Fprintf(c.app.out, "Avg study quality: %s\n", fmtAvg(summary.AvgStudyQuality))
	fmt.Fprintf(c.app.out, "Avg wake-up hour:  %s\n", fmtAvg(summary.AvgWakeUpHour))

	matrix := c.app.api.Correlation(entries)
	fmt.Fprintln(c.app.out, "\nCorrelations:")
	for i, colA := range matrix.Columns {
		for j, colB := range matrix.Columns {
			if j <= i {
				continue
			}
			fmt.Fprintf(c.app.out, "  %s / %s: %s\n", colA, colB, fmtAvg(matrix.Values[i][j]))
		}
	}
	return nil
}

func (c *SummaryCommand) selectEntries(args []string) ([]domain.LogEntry, error) {
	if len(args) == 0 {
		return c.app.api.Entries(), nil
	}
	if len(args) > 2 {
		return nil, fmt.Errorf("expected at most two date arguments")
	}

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
}

func fmtAvg(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
