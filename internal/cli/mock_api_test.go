package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"daily-log/internal/api"
	"daily-log/internal/config"
	"daily-log/internal/domain"
	"daily-log/internal/hours"
	"daily-log/internal/services"
)

// mockAPI records calls and serves canned entries to the command handlers.
type mockAPI struct {
	entries   []domain.LogEntry
	reloadErr error
	addErr    error
	exportErr error

	reloadCalls int
	added       []api.NewEntryInput
}

func (m *mockAPI) Reload(ctx context.Context) error {
	m.reloadCalls++
	return m.reloadErr
}

func (m *mockAPI) AddEntry(ctx context.Context, input api.NewEntryInput) (domain.LogEntry, error) {
	if m.addErr != nil {
		return domain.LogEntry{}, m.addErr
	}
	m.added = append(m.added, input)
	entry := domain.NewLogEntry(input.Date)
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *mockAPI) Entries() []domain.LogEntry {
	return m.entries
}

func (m *mockAPI) EntriesBetween(from, to time.Time) []domain.LogEntry {
	return domain.NewTableWithRows(m.entries).FilterRange(from, to)
}

func (m *mockAPI) Recent() []domain.LogEntry {
	return domain.NewTableWithRows(m.entries).Recent(3)
}

func (m *mockAPI) Bounds() (time.Time, time.Time, bool) {
	return domain.NewTableWithRows(m.entries).DateBounds()
}

func (m *mockAPI) Len() int {
	return len(m.entries)
}

func (m *mockAPI) Summary(entries []domain.LogEntry) *services.Summary {
	return services.NewStatsService().Summary(entries)
}

func (m *mockAPI) Series(entries []domain.LogEntry, column string) []services.Point {
	return services.NewStatsService().Series(entries, column)
}

func (m *mockAPI) Correlation(entries []domain.LogEntry) *services.CorrelationMatrix {
	return services.NewStatsService().Correlation(entries)
}

func (m *mockAPI) ExportCSV() ([]byte, error) {
	if m.exportErr != nil {
		return nil, m.exportErr
	}
	return []byte("Date,Weekday\n"), nil
}

func testApp(mock *mockAPI) *App {
	cfg := config.NewConfig()
	cfg.GitHub.Owner = "someone"
	cfg.GitHub.Repo = "habit-data"
	cfg.GitHub.FilePath = "daily_log.csv"
	cfg.GitHub.Branch = "main"
	cfg.GitHub.Token = "secret"
	return NewAppWithConfig(mock, cfg)
}

func loggedEntry(t *testing.T, date string, screen float64, quality int) domain.LogEntry {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, date)
	require.NoError(t, err)
	entry := domain.NewLogEntry(d)
	entry.ScreenTime = hours.FromDecimal(screen)
	entry.StudyTime = hours.FromDecimal(2.25)
	entry.StudyQuality = quality
	entry.MorningWakeUpHour = hours.FromDecimal(7.5)
	return entry
}
