package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"daily-log/internal/config"
	"daily-log/internal/domain"
	"daily-log/internal/errors"
	"daily-log/internal/hours"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepository is a controllable github.Repository for service tests.
type stubRepository struct {
	readTable   *domain.Table
	readErr     error
	revision    string
	revisionErr error
	writeErr    error

	fetchCalls int
	writeCalls int
	written    *domain.Table
	writtenRev string
	writtenMsg string
}

func (s *stubRepository) FetchRevision(ctx context.Context) (string, error) {
	s.fetchCalls++
	return s.revision, s.revisionErr
}

func (s *stubRepository) ReadTable(ctx context.Context) (*domain.Table, error) {
	if s.readTable == nil {
		return domain.NewTable(), s.readErr
	}
	return s.readTable, s.readErr
}

func (s *stubRepository) WriteTable(ctx context.Context, table *domain.Table, revision, message string) error {
	s.writeCalls++
	s.written = table
	s.writtenRev = revision
	s.writtenMsg = message
	return s.writeErr
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.GitHub.Owner = "someone"
	cfg.GitHub.Repo = "habit-data"
	cfg.GitHub.FilePath = "daily_log.csv"
	cfg.GitHub.Branch = "main"
	cfg.GitHub.Token = "secret"
	return cfg
}

func newEntry(t *testing.T, date string) domain.LogEntry {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, date)
	require.NoError(t, err)
	entry := domain.NewLogEntry(d)
	entry.OrdinaryDay = domain.Yes
	entry.ScreenTime = hours.FromDecimal(3.5)
	entry.StudyTime = hours.FromDecimal(2)
	entry.StudyQuality = 7
	entry.Meditation = domain.No
	entry.MorningStudy = domain.Yes
	entry.MorningPhone = domain.No
	entry.LunchPhone = domain.No
	entry.DinnerPhone = domain.No
	entry.Running = domain.No
	entry.P = domain.No
	entry.MorningWakeUpHour = hours.FromDecimal(hours.FromClock(7, 30))
	return entry
}

func TestLogService_Load(t *testing.T) {
	t.Run("should seed the session table from the store", func(t *testing.T) {
		seed := domain.NewTable()
		seed.Append(newEntry(t, "2025-01-06"))
		repo := &stubRepository{readTable: seed}
		service := NewLogService(repo, testConfig())

		err := service.Load(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, service.Len())
	})

	t.Run("should start empty with a notice when the store is unreadable", func(t *testing.T) {
		repo := &stubRepository{readErr: errors.NewStoreError("read table", fmt.Errorf("boom"))}
		service := NewLogService(repo, testConfig())

		err := service.Load(context.Background())

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStore))
		assert.Equal(t, 0, service.Len())
	})
}

func TestLogService_Append(t *testing.T) {
	t.Run("should fetch a fresh revision then push the whole table", func(t *testing.T) {
		repo := &stubRepository{revision: "abc123"}
		service := NewLogService(repo, testConfig())

		err := service.Append(context.Background(), newEntry(t, "2025-01-06"))

		require.NoError(t, err)
		assert.Equal(t, 1, repo.fetchCalls)
		assert.Equal(t, 1, repo.writeCalls)
		assert.Equal(t, "abc123", repo.writtenRev)
		assert.Equal(t, "Update daily log", repo.writtenMsg)
		assert.Equal(t, 1, repo.written.Len())
	})

	t.Run("should never write when the revision fetch fails", func(t *testing.T) {
		repo := &stubRepository{revisionErr: errors.NewRevisionError("daily_log.csv", nil)}
		service := NewLogService(repo, testConfig())

		err := service.Append(context.Background(), newEntry(t, "2025-01-06"))

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeRevision))
		assert.Equal(t, 0, repo.writeCalls)
		// The in-memory append still happened; the session diverges
		// from the store until the operator resubmits.
		assert.Equal(t, 1, service.Len())
	})

	t.Run("should keep the in-memory append when the write is rejected", func(t *testing.T) {
		repo := &stubRepository{
			revision: "abc123",
			writeErr: errors.NewWriteRejectedError(409, "stale"),
		}
		service := NewLogService(repo, testConfig())

		err := service.Append(context.Background(), newEntry(t, "2025-01-06"))

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStore))
		assert.Equal(t, 1, service.Len())
	})

	t.Run("should reject an invalid entry before touching the store", func(t *testing.T) {
		repo := &stubRepository{revision: "abc123"}
		service := NewLogService(repo, testConfig())

		entry := newEntry(t, "2025-01-06")
		entry.StudyQuality = 0

		err := service.Append(context.Background(), entry)

		assert.Error(t, err)
		assert.Equal(t, 0, repo.fetchCalls)
		assert.Equal(t, 0, repo.writeCalls)
		assert.Equal(t, 0, service.Len())
	})

	t.Run("should persist duplicate dates as separate rows", func(t *testing.T) {
		repo := &stubRepository{revision: "abc123"}
		service := NewLogService(repo, testConfig())

		require.NoError(t, service.Append(context.Background(), newEntry(t, "2025-01-06")))
		require.NoError(t, service.Append(context.Background(), newEntry(t, "2025-01-06")))

		assert.Equal(t, 2, service.Len())
		assert.Equal(t, 2, repo.written.Len())
	})

	t.Run("should fetch the revision freshly for every write", func(t *testing.T) {
		repo := &stubRepository{revision: "abc123"}
		service := NewLogService(repo, testConfig())

		require.NoError(t, service.Append(context.Background(), newEntry(t, "2025-01-06")))
		require.NoError(t, service.Append(context.Background(), newEntry(t, "2025-01-07")))

		assert.Equal(t, 2, repo.fetchCalls)
		assert.Equal(t, 2, repo.writeCalls)
	})
}

func TestLogService_Views(t *testing.T) {
	repo := &stubRepository{revision: "abc123"}
	service := NewLogService(repo, testConfig())
	for _, d := range []string{"2025-01-01", "2025-01-10", "2025-01-05"} {
		require.NoError(t, service.Append(context.Background(), newEntry(t, d)))
	}

	t.Run("should filter by inclusive date window", func(t *testing.T) {
		from, _ := time.Parse(domain.DateLayout, "2025-01-05")
		to, _ := time.Parse(domain.DateLayout, "2025-01-10")
		assert.Len(t, service.EntriesBetween(from, to), 2)
	})

	t.Run("should list recent entries newest first", func(t *testing.T) {
		recent := service.Recent(2)
		require.Len(t, recent, 2)
		assert.Equal(t, "2025-01-10", recent[0].Date.Format(domain.DateLayout))
	})

	t.Run("should report date bounds", func(t *testing.T) {
		min, max, ok := service.Bounds()
		require.True(t, ok)
		assert.Equal(t, "2025-01-01", min.Format(domain.DateLayout))
		assert.Equal(t, "2025-01-10", max.Format(domain.DateLayout))
	})
}
