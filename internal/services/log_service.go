package services

import (
	"context"
	"sync"
	"time"

	"daily-log/internal/config"
	"daily-log/internal/domain"
	"daily-log/internal/logging"
	"daily-log/internal/repository/github"
	"daily-log/internal/validation"
)

// logService implements LogService over the remote table store
type logService struct {
	repo      github.Repository
	validator *validation.EntryValidator
	cfg       *config.Config

	mu    sync.Mutex
	table *domain.Table
}

// NewLogService creates a session-scoped log service
func NewLogService(repo github.Repository, cfg *config.Config) LogService {
	return &logService{
		repo:      repo,
		validator: validation.NewEntryValidatorWithConfig(cfg),
		cfg:       cfg,
		table:     domain.NewTable(),
	}
}

// Load seeds the table from the remote store. ReadTable never leaves the
// caller without a table; the error only reports that the session starts
// from an empty one.
func (s *logService) Load(ctx context.Context) error {
	table, err := s.repo.ReadTable(ctx)

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	if err != nil {
		logging.Debugf("session: starting with an empty table: %v\n", err)
	}
	return err
}

// Append runs the full submission sequence: validate, append in memory,
// fetch a fresh revision, push the whole table. The revision fetch happens
// inside the same logical operation as the write; there is no batching and
// no retry. A rejected write leaves the in-memory append in place, so the
// session visibly diverges from the store until the operator resubmits.
func (s *logService) Append(ctx context.Context, entry domain.LogEntry) error {
	if err := s.validator.ValidateEntry(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.table.Append(entry)

	revision, err := s.repo.FetchRevision(ctx)
	if err != nil {
		return err
	}
	return s.repo.WriteTable(ctx, s.table, revision, s.cfg.GitHub.CommitMessage)
}

func (s *logService) Entries() []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Rows()
}

func (s *logService) EntriesBetween(from, to time.Time) []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.FilterRange(from, to)
}

func (s *logService) Recent(n int) []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Recent(n)
}

func (s *logService) Bounds() (time.Time, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.DateBounds()
}

func (s *logService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Len()
}
