package web

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"daily-log/internal/api"
	"daily-log/internal/config"
	"daily-log/internal/repository/github"
)

const sessionCookie = "dlog_session"

// SessionStore maps session cookies to session-scoped API instances. Each
// browser session owns its own in-memory table; the remote store is the only
// shared resource between them.
type SessionStore struct {
	repo github.Repository
	cfg  *config.Config

	mu       sync.Mutex
	sessions map[string]api.API
}

// NewSessionStore creates a new session store.
func NewSessionStore(repo github.Repository, cfg *config.Config) *SessionStore {
	return &SessionStore{
		repo:     repo,
		cfg:      cfg,
		sessions: make(map[string]api.API),
	}
}

// Get returns the API instance for the request's session, creating and
// seeding a new one when the cookie is absent or unknown. notice carries
// the informational load degradation for newly created sessions.
func (s *SessionStore) Get(ctx context.Context, w http.ResponseWriter, r *http.Request) (instance api.API, notice error) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		existing, ok := s.sessions[cookie.Value]
		s.mu.Unlock()
		if ok {
			return existing, nil
		}
	}

	id := uuid.New().String()
	instance = api.New(s.repo, s.cfg)
	notice = instance.Reload(ctx)

	s.mu.Lock()
	s.sessions[id] = instance
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Server.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return instance, notice
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
