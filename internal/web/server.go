package web

import (
	"crypto/rand"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"daily-log/internal/config"
	"daily-log/internal/repository/github"
)

// Server serves the daily log form, the recent-rows view and the
// trends page over HTTP. All state lives in the session store.
type Server struct {
	cfg       *config.Config
	sessions  *SessionStore
	templates *template.Template
	logger    *slog.Logger
}

// NewServer creates a web server backed by the given remote store.
func NewServer(repo github.Repository, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		sessions:  NewSessionStore(repo, cfg),
		templates: newTemplates(),
		logger:    logger,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /entries", s.handleAddEntry)
	mux.HandleFunc("GET /charts/{column}", s.handleChart)
	mux.HandleFunc("GET /export.csv", s.handleExport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Handler wraps the route table with CSRF protection and request logging.
func (s *Server) Handler() http.Handler {
	return csrf.Protect(
		s.csrfKey(),
		csrf.Secure(s.cfg.Server.SecureCookie),
		csrf.FieldName("csrf_token"),
	)(s.logRequests(s.routes()))
}

// ListenAndServe blocks serving HTTP on the configured port.
func (s *Server) ListenAndServe() error {
	addr := ":" + s.cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", "addr", addr)
	return srv.ListenAndServe()
}

// csrfKey returns the configured signing key, or a random per-process one
// when none is set. A random key invalidates outstanding forms on restart,
// which is acceptable for a single-user tool.
func (s *Server) csrfKey() []byte {
	if s.cfg.Server.CSRFKey != "" {
		return []byte(s.cfg.Server.CSRFKey)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}
	return key
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
