// Package web provides the HTTP server and JSON API handlers for loudly.
package web

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/loudly/loudly/internal/auth"
	"github.com/loudly/loudly/internal/comment"
	"github.com/loudly/loudly/internal/config"
	"github.com/loudly/loudly/internal/entity"
	"github.com/loudly/loudly/internal/logging"
	"github.com/loudly/loudly/internal/session"
)

// Server is the loudly HTTP server.
type Server struct {
	cfg      config.Config
	admin    auth.Identity
	comments *comment.Repository
	entities *entity.Repository
	sessions *session.Manager
	mux      *http.ServeMux
	now      func() time.Time
}

// NewServer creates a server over an opened database. Sessions are kept in
// store.
func NewServer(db *sql.DB, cfg config.Config, store session.Store) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		admin:    auth.Identity{User: cfg.Admin.User, Password: cfg.Admin.Password},
		comments: comment.NewRepository(db, cfg.CommentsPerPage),
		entities: entity.NewRepository(db),
		sessions: session.NewManager(store, cfg.SessionTTL, cfg.SecureCookies),
		mux:      http.NewServeMux(),
		now:      time.Now,
	}

	if cfg.AuthBypass() {
		slog.Warn("authorization bypass enabled", "env", cfg.Env)
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)
	s.mux.HandleFunc("/api/auth/logout", s.handleLogout)
	s.mux.Handle("/comment/", s.requireUniqueID(http.HandlerFunc(s.handleCommentRoute)))
	s.mux.Handle("/api/comment/", s.requireUniqueID(http.HandlerFunc(s.handleCommentRoute)))
	s.mux.Handle("/api/entity/", s.requireUniqueID(http.HandlerFunc(s.handleEntityRoute)))

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Handler returns the server wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return logging.RequestLogger(s)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("listening", "addr", addr, "env", s.cfg.Env)
	return srv.ListenAndServe()
}

// requireAdmin wraps next in the authorization gate.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return auth.RequireAdmin(s.sessions, s.admin, s.cfg.AuthBypass(), next)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
