package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/loudly/loudly/internal/auth"
)

type loginRequest struct {
	Username  string          `json:"username"`
	Password  string          `json:"password"`
	Timestamp json.RawMessage `json:"timestamp"`
}

// handleLogin verifies the digest challenge and stores the claim in the
// caller's session.
//
//	POST /api/auth/login {"username", "password": sha1(user+password+timestamp), "timestamp": ms}
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid json body", http.StatusBadRequest)
		return
	}

	attempt := auth.Attempt{
		Username:  req.Username,
		Digest:    req.Password,
		Timestamp: looseText(req.Timestamp),
	}

	claim, err := auth.VerifyLogin(attempt, s.admin, s.cfg.LoginSkew(), s.now())
	switch {
	case errors.Is(err, auth.ErrCredentialMismatch), errors.Is(err, auth.ErrLoginExpired):
		slog.Warn("login rejected", "reason", err.Error(), "ip", r.RemoteAddr)
		apiError(w, err.Error(), http.StatusForbidden)
		return
	case err != nil:
		internalError(w, r, "verifying login", err)
		return
	}

	if err := s.sessions.Put(w, r, auth.TokenKey, auth.EncodeClaim(claim)); err != nil {
		internalError(w, r, "storing session", err)
		return
	}

	slog.Info("admin logged in", "ip", r.RemoteAddr)
	apiJSON(w, envelope{Code: http.StatusOK}, http.StatusOK)
}

// handleLogout destroys the caller's session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.sessions.Destroy(w, r); err != nil {
		internalError(w, r, "destroying session", err)
		return
	}

	apiJSON(w, envelope{Code: http.StatusOK}, http.StatusOK)
}
