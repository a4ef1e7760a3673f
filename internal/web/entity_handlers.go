package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/loudly/loudly/internal/entity"
)

// handleEntityRoute dispatches /api/entity/?uniqueId= by method.
func (s *Server) handleEntityRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetEntity(w, r)
	case http.MethodPut:
		s.requireAdmin(http.HandlerFunc(s.handleSetBanned)).ServeHTTP(w, r)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	uid := uniqueIDFromContext(r)

	e, err := s.entities.Get(r.Context(), uid)
	if errors.Is(err, entity.ErrNotFound) {
		e = &entity.Entity{ID: uid}
	} else if err != nil {
		internalError(w, r, "loading entity", err)
		return
	}

	apiData(w, e, http.StatusOK)
}

// handleSetBanned bans or unbans an entity. Admin only.
//
//	PUT /api/entity/?uniqueId= {"banned": true}
func (s *Server) handleSetBanned(w http.ResponseWriter, r *http.Request) {
	uid := uniqueIDFromContext(r)

	var req struct {
		Banned *bool `json:"banned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Banned == nil {
		apiError(w, "banned is required", http.StatusBadRequest)
		return
	}

	if err := s.entities.SetBanned(r.Context(), uid, *req.Banned); err != nil {
		internalError(w, r, "setting ban", err)
		return
	}

	slog.Info("entity moderation changed", "uniqueId", uid, "banned", *req.Banned)
	apiData(w, entity.Entity{ID: uid, Banned: *req.Banned}, http.StatusOK)
}
