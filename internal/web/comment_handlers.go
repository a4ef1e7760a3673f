package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/loudly/loudly/internal/comment"
)

// handleCommentRoute dispatches /comment/?uniqueId= by method.
func (s *Server) handleCommentRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListComments(w, r)
	case http.MethodPost:
		s.handleCreateComment(w, r)
	case http.MethodDelete:
		s.requireAdmin(http.HandlerFunc(s.handleDeleteComment)).ServeHTTP(w, r)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type listResponse struct {
	UniqueID string             `json:"uniqueId"`
	Comments []*comment.Comment `json:"comments"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
	Total    int                `json:"total"`
}

// handleListComments returns one page of comments.
//
//	GET /comment/?uniqueId=&page=&limit=
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	uid := uniqueIDFromContext(r)
	q := r.URL.Query()

	page := intOr(q.Get("page"), 0)
	if page < 0 {
		page = 0
	}
	limit := intOr(q.Get("limit"), 0)
	if limit <= 0 {
		limit = s.comments.PageSize()
	}

	comments, err := s.comments.List(r.Context(), uid, page, limit)
	if err != nil {
		internalError(w, r, "listing comments", err)
		return
	}

	total, err := s.comments.Count(r.Context(), uid)
	if err != nil {
		internalError(w, r, "counting comments", err)
		return
	}

	apiData(w, listResponse{
		UniqueID: uid,
		Comments: comments,
		Page:     page,
		Limit:    limit,
		Total:    total,
	}, http.StatusOK)
}

type createRequest struct {
	Content  string          `json:"content"`
	Nickname string          `json:"nickname"`
	IconID   json.RawMessage `json:"iconId"`
}

type createResponse struct {
	UniqueID string           `json:"uniqueId"`
	Comment  *comment.Comment `json:"comment"`
}

// handleCreateComment posts a comment unless the entity is banned.
//
//	POST /comment/?uniqueId= {"content", "nickname", "iconId"}
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	uid := uniqueIDFromContext(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apiError(w, "invalid json body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		apiError(w, comment.ErrEmptyContent.Error(), http.StatusBadRequest)
		return
	}

	// Not atomic with the insert below: a ban landing in between does not
	// stop this comment.
	ok, err := s.entities.CanAcceptComment(r.Context(), uid)
	if err != nil {
		internalError(w, r, "checking entity", err)
		return
	}
	if !ok {
		apiError(w, "this entity is not allowed to be commented", http.StatusForbidden)
		return
	}

	iconID := intOr(looseText(req.IconID), 0)

	c, err := s.comments.Create(r.Context(), uid, req.Content, req.Nickname, iconID)
	if errors.Is(err, comment.ErrEmptyContent) {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		internalError(w, r, "creating comment", err)
		return
	}

	apiData(w, createResponse{UniqueID: uid, Comment: c}, http.StatusCreated)
}

// handleDeleteComment removes one comment. Admin only.
//
//	DELETE /comment/?uniqueId=&id=
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	uid := uniqueIDFromContext(r)

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		apiError(w, "this comment doesn't exist.", http.StatusNotFound)
		return
	}

	err = s.comments.DeleteOne(r.Context(), uid, id)
	if errors.Is(err, comment.ErrNotFound) {
		apiError(w, "this comment doesn't exist.", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, r, "deleting comment", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
