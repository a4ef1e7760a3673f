package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope is the JSON shape of every API response.
type envelope struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

type ctxKey int

const uniqueIDKey ctxKey = iota

// apiError writes a {code, msg} JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, envelope{Code: code, Msg: msg}, code)
}

// apiData writes a {code, data} JSON response.
func apiData(w http.ResponseWriter, data interface{}, code int) {
	apiJSON(w, envelope{Code: code, Data: data}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// internalError logs err and writes a generic 500 without exposing it.
func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), op, "error", err, "method", r.Method, "path", r.URL.Path)
	apiError(w, "internal server error", http.StatusInternalServerError)
}

// requireUniqueID rejects requests without a uniqueId query parameter and
// stores it in the request context.
func (s *Server) requireUniqueID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := r.URL.Query().Get("uniqueId")
		if uid == "" {
			apiError(w, "missing unique id", http.StatusBadRequest)
			return
		}
		ctx := context.WithValue(r.Context(), uniqueIDKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func uniqueIDFromContext(r *http.Request) string {
	uid, _ := r.Context().Value(uniqueIDKey).(string)
	return uid
}
