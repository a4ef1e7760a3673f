package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeSessions struct {
	values map[string]string
	err    error
}

func (f fakeSessions) Get(r *http.Request, key string) (string, error) {
	return f.values[key], f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireAdminAllowsClaim(t *testing.T) {
	sessions := fakeSessions{values: map[string]string{TokenKey: EncodeClaim(Claim{Username: "loudly", Password: "admin"})}}
	handler := RequireAdmin(sessions, testAdmin, false, okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("DELETE", "/comment/?uniqueId=a&id=1", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

func TestRequireAdminDenies(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"no session", ""},
		{"malformed token", "not-json"},
		{"stale claim", EncodeClaim(Claim{Username: "loudly", Password: "old"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := fakeSessions{values: map[string]string{TokenKey: tt.token}}
			handler := RequireAdmin(sessions, testAdmin, false, okHandler())

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest("DELETE", "/comment/", nil))

			if w.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
			}
			var body struct {
				Code int    `json:"code"`
				Msg  string `json:"msg"`
			}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != 403 || body.Msg != "authentication needed" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestRequireAdminBypass(t *testing.T) {
	sessions := fakeSessions{err: errors.New("store down")}
	handler := RequireAdmin(sessions, testAdmin, true, okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("DELETE", "/comment/", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

func TestRequireAdminSessionFailure(t *testing.T) {
	sessions := fakeSessions{err: errors.New("store down")}
	handler := RequireAdmin(sessions, testAdmin, false, okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("DELETE", "/comment/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if body := w.Body.String(); body == "" || !json.Valid([]byte(body)) {
		t.Errorf("expected JSON body, got %q", body)
	}
}
