package web

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/loudly/loudly/internal/auth"
	"github.com/loudly/loudly/internal/config"
)

func TestLogin(t *testing.T) {
	ms := strconv.FormatInt(fixedNow.UnixMilli(), 10)

	tests := []struct {
		name     string
		body     interface{}
		wantCode int
		wantMsg  string
	}{
		{
			name:     "valid digest",
			body:     loginBody("loudly", "admin", fixedNow),
			wantCode: http.StatusOK,
		},
		{
			name: "timestamp as string",
			body: map[string]string{
				"username":  "loudly",
				"password":  auth.Digest("loudly", "admin", ms),
				"timestamp": ms,
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong password",
			body:     loginBody("loudly", "nope", fixedNow),
			wantCode: http.StatusForbidden,
			wantMsg:  "username and password don't match",
		},
		{
			name: "username is not checked",
			body: map[string]string{
				"username":  "someone-else",
				"password":  auth.Digest("loudly", "admin", ms),
				"timestamp": ms,
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "fractional number timestamp",
			body:     `{"username":"loudly","password":"` + auth.Digest("loudly", "admin", ms) + `","timestamp":` + ms + `.0}`,
			wantCode: http.StatusOK,
		},
		{
			name: "padded string timestamp",
			body: map[string]string{
				"username":  "loudly",
				"password":  auth.Digest("loudly", "admin", ms),
				"timestamp": " " + ms,
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "digest for another user",
			body:     loginBody("mallory", "admin", fixedNow),
			wantCode: http.StatusForbidden,
			wantMsg:  "username and password don't match",
		},
		{
			name:     "stale timestamp",
			body:     loginBody("loudly", "admin", fixedNow.Add(-6*time.Minute)),
			wantCode: http.StatusForbidden,
			wantMsg:  "login timeout",
		},
		{
			name:     "future timestamp",
			body:     loginBody("loudly", "admin", fixedNow.Add(6*time.Minute)),
			wantCode: http.StatusForbidden,
			wantMsg:  "login timeout",
		},
		{
			name:     "inside skew",
			body:     loginBody("loudly", "admin", fixedNow.Add(-4*time.Minute)),
			wantCode: http.StatusOK,
		},
		{
			name:     "not json",
			body:     "{",
			wantCode: http.StatusBadRequest,
			wantMsg:  "invalid json body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(t)
			w, resp := do(t, s, "POST", "/api/auth/login", tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%+v)", w.Code, tt.wantCode, resp)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("body code = %d, want %d", resp.Code, tt.wantCode)
			}
			if resp.Msg != tt.wantMsg {
				t.Errorf("msg = %q, want %q", resp.Msg, tt.wantMsg)
			}

			setCookie := len(w.Result().Cookies()) > 0
			if setCookie != (tt.wantCode == http.StatusOK) {
				t.Errorf("session cookie set = %v", setCookie)
			}
		})
	}
}

func TestLoginWithoutAdmin(t *testing.T) {
	s := testServer(t, func(c *config.Config) { c.Admin = config.Admin{} })

	w, resp := do(t, s, "POST", "/api/auth/login", loginBody("", "", fixedNow))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if resp.Msg != "username and password don't match" {
		t.Errorf("msg = %q", resp.Msg)
	}
}

func TestLoginCustomSkew(t *testing.T) {
	s := testServer(t, func(c *config.Config) { c.LoginTimeoutMS = 1000 })

	w, _ := do(t, s, "POST", "/api/auth/login", loginBody("loudly", "admin", fixedNow.Add(-2*time.Second)))
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestSessionInvalidatedByCredentialChange(t *testing.T) {
	s := testServer(t)
	id := postComment(t, s, "post-1", "hello")
	cookie := login(t, s)

	s.admin = auth.Identity{User: "loudly", Password: "rotated"}

	w, _ := do(t, s, "DELETE", "/comment/?uniqueId=post-1&id="+strconv.FormatInt(id, 10), nil, cookie)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestLogout(t *testing.T) {
	s := testServer(t)
	id := postComment(t, s, "post-1", "hello")
	cookie := login(t, s)

	w, _ := do(t, s, "POST", "/api/auth/logout", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	w, _ = do(t, s, "DELETE", "/comment/?uniqueId=post-1&id="+strconv.FormatInt(id, 10), nil, cookie)
	if w.Code != http.StatusForbidden {
		t.Errorf("delete after logout status = %d, want 403", w.Code)
	}
}
