package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// TokenKey is the session slot holding the encoded claim.
const TokenKey = "token"

// SessionReader reads a value from the caller's session. It returns "" with
// a nil error when the session or the key is absent.
type SessionReader interface {
	Get(r *http.Request, key string) (string, error)
}

// RequireAdmin is middleware that runs the authorization gate on every
// request and answers 403 {"code":403,"msg":"authentication needed"} on Deny.
func RequireAdmin(sessions SessionReader, admin Identity, bypass bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if !bypass {
			var err error
			token, err = sessions.Get(r, TokenKey)
			if err != nil {
				slog.Error("reading session", "error", err, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
		}

		if d := Authorize(token, admin, bypass); d != Allow {
			slog.Warn("admin request denied", "method", r.Method, "path", r.URL.Path, "ip", r.RemoteAddr)
			writeError(w, http.StatusForbidden, d.Err().Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}{code, msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("encoding error response", "error", err)
	}
}
