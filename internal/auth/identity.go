// Package auth implements the admin login challenge, the session token
// codec and the authorization gate for admin-only operations.
package auth

import "errors"

var (
	// ErrCredentialMismatch indicates the login digest does not match the
	// configured admin identity.
	ErrCredentialMismatch = errors.New("username and password don't match")
	// ErrLoginExpired indicates a matching digest whose timestamp is
	// malformed or outside the allowed skew.
	ErrLoginExpired = errors.New("login timeout")
	// ErrAuthenticationNeeded is the gate's denial.
	ErrAuthenticationNeeded = errors.New("authentication needed")
	// ErrMalformedToken indicates a session token that does not decode to a
	// claim. Callers treat it as "no claim".
	ErrMalformedToken = errors.New("malformed session token")
)

// Identity is the single configured admin identity.
type Identity struct {
	User     string
	Password string
}

// IsZero reports whether no identity is configured.
func (i Identity) IsZero() bool {
	return i.User == "" && i.Password == ""
}
