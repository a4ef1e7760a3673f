package auth

import "crypto/subtle"

// Decision is the outcome of Authorize.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Err returns ErrAuthenticationNeeded for Deny and nil for Allow.
func (d Decision) Err() error {
	if d == Allow {
		return nil
	}
	return ErrAuthenticationNeeded
}

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorize decides whether the holder of a session token may perform an
// admin-only action. An empty token means the session holds no claim.
// bypass must only be true in the test environment.
//
// The decision is recomputed from the token on every call.
func Authorize(token string, admin Identity, bypass bool) Decision {
	if bypass {
		return Allow
	}
	if admin.IsZero() {
		return Deny
	}

	claim, err := DecodeClaim(token)
	if err != nil {
		claim = Claim{}
	}

	userOK := subtle.ConstantTimeCompare([]byte(claim.Username), []byte(admin.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(claim.Password), []byte(admin.Password)) == 1
	if userOK && passOK {
		return Allow
	}
	return Deny
}
