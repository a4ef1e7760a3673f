package auth

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// DefaultLoginSkew is the default tolerated clock difference between the
// client timestamp and the server clock.
const DefaultLoginSkew = 5 * time.Minute

// Attempt is a login request as submitted by a client.
type Attempt struct {
	// Username is informational; only the digest proves the identity.
	Username string
	// Digest is Digest(user, password, timestamp) computed by the client.
	Digest string
	// Timestamp is the client clock in milliseconds since the Unix epoch.
	Timestamp string
}

// Digest returns the lower-case hex SHA-1 of user, password and timestamp
// concatenated in that order. Clients compute the same value to log in.
func Digest(user, password, timestamp string) string {
	h := sha1.New()
	h.Write([]byte(user))
	h.Write([]byte(password))
	h.Write([]byte(timestamp))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyLogin checks a login attempt against the admin identity. The digest
// is computed over the decimal form of the parsed timestamp, so "1700000000000",
// " 1700000000000" and "1700000000000.0" all hash as "1700000000000". A
// timestamp with no leading integer hashes as "NaN". A digest mismatch takes
// precedence over any timestamp problem.
func VerifyLogin(a Attempt, admin Identity, skew time.Duration, now time.Time) (Claim, error) {
	if admin.IsZero() {
		return Claim{}, ErrCredentialMismatch
	}

	ts, ok := ParseMillis(a.Timestamp)
	stamp := "NaN"
	if ok {
		stamp = strconv.FormatInt(ts, 10)
	}

	expected := Digest(admin.User, admin.Password, stamp)
	if subtle.ConstantTimeCompare([]byte(a.Digest), []byte(expected)) != 1 {
		return Claim{}, ErrCredentialMismatch
	}

	if !ok {
		return Claim{}, ErrLoginExpired
	}
	diff := now.UnixMilli() - ts
	if diff < 0 {
		diff = -diff
	}
	if diff > skew.Milliseconds() {
		return Claim{}, ErrLoginExpired
	}

	return Claim{Username: admin.User, Password: admin.Password}, nil
}

// ParseMillis reads the leading base-10 integer of s after surrounding
// whitespace, ignoring anything that follows it. ok is false when s does not
// start with an integer or the integer overflows int64.
func ParseMillis(s string) (ms int64, ok bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	ms, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}
