package auth

import (
	"bytes"
	"encoding/json"
)

// Claim is the proof of identity stored in a session after login.
type Claim struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// EncodeClaim serializes a claim for the session's token slot.
func EncodeClaim(c Claim) string {
	// Marshaling a struct of two strings cannot fail.
	data, _ := json.Marshal(c)
	return string(data)
}

// DecodeClaim parses a session token. Anything other than a JSON object
// carrying both string fields yields ErrMalformedToken.
func DecodeClaim(token string) (Claim, error) {
	var raw struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
	}

	trimmed := bytes.TrimSpace([]byte(token))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Claim{}, ErrMalformedToken
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Claim{}, ErrMalformedToken
	}
	if raw.Username == nil || raw.Password == nil {
		return Claim{}, ErrMalformedToken
	}

	return Claim{Username: *raw.Username, Password: *raw.Password}, nil
}
