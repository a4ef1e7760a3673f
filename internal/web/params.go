package web

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/loudly/loudly/internal/auth"
)

// leadingInt parses the leading base-10 integer of s the same way login
// timestamps are read ("12px" is 12). ok is false when s does not start with
// a number or it does not fit in an int.
func leadingInt(s string) (n int, ok bool) {
	v, ok := auth.ParseMillis(s)
	if !ok || v < math.MinInt || v > math.MaxInt {
		return 0, false
	}
	return int(v), true
}

// intOr parses a query parameter leniently, returning def when it is absent
// or not numeric.
func intOr(s string, def int) int {
	if n, ok := leadingInt(s); ok {
		return n
	}
	return def
}

// looseText returns the text of a JSON scalar: strings are unquoted and
// numbers keep their literal form. Anything else yields "".
func looseText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(raw)
	}
	return ""
}
