package auth

import (
	"errors"
	"strconv"
	"testing"
	"time"
)

var testAdmin = Identity{User: "loudly", Password: "admin"}

func ts(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func TestDigest(t *testing.T) {
	got := Digest("loudly", "admin", "1480351030000")
	if len(got) != 40 {
		t.Fatalf("digest length = %d, want 40", len(got))
	}
	if got != Digest("loudly", "admin", "1480351030000") {
		t.Error("digest is not deterministic")
	}
	if got == Digest("loudly", "admin", "1480351030001") {
		t.Error("digest ignores the timestamp")
	}
	// Known vector: sha1("abc")
	if d := Digest("a", "b", "c"); d != "a9993e364706816aba3e25717850c26c9cd0d89d" {
		t.Errorf("Digest(a,b,c) = %s", d)
	}
}

func TestVerifyLoginSuccess(t *testing.T) {
	now := time.Now()
	skew := DefaultLoginSkew

	tests := []struct {
		name   string
		offset time.Duration
	}{
		{"current timestamp", 0},
		{"client slightly behind", -4 * time.Minute},
		{"client slightly ahead", 4 * time.Minute},
		{"exactly at skew", skew},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp := ts(now.Add(tt.offset))
			a := Attempt{Username: "loudly", Digest: Digest("loudly", "admin", stamp), Timestamp: stamp}

			claim, err := VerifyLogin(a, testAdmin, skew, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claim != (Claim{Username: "loudly", Password: "admin"}) {
				t.Errorf("claim = %+v", claim)
			}
		})
	}
}

func TestVerifyLoginExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		stamp  string
		hashed string
	}{
		{"six minutes ahead", ts(now.Add(6 * time.Minute)), ts(now.Add(6 * time.Minute))},
		{"six minutes behind", ts(now.Add(-6 * time.Minute)), ts(now.Add(-6 * time.Minute))},
		{"one millisecond past skew", ts(now.Add(DefaultLoginSkew + time.Millisecond)), ts(now.Add(DefaultLoginSkew + time.Millisecond))},
		{"not a number", "yesterday", "NaN"},
		{"empty", "", "NaN"},
		{"fractional and stale", "1480351030000.5", "1480351030000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attempt{Username: "loudly", Digest: Digest("loudly", "admin", tt.hashed), Timestamp: tt.stamp}
			_, err := VerifyLogin(a, testAdmin, DefaultLoginSkew, now)
			if !errors.Is(err, ErrLoginExpired) {
				t.Errorf("err = %v, want ErrLoginExpired", err)
			}
		})
	}
}

func TestVerifyLoginNormalizesTimestamp(t *testing.T) {
	now := time.Now()
	canonical := ts(now)

	tests := []struct {
		name  string
		stamp string
	}{
		{"canonical", canonical},
		{"surrounding spaces", " " + canonical + " "},
		{"trailing fraction", canonical + ".0"},
		{"explicit plus sign", "+" + canonical},
		{"trailing garbage", canonical + "ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attempt{Username: "loudly", Digest: Digest("loudly", "admin", canonical), Timestamp: tt.stamp}
			if _, err := VerifyLogin(a, testAdmin, DefaultLoginSkew, now); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	// The raw text is not what gets hashed.
	raw := canonical + ".0"
	a := Attempt{Username: "loudly", Digest: Digest("loudly", "admin", raw), Timestamp: raw}
	if _, err := VerifyLogin(a, testAdmin, DefaultLoginSkew, now); !errors.Is(err, ErrCredentialMismatch) {
		t.Errorf("digest over raw text: err = %v, want ErrCredentialMismatch", err)
	}
}

func TestVerifyLoginIgnoresUsername(t *testing.T) {
	now := time.Now()
	stamp := ts(now)

	for _, user := range []string{"loudly", "loudlytest", ""} {
		a := Attempt{Username: user, Digest: Digest("loudly", "admin", stamp), Timestamp: stamp}
		claim, err := VerifyLogin(a, testAdmin, DefaultLoginSkew, now)
		if err != nil {
			t.Errorf("username %q: unexpected error: %v", user, err)
			continue
		}
		if claim.Username != "loudly" {
			t.Errorf("username %q: claim = %+v, want the configured admin", user, claim)
		}
	}
}

func TestParseMillis(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"1700000000000", 1700000000000, true},
		{" 42 ", 42, true},
		{"42.9", 42, true},
		{"-7", -7, true},
		{"", 0, false},
		{"-", 0, false},
		{"abc", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseMillis(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMillis(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestVerifyLoginSkewIsConfigurable(t *testing.T) {
	now := time.Now()
	stamp := ts(now.Add(-2 * time.Second))
	a := Attempt{Username: "loudly", Digest: Digest("loudly", "admin", stamp), Timestamp: stamp}

	if _, err := VerifyLogin(a, testAdmin, time.Second, now); !errors.Is(err, ErrLoginExpired) {
		t.Errorf("1s skew: err = %v, want ErrLoginExpired", err)
	}
	if _, err := VerifyLogin(a, testAdmin, 3*time.Second, now); err != nil {
		t.Errorf("3s skew: unexpected error: %v", err)
	}
}

func TestVerifyLoginDigestMutation(t *testing.T) {
	now := time.Now()
	stamp := ts(now)
	digest := Digest("loudly", "admin", stamp)

	for i := range digest {
		mutated := []byte(digest)
		if mutated[i] == '0' {
			mutated[i] = '1'
		} else {
			mutated[i] = '0'
		}

		a := Attempt{Username: "loudly", Digest: string(mutated), Timestamp: stamp}
		if _, err := VerifyLogin(a, testAdmin, DefaultLoginSkew, now); !errors.Is(err, ErrCredentialMismatch) {
			t.Errorf("mutation at %d: err = %v, want ErrCredentialMismatch", i, err)
		}
	}
}

func TestVerifyLoginMismatch(t *testing.T) {
	now := time.Now()
	stamp := ts(now)
	stale := ts(now.Add(time.Hour))

	tests := []struct {
		name    string
		attempt Attempt
		admin   Identity
	}{
		{
			name:    "plain password instead of digest",
			attempt: Attempt{Username: "loudly", Digest: "admin", Timestamp: stamp},
			admin:   testAdmin,
		},
		{
			name:    "digest for another user",
			attempt: Attempt{Username: "loudlytest", Digest: Digest("loudlytest", "admin", stamp), Timestamp: stamp},
			admin:   testAdmin,
		},
		{
			name:    "digest for another timestamp",
			attempt: Attempt{Username: "loudly", Digest: Digest("loudly", "admin", stale), Timestamp: stamp},
			admin:   testAdmin,
		},
		{
			name:    "mismatch wins over expiry",
			attempt: Attempt{Username: "loudly", Digest: "nope", Timestamp: stale},
			admin:   testAdmin,
		},
		{
			name:    "no admin configured",
			attempt: Attempt{Username: "", Digest: Digest("", "", stamp), Timestamp: stamp},
			admin:   Identity{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyLogin(tt.attempt, tt.admin, DefaultLoginSkew, now)
			if !errors.Is(err, ErrCredentialMismatch) {
				t.Errorf("err = %v, want ErrCredentialMismatch", err)
			}
		})
	}
}
