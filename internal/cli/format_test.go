package cli

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		expected string
	}{
		{"empty", "", "anonymous"},
		{"set", "bob", "bob"},
		{"spaces kept", " bob ", " bob "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayName(tt.nickname); got != tt.expected {
				t.Errorf("displayName(%q) = %q, want %q", tt.nickname, got, tt.expected)
			}
		})
	}
}

func TestBanLabel(t *testing.T) {
	if got := banLabel(true); got != "banned" {
		t.Errorf("banLabel(true) = %q", got)
	}
	if got := banLabel(false); got != "open" {
		t.Errorf("banLabel(false) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world!", 8, "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}
