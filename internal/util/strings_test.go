package util

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short string unchanged", "abc", 10, "abc"},
		{"exact length unchanged", "abcde", 5, "abcde"},
		{"long string truncated", "abcdefghij", 6, "abc..."},
		{"tiny budget collapses", "abcdef", 3, "..."},
		{"unicode counted in runes", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateANSI(t *testing.T) {
	if got := TruncateANSI("plain", 10); got != "plain" {
		t.Errorf("TruncateANSI(plain, 10) = %q", got)
	}
	if got := TruncateANSI("abcdefghij", 6); got != "abc..." {
		t.Errorf("TruncateANSI truncated = %q, want %q", got, "abc...")
	}

	// Escape sequences take no visual columns and must survive truncation.
	styled := "\x1b[1mabc\x1b[0m"
	if got := TruncateANSI(styled, 10); got != styled {
		t.Errorf("TruncateANSI(styled, 10) = %q, want unchanged", got)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice", "alice"},
		{"agent bot #2", "agent-bot-2"},
		{"__SYSTEM__", "system"},
		{"a--b", "a-b"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
