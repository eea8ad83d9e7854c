package cli

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this is a long string", 10, "this is..."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score  int
		prefix string
	}{
		{100, "[+]"},
		{80, "[+]"},
		{79, "[~]"},
		{60, "[~]"},
		{59, "[-]"},
		{0, "[-]"},
	}

	for _, tt := range tests {
		if got := formatScore(tt.score); !strings.HasPrefix(got, tt.prefix) {
			t.Errorf("formatScore(%d) = %q, want prefix %q", tt.score, got, tt.prefix)
		}
	}
}

func TestFormatSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"critical", "[!] CRITICAL"},
		{"warning", "[W] WARNING"},
		{"info", "[i] INFO"},
		{"unknown", "unknown"},
	}

	for _, tt := range tests {
		if got := formatSeverity(tt.in); got != tt.want {
			t.Errorf("formatSeverity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	if got := formatSize(1_900_000); got != "1.90MB" {
		t.Errorf("formatSize(1900000) = %q", got)
	}
	if got := formatSize(3_000_000); got != "3.00MB" {
		t.Errorf("formatSize(3000000) = %q", got)
	}
}
