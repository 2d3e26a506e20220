package handlers

import (
	"strings"
	"testing"
)

func TestSanitizeEmail(t *testing.T) {
	t.Parallel()

	if got := SanitizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("got %q", got)
	}
	if got := SanitizeEmail(strings.Repeat("a", MaxEmailLength+1)); got != "" {
		t.Errorf("expected over-length email rejected, got %q", got)
	}
}

func TestSanitizeUsername(t *testing.T) {
	t.Parallel()

	if got := SanitizeUsername("  alice "); got != "alice" {
		t.Errorf("got %q", got)
	}
	if got := SanitizeUsername(strings.Repeat("x", MaxUsernameLength+1)); got != "" {
		t.Errorf("expected over-length username rejected, got %q", got)
	}
}
