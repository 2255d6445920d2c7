package code

import (
	"regexp"
	"testing"
)

func TestNewCodeFormat(t *testing.T) {
	gen := New()
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		c := gen.NewCode()
		if !pattern.MatchString(c) {
			t.Fatalf("code %q does not match the session code format", c)
		}
		seen[c] = true
	}

	// 36^6 possible codes; repeated collisions across 1000 draws would
	// mean a broken entropy source
	if len(seen) < 990 {
		t.Fatalf("expected distinct codes, got %d unique of 1000", len(seen))
	}
}
