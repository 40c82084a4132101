package crypto

import (
	"strings"
	"testing"
)

// Requirement: content IDs have the documented length and draw only from
// the URL-safe alphabet.
func TestNewContentID_Format(t *testing.T) {
	id, err := NewContentID()
	if err != nil {
		t.Fatalf("NewContentID() error = %v", err)
	}
	if len(id) != idSize {
		t.Errorf("len(id) = %d, want %d", len(id), idSize)
	}
	for _, c := range id {
		if !strings.ContainsRune(idAlphabet, c) {
			t.Errorf("id contains %q, not in alphabet", c)
		}
	}
}

// Requirement: consecutive IDs do not collide.
func TestNewContentID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := NewContentID()
		if err != nil {
			t.Fatalf("NewContentID() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = true
	}
}
