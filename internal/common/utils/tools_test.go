package utils

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if len(id) != 12 {
			t.Fatalf("id length = %d, want 12", len(id))
		}
		for _, r := range id {
			if !strings.ContainsRune(AlphaNum, r) {
				t.Fatalf("id %q contains unexpected rune %q", id, r)
			}
		}
		seen[id] = true
	}
	if len(seen) < 90 {
		t.Fatalf("ids not random enough, %d unique of 100", len(seen))
	}
}

func TestNewCallID(t *testing.T) {
	a, b := NewCallID(), NewCallID()
	if a == b {
		t.Fatalf("call ids collide: %s", a)
	}
	if len(a) != 36 {
		t.Fatalf("call id %q not uuid shaped", a)
	}
}

func TestNewReqID(t *testing.T) {
	if NewReqID() == "" {
		t.Fatal("empty request id")
	}
}
