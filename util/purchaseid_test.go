package util

import (
	"regexp"
	"testing"
)

func TestPurchaseID_Format(t *testing.T) {
	id := PurchaseID()
	if id == "" {
		t.Fatal("expected non-empty purchase ID")
	}
	// millisecond epoch, dash, 8 hex chars
	r := regexp.MustCompile(`^\d{13,}-[0-9a-f]{8}$`)
	if !r.MatchString(id) {
		t.Fatalf("purchase ID %s does not match expected format", id)
	}
}

func TestPurchaseID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := PurchaseID()
		if seen[id] {
			t.Fatalf("duplicate purchase ID: %s", id)
		}
		seen[id] = true
	}
}
