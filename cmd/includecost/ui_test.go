// # cmd/includecost/ui_test.go
package main

import (
	"testing"

	"includecost/internal/report"
)

func TestNextSortKey_CyclesThroughAllKeys(t *testing.T) {
	keys := report.SortKeys()

	key := keys[0]
	seen := map[report.SortKey]bool{key: true}
	for i := 0; i < len(keys)-1; i++ {
		key = nextSortKey(key)
		if seen[key] {
			t.Fatalf("Key %s repeated before full cycle", key)
		}
		seen[key] = true
	}

	if next := nextSortKey(key); next != keys[0] {
		t.Errorf("Expected wrap-around to %s, got %s", keys[0], next)
	}
}

func TestNextSortKey_UnknownFallsBackToFirst(t *testing.T) {
	if got := nextSortKey(report.SortKey("bogus")); got != report.SortKeys()[0] {
		t.Errorf("Expected first key for unknown input, got %s", got)
	}
}

func TestSortLabel(t *testing.T) {
	if got := sortLabel(report.ByName, false); got != "name ↑" {
		t.Errorf("sortLabel asc = %q", got)
	}
	if got := sortLabel(report.ByContribTotal, true); got != "contrib-total ↓" {
		t.Errorf("sortLabel desc = %q", got)
	}
}
