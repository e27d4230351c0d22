package store

import (
	"fmt"
	"testing"
)

func TestReduceUI_DarkModeToggleAndForce(t *testing.T) {
	s := UIState{}

	s = reduceUI(s, DarkModeToggled{})
	if !s.DarkMode {
		t.Fatalf("toggle from off should turn on")
	}

	off := false
	s = reduceUI(s, DarkModeToggled{Value: &off})
	if s.DarkMode {
		t.Fatalf("forced off ignored")
	}
	s = reduceUI(s, DarkModeToggled{Value: &off})
	if s.DarkMode {
		t.Fatalf("forcing off twice must stay off")
	}
}

func TestReduceUI_AlertDismissIsSoftDelete(t *testing.T) {
	a := NewAlert(AlertDanger, "boom")
	s := reduceUI(UIState{}, AlertAdded{Alert: a})
	if len(s.ActiveAlerts()) != 1 {
		t.Fatalf("active = %d", len(s.ActiveAlerts()))
	}

	s = reduceUI(s, AlertDismissed{ID: a.ID})
	if len(s.ActiveAlerts()) != 0 {
		t.Fatalf("dismissed alert still active")
	}
	if len(s.Alerts) != 1 {
		t.Fatalf("dismissal must not remove the entry, got %d", len(s.Alerts))
	}

	// Dismissing an unknown ID is a no-op.
	s = reduceUI(s, AlertDismissed{ID: "missing"})
	if len(s.Alerts) != 1 {
		t.Fatalf("unknown dismissal changed alerts")
	}
}

func TestReduceUI_EvictionDropsOldestDismissedFirst(t *testing.T) {
	var s UIState

	// Fill to the bound, dismissing the first half.
	var dismissed []string
	for i := 0; i < maxAlerts; i++ {
		a := NewAlert(AlertInfo, fmt.Sprintf("alert %d", i))
		s = reduceUI(s, AlertAdded{Alert: a})
		if i < maxAlerts/2 {
			dismissed = append(dismissed, a.ID)
		}
	}
	for _, id := range dismissed {
		s = reduceUI(s, AlertDismissed{ID: id})
	}

	// One more add pushes past the bound: exactly one dismissed entry goes.
	s = reduceUI(s, AlertAdded{Alert: NewAlert(AlertInfo, "overflow")})
	if len(s.Alerts) != maxAlerts {
		t.Fatalf("alerts = %d, want %d", len(s.Alerts), maxAlerts)
	}
	if s.Alerts[0].ID == dismissed[0] {
		t.Fatalf("oldest dismissed entry should have been evicted")
	}
	if got := len(s.ActiveAlerts()); got != maxAlerts/2+1 {
		t.Fatalf("active alerts = %d, want %d", got, maxAlerts/2+1)
	}
}

func TestReduceUI_ActiveAlertsNeverEvicted(t *testing.T) {
	var s UIState
	for i := 0; i < maxAlerts+10; i++ {
		s = reduceUI(s, AlertAdded{Alert: NewAlert(AlertWarning, "active")})
	}
	// Nothing is dismissed, so nothing may be evicted.
	if len(s.Alerts) != maxAlerts+10 {
		t.Fatalf("active alerts were evicted: %d", len(s.Alerts))
	}
}
