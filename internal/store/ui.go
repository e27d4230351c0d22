package store

import "github.com/google/uuid"

// AlertKind classifies a notification for presentation.
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertWarning AlertKind = "warning"
	AlertDanger  AlertKind = "danger"
	AlertInfo    AlertKind = "info"
)

// maxAlerts bounds the alerts slice. When an add pushes past the bound, the
// oldest dismissed entries are evicted first; active alerts are never evicted.
const maxAlerts = 64

// Alert is a one-shot, dismissible notification. Dismissal is a soft delete:
// the entry stays (flagged) until eviction so late readers of a snapshot
// still see it.
type Alert struct {
	ID        string
	Kind      AlertKind
	Message   string
	Dismissed bool
}

// NewAlert builds an alert with a fresh ID. IDs are generated here, outside
// the reducer, so reducing the same action twice yields the same state.
func NewAlert(kind AlertKind, message string) Alert {
	return Alert{ID: uuid.NewString(), Kind: kind, Message: message}
}

// UIState is the presentation slice: theme, sidebar, and notifications.
type UIState struct {
	DarkMode    bool
	SidebarOpen bool
	Alerts      []Alert
}

// ActiveAlerts returns the alerts not yet dismissed, oldest first.
func (s UIState) ActiveAlerts() []Alert {
	out := make([]Alert, 0, len(s.Alerts))
	for _, a := range s.Alerts {
		if !a.Dismissed {
			out = append(out, a)
		}
	}
	return out
}

// reduceUI handles the UI slice transitions.
func reduceUI(s UIState, a Action) UIState {
	switch act := a.(type) {
	case DarkModeToggled:
		if act.Value != nil {
			s.DarkMode = *act.Value
		} else {
			s.DarkMode = !s.DarkMode
		}
		return s

	case SidebarToggled:
		if act.Value != nil {
			s.SidebarOpen = *act.Value
		} else {
			s.SidebarOpen = !s.SidebarOpen
		}
		return s

	case AlertAdded:
		alerts := make([]Alert, 0, len(s.Alerts)+1)
		alerts = append(alerts, s.Alerts...)
		alerts = append(alerts, act.Alert)
		s.Alerts = evictDismissed(alerts)
		return s

	case AlertDismissed:
		alerts := make([]Alert, len(s.Alerts))
		for i, al := range s.Alerts {
			if al.ID == act.ID {
				al.Dismissed = true
			}
			alerts[i] = al
		}
		s.Alerts = alerts
		return s
	}
	return s
}

// evictDismissed drops the oldest dismissed entries until the slice fits the
// bound. Active alerts always survive, even past the bound.
func evictDismissed(alerts []Alert) []Alert {
	over := len(alerts) - maxAlerts
	if over <= 0 {
		return alerts
	}
	out := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if over > 0 && a.Dismissed {
			over--
			continue
		}
		out = append(out, a)
	}
	return out
}
