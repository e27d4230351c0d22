package session

import "github.com/tbourn/go-news-client/internal/store"

// UIManager exposes the presentation slice: theme, sidebar, and the alert
// channel the other managers feed.
type UIManager struct {
	store *store.Store
}

// ToggleDarkMode flips the theme, or forces it when value is non-nil. The
// choice is persisted durably.
func (m *UIManager) ToggleDarkMode(value *bool) {
	m.store.Dispatch(store.DarkModeToggled{Value: value})
}

// ToggleSidebar flips the sidebar, or forces it when value is non-nil.
func (m *UIManager) ToggleSidebar(value *bool) {
	m.store.Dispatch(store.SidebarToggled{Value: value})
}

// AddAlert enqueues a one-shot notification and returns its ID for later
// dismissal.
func (m *UIManager) AddAlert(kind store.AlertKind, message string) string {
	alert := store.NewAlert(kind, message)
	m.store.Dispatch(store.AlertAdded{Alert: alert})
	return alert.ID
}

// DismissAlert soft-deletes the alert with the given ID.
func (m *UIManager) DismissAlert(id string) {
	m.store.Dispatch(store.AlertDismissed{ID: id})
}

// ActiveAlerts returns the not-yet-dismissed alerts, oldest first.
func (m *UIManager) ActiveAlerts() []store.Alert {
	return m.store.State().UI.ActiveAlerts()
}
